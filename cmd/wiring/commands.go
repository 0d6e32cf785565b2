package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"wiring/internal/domain"
	"wiring/internal/render"
	"wiring/internal/service"
)

// stringList collects a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// translate runs a one-input, one-output engine operation
func translate(name string, fn func(*service.Engine, string) (string, error)) func(*app, []string) error {
	return func(a *app, args []string) error {
		fs := newFlagSet(name)
		if err := fs.Parse(args); err != nil {
			return err
		}
		text, err := a.input(fs)
		if err != nil {
			return err
		}
		out, err := fn(a.engine, text)
		if err != nil {
			return err
		}
		return a.println(out)
	}
}

var (
	runThickToOFN  = translate("thick2ofn", (*service.Engine).ThickToOFN)
	runOFNToThick  = translate("ofn2thick", (*service.Engine).OFNToThick)
	runObjectToOFN = translate("object2ofn", (*service.Engine).ObjectToOFN)
)

func runLDTabToOFN(a *app, args []string) error {
	fs := newFlagSet("ldtab2ofn")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("ldtab2ofn takes subject, predicate and object")
	}
	out, err := a.engine.LDTabToOFN(fs.Arg(0), fs.Arg(1), fs.Arg(2))
	if err != nil {
		return err
	}
	return a.println(out)
}

func runOFNToLDTab(a *app, args []string) error {
	fs := newFlagSet("ofn2ldtab")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := a.input(fs)
	if err != nil {
		return err
	}
	stmt, err := a.engine.OFNToLDTab(text)
	if err != nil {
		return err
	}
	return a.writeJSON(stmt)
}

func runSignature(a *app, args []string) error {
	fs := newFlagSet("signature")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := a.input(fs)
	if err != nil {
		return err
	}
	sig, err := a.engine.Signature(text)
	if err != nil {
		return err
	}
	for _, id := range sig {
		if err := a.println(id); err != nil {
			return err
		}
	}
	return nil
}

// readOntology reads ontology text from a file argument or stdin
func readOntology(a *app, fs *flag.FlagSet) (string, error) {
	r, err := a.inputFile(fs)
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read ontology: %w", err)
	}
	return string(data), nil
}

func runExtractTypes(a *app, args []string) error {
	fs := newFlagSet("types")
	format := fs.String("format", "json", "Ontology format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := readOntology(a, fs)
	if err != nil {
		return err
	}
	types, err := a.engine.ExtractTypes(*format, text)
	if err != nil {
		return err
	}
	return a.writeJSON(types)
}

func runExtractLabels(a *app, args []string) error {
	fs := newFlagSet("labels")
	format := fs.String("format", "json", "Ontology format")
	var predicates stringList
	fs.Var(&predicates, "predicate", "Label predicate (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := readOntology(a, fs)
	if err != nil {
		return err
	}
	labels, err := a.engine.ExtractLabels(*format, text, predicates...)
	if err != nil {
		return err
	}
	return a.writeJSON(labels)
}

// decorations parses the -types and -labels flags shared by the
// rendering commands
type decorations struct {
	types  *string
	labels *string
}

func addDecorations(fs *flag.FlagSet) decorations {
	return decorations{
		types:  fs.String("types", "", "Typing map JSON file"),
		labels: fs.String("labels", "", "Labeling map JSON file"),
	}
}

type decorationMaps struct {
	Types  domain.TypeMap
	Labels domain.LabelMap
}

func (d decorations) load() (decorationMaps, error) {
	var maps decorationMaps
	text, err := readMap(*d.types)
	if err != nil {
		return maps, err
	}
	if maps.Types, err = service.DecodeTypeMap(text); err != nil {
		return maps, err
	}
	if text, err = readMap(*d.labels); err != nil {
		return maps, err
	}
	if maps.Labels, err = service.DecodeLabelMap(text); err != nil {
		return maps, err
	}
	return maps, nil
}

func runInjectTypes(a *app, args []string) error {
	fs := newFlagSet("inject-types")
	dec := addDecorations(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	maps, err := dec.load()
	if err != nil {
		return err
	}
	text, err := a.input(fs)
	if err != nil {
		return err
	}
	out, err := a.engine.InjectTypes(text, maps.Types)
	if err != nil {
		return err
	}
	return a.println(out)
}

func runInjectLabels(a *app, args []string) error {
	fs := newFlagSet("inject-labels")
	dec := addDecorations(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	maps, err := dec.load()
	if err != nil {
		return err
	}
	text, err := a.input(fs)
	if err != nil {
		return err
	}
	out, err := a.engine.InjectLabels(text, maps.Labels)
	if err != nil {
		return err
	}
	return a.println(out)
}

func runRender(a *app, args []string) error {
	fs := newFlagSet("render")
	dec := addDecorations(fs)
	output := fs.String("o", "text", "Output: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	maps, err := dec.load()
	if err != nil {
		return err
	}
	text, err := a.input(fs)
	if err != nil {
		return err
	}
	doc, err := a.engine.RenderDocumentation(text, maps.Types, maps.Labels)
	if err != nil {
		return err
	}
	return a.writeDocument(doc, *output)
}

func (a *app) writeDocument(doc render.Document, output string) error {
	switch output {
	case "text":
		return a.println(doc.Text)
	case "json":
		return a.writeJSON(doc)
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output %q", output)
	}
}

func runManchester(a *app, args []string) error {
	fs := newFlagSet("manchester")
	dec := addDecorations(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	maps, err := dec.load()
	if err != nil {
		return err
	}
	text, err := a.input(fs)
	if err != nil {
		return err
	}
	out, err := a.engine.OFNToManchester(text, maps.Types, maps.Labels)
	if err != nil {
		return err
	}
	return a.println(out)
}

func runReport(a *app, args []string) error {
	fs := newFlagSet("report")
	dbPath := fs.String("db", "", "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("report takes one subject")
	}

	repo, err := a.openStore(*dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	report, err := service.NewPipeline(a.engine, repo, nil).SubjectReport(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	return a.writeJSON(report)
}

func runImport(a *app, args []string) error {
	fs := newFlagSet("import")
	dbPath := fs.String("db", "", "SQLite database path")
	format := fs.String("format", "json", "Ontology format")
	replace := fs.Bool("replace", false, "Replace the configured graph instead of appending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, err := a.openStore(*dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	r, err := a.inputFile(fs)
	if err != nil {
		return err
	}
	defer r.Close()

	pipeline := service.NewPipeline(a.engine, repo, nil)
	load := pipeline.Import
	if *replace {
		load = pipeline.Reload
	}
	result, err := load(context.Background(), *format, r)
	if err != nil {
		return err
	}
	return a.println(fmt.Sprintf("imported %d statements", result.Statements))
}

func runExport(a *app, args []string) error {
	fs := newFlagSet("export")
	dbPath := fs.String("db", "", "SQLite database path")
	format := fs.String("format", "json", "Ontology format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, err := a.openStore(*dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	return service.NewPipeline(a.engine, repo, nil).Export(context.Background(), *format, a.stdout)
}
