// Command wiring translates between OFN-S, thick triples and LDTab rows.
//
// Usage:
//
//	wiring [-config path] <command> [flags] [input]
//
// Input is the first argument after the flags, or stdin when it is absent
// or "-". Results are written to stdout.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"wiring/internal/config"
	"wiring/internal/repository/sqlite"
	"wiring/internal/service"
)

type command struct {
	usage string
	run   func(app *app, args []string) error
}

var commands = map[string]command{
	"thick2ofn":     {"translate a thick triple to OFN-S", runThickToOFN},
	"ofn2thick":     {"translate an OFN-S axiom to a thick triple", runOFNToThick},
	"ldtab2ofn":     {"assemble an axiom from LDTab subject, predicate and object", runLDTabToOFN},
	"object2ofn":    {"translate a thick-triple object to OFN-S", runObjectToOFN},
	"ofn2ldtab":     {"translate an OFN-S axiom to an LDTab row", runOFNToLDTab},
	"signature":     {"list the identifiers of an OFN-S expression", runSignature},
	"types":         {"extract the typing map of an ontology", runExtractTypes},
	"inject-types":  {"resolve untyped operators with a typing map", runInjectTypes},
	"labels":        {"extract the labeling map of an ontology", runExtractLabels},
	"inject-labels": {"attach labels to an OFN-S expression", runInjectLabels},
	"render":        {"render an OFN-S expression as a document", runRender},
	"manchester":    {"render an OFN-S expression in Manchester syntax", runManchester},
	"report":        {"translate every stored statement of a subject", runReport},
	"import":        {"load an ontology into the statement store", runImport},
	"export":        {"write the statement store as an ontology", runExport},
}

type app struct {
	cfg    *config.Config
	engine *service.Engine
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("wiring: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("wiring", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: wiring [-config path] <command> [flags] [input]\n\nCommands:\n")
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(fs.Output(), "  %-14s %s\n", name, commands[name].usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, _, err = config.LoadFromPath(*configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	a := &app{
		cfg:    cfg,
		engine: service.NewEngine(opts...),
		stdin:  stdin,
		stdout: stdout,
	}
	return cmd.run(a, fs.Args()[1:])
}

// input returns the first positional argument, or stdin when it is absent
// or "-"
func (a *app) input(fs *flag.FlagSet) (string, error) {
	if arg := fs.Arg(0); arg != "" && arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// inputFile returns the contents of the file named by the first positional
// argument, or stdin
func (a *app) inputFile(fs *flag.FlagSet) (io.ReadCloser, error) {
	if arg := fs.Arg(0); arg != "" && arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		return f, nil
	}
	return io.NopCloser(a.stdin), nil
}

func (a *app) println(s string) error {
	_, err := fmt.Fprintln(a.stdout, s)
	return err
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (a *app) openStore(path string) (*sqlite.Repository, error) {
	if path == "" {
		path = a.cfg.Database.Path
	}
	repo, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repo, nil
}

// readMap reads a JSON map from a file path; an empty path yields ""
func readMap(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read map: %w", err)
	}
	return string(data), nil
}
