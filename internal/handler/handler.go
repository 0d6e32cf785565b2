package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"wiring/internal/domain"
	"wiring/internal/service"
)

// TranslationHandler handles translation API requests
type TranslationHandler struct {
	engine   *service.Engine
	pipeline *service.Pipeline
}

// NewTranslationHandler creates a new translation handler. pipeline may be
// nil, in which case the store-backed endpoints answer 503.
func NewTranslationHandler(engine *service.Engine, pipeline *service.Pipeline) *TranslationHandler {
	return &TranslationHandler{engine: engine, pipeline: pipeline}
}

// Register adds every route of the handler to mux
func (h *TranslationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/formats", h.Formats)

	mux.HandleFunc("POST /api/thick-to-ofn", h.ThickToOFN)
	mux.HandleFunc("POST /api/ofn-to-thick", h.OFNToThick)
	mux.HandleFunc("POST /api/ldtab-to-ofn", h.LDTabToOFN)
	mux.HandleFunc("POST /api/object-to-ofn", h.ObjectToOFN)
	mux.HandleFunc("POST /api/ofn-to-ldtab", h.OFNToLDTab)
	mux.HandleFunc("POST /api/signature", h.Signature)
	mux.HandleFunc("POST /api/types/extract", h.ExtractTypes)
	mux.HandleFunc("POST /api/types/inject", h.InjectTypes)
	mux.HandleFunc("POST /api/labels/extract", h.ExtractLabels)
	mux.HandleFunc("POST /api/labels/inject", h.InjectLabels)
	mux.HandleFunc("POST /api/render", h.RenderDocumentation)
	mux.HandleFunc("POST /api/manchester", h.OFNToManchester)

	mux.HandleFunc("POST /api/manchester/objects", h.ObjectsToManchester)
	mux.HandleFunc("GET /api/subjects/{subject}", h.SubjectReport)
	mux.HandleFunc("POST /api/import/{format}", h.Import)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TextRequest carries one OFN-S expression or thick triple
type TextRequest struct {
	Text string `json:"text"`
}

// ResultResponse carries one translated expression
type ResultResponse struct {
	Result string `json:"result"`
}

// LDTabRequest carries the columns of one LDTab row
type LDTabRequest struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// ObjectRequest carries one thick-triple object
type ObjectRequest struct {
	Object string `json:"object"`
}

// SignatureResponse lists the identifiers of an expression
type SignatureResponse struct {
	Signature []string `json:"signature"`
}

// ExtractRequest carries ontology text. Format defaults to json.
type ExtractRequest struct {
	Format     string   `json:"format,omitempty"`
	Text       string   `json:"text"`
	Predicates []string `json:"predicates,omitempty"`
}

// DecorateRequest carries an expression with optional typing and
// labeling maps
type DecorateRequest struct {
	Text   string          `json:"text"`
	Types  domain.TypeMap  `json:"types,omitempty"`
	Labels domain.LabelMap `json:"labels,omitempty"`
}

// ObjectsRequest carries a batch of thick-triple objects
type ObjectsRequest struct {
	Objects []string `json:"objects"`
}

// ObjectsResponse carries one rendering per requested object
type ObjectsResponse struct {
	Results []string `json:"results"`
}

// Formats lists the registered ontology formats
func (h *TranslationHandler) Formats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string][]string{"formats": h.engine.Codecs().Formats()}, http.StatusOK)
}

// ThickToOFN translates a thick triple to OFN-S
func (h *TranslationHandler) ThickToOFN(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.ThickToOFN(req.Text)
	if err != nil {
		h.writeFailure(w, "Failed to translate thick triple", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// OFNToThick translates an OFN-S axiom to a thick triple
func (h *TranslationHandler) OFNToThick(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.OFNToThick(req.Text)
	if err != nil {
		h.writeFailure(w, "Failed to translate axiom", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// LDTabToOFN assembles an axiom from LDTab row columns
func (h *TranslationHandler) LDTabToOFN(w http.ResponseWriter, r *http.Request) {
	var req LDTabRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.LDTabToOFN(req.Subject, req.Predicate, req.Object)
	if err != nil {
		h.writeFailure(w, "Failed to translate LDTab row", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// ObjectToOFN translates a thick-triple object to an OFN-S expression
func (h *TranslationHandler) ObjectToOFN(w http.ResponseWriter, r *http.Request) {
	var req ObjectRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.ObjectToOFN(req.Object)
	if err != nil {
		h.writeFailure(w, "Failed to translate object", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// OFNToLDTab translates an OFN-S axiom to an LDTab row
func (h *TranslationHandler) OFNToLDTab(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}
	stmt, err := h.engine.OFNToLDTab(req.Text)
	if err != nil {
		h.writeFailure(w, "Failed to translate axiom", err)
		return
	}
	h.writeJSON(w, stmt, http.StatusOK)
}

// Signature lists the identifiers of an OFN-S expression
func (h *TranslationHandler) Signature(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}
	sig, err := h.engine.Signature(req.Text)
	if err != nil {
		h.writeFailure(w, "Failed to extract signature", err)
		return
	}
	if sig == nil {
		sig = []string{}
	}
	h.writeJSON(w, SignatureResponse{Signature: sig}, http.StatusOK)
}

// ExtractTypes builds the typing map of an ontology
func (h *TranslationHandler) ExtractTypes(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !h.decode(w, r, &req) {
		return
	}
	types, err := h.engine.ExtractTypes(req.Format, req.Text)
	if err != nil {
		h.writeFailure(w, "Failed to extract types", err)
		return
	}
	h.writeJSON(w, types, http.StatusOK)
}

// InjectTypes resolves the untyped operators of an expression
func (h *TranslationHandler) InjectTypes(w http.ResponseWriter, r *http.Request) {
	var req DecorateRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.InjectTypes(req.Text, req.Types)
	if err != nil {
		h.writeFailure(w, "Failed to inject types", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// ExtractLabels builds the labeling map of an ontology
func (h *TranslationHandler) ExtractLabels(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !h.decode(w, r, &req) {
		return
	}
	labels, err := h.engine.ExtractLabels(req.Format, req.Text, req.Predicates...)
	if err != nil {
		h.writeFailure(w, "Failed to extract labels", err)
		return
	}
	h.writeJSON(w, labels, http.StatusOK)
}

// InjectLabels attaches labels to the entities of an expression
func (h *TranslationHandler) InjectLabels(w http.ResponseWriter, r *http.Request) {
	var req DecorateRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.InjectLabels(req.Text, req.Labels)
	if err != nil {
		h.writeFailure(w, "Failed to inject labels", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// RenderDocumentation renders an expression as a document
func (h *TranslationHandler) RenderDocumentation(w http.ResponseWriter, r *http.Request) {
	var req DecorateRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.engine.RenderDocumentation(req.Text, req.Types, req.Labels)
	if err != nil {
		h.writeFailure(w, "Failed to render expression", err)
		return
	}
	h.writeJSON(w, doc, http.StatusOK)
}

// OFNToManchester renders an expression in Manchester syntax
func (h *TranslationHandler) OFNToManchester(w http.ResponseWriter, r *http.Request) {
	var req DecorateRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.engine.OFNToManchester(req.Text, req.Types, req.Labels)
	if err != nil {
		h.writeFailure(w, "Failed to render expression", err)
		return
	}
	h.writeJSON(w, ResultResponse{Result: out}, http.StatusOK)
}

// ObjectsToManchester renders a batch of objects using types and labels
// from the store
func (h *TranslationHandler) ObjectsToManchester(w http.ResponseWriter, r *http.Request) {
	if !h.requirePipeline(w) {
		return
	}
	var req ObjectsRequest
	if !h.decode(w, r, &req) {
		return
	}
	results, err := h.pipeline.ObjectsToManchester(r.Context(), req.Objects)
	if err != nil {
		log.Printf("Failed to render objects: %v", err)
		h.writeFailure(w, "Failed to render objects", err)
		return
	}
	if results == nil {
		results = []string{}
	}
	h.writeJSON(w, ObjectsResponse{Results: results}, http.StatusOK)
}

// SubjectReport translates every stored statement of a subject
func (h *TranslationHandler) SubjectReport(w http.ResponseWriter, r *http.Request) {
	if !h.requirePipeline(w) {
		return
	}
	subject := r.PathValue("subject")
	if subject == "" {
		h.writeError(w, "Invalid subject", "Subject is required", http.StatusBadRequest)
		return
	}

	report, err := h.pipeline.SubjectReport(r.Context(), subject)
	if err != nil {
		if !errors.Is(err, service.ErrSubjectNotFound) {
			log.Printf("Failed to build report for %s: %v", subject, err)
		}
		h.writeFailure(w, "Failed to build report", err)
		return
	}
	h.writeJSON(w, report, http.StatusOK)
}

// Import loads an ontology in the path's format into the store
func (h *TranslationHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !h.requirePipeline(w) {
		return
	}
	format := r.PathValue("format")

	result, err := h.pipeline.Import(r.Context(), format, r.Body)
	if err != nil {
		log.Printf("Failed to import %s ontology: %v", format, err)
		h.writeFailure(w, "Failed to import ontology", err)
		return
	}
	h.writeJSON(w, result, http.StatusOK)
}

// Export writes every stored statement in the path's format
func (h *TranslationHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.requirePipeline(w) {
		return
	}
	format := r.PathValue("format")

	var buf bytes.Buffer
	if err := h.pipeline.Export(r.Context(), format, &buf); err != nil {
		log.Printf("Failed to export %s ontology: %v", format, err)
		h.writeFailure(w, "Failed to export ontology", err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, &buf); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "yaml":
		return "application/x-yaml"
	case "ntriples":
		return "application/n-triples"
	case "nquads":
		return "application/n-quads"
	default:
		return "application/octet-stream"
	}
}

func (h *TranslationHandler) requirePipeline(w http.ResponseWriter) bool {
	if h.pipeline == nil {
		h.writeError(w, "Store not configured", "", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (h *TranslationHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusOf maps an engine error to an HTTP status
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownFormat):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSyntax),
		errors.Is(err, domain.ErrMalformedObject):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGrammar),
		errors.Is(err, domain.ErrUnknownPredicate),
		errors.Is(err, domain.ErrUnsupportedAxiom),
		errors.Is(err, domain.ErrTooDeep):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *TranslationHandler) writeFailure(w http.ResponseWriter, message string, err error) {
	h.writeError(w, message, err.Error(), statusOf(err))
}

func (h *TranslationHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *TranslationHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
