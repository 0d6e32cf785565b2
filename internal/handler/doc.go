// Package handler implements the HTTP JSON API for the translation engine.
//
// TranslationHandler exposes one POST endpoint per engine operation. Each
// request carries OFN-S or thick-triple text in a JSON body and each
// response wraps the translated result. The store-backed endpoints report
// on a subject's statements, render batches of objects in Manchester
// syntax, and import or export whole ontologies.
//
// # Errors
//
// Failures are returned as {error, details}. Malformed input maps to 400,
// input that parses but cannot be translated maps to 422, and an unknown
// subject maps to 404.
//
// # Middleware
//
// Chain composes Recover and Logger around the mux.
package handler
