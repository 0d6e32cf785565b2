// Package service composes the translation packages into the operations
// offered by the CLI and the HTTP API.
//
// # Engine
//
// Engine exposes every translation as a text-in, text-out operation:
// thick triple to OFN and back, LDTab rows to OFN, signature extraction,
// typing and labeling, and documentation rendering. It holds only
// configuration.
//
// # Pipeline
//
// Pipeline combines the engine with a repository.StatementStore. It imports
// ontologies into the store, reports on the statements of a subject, and
// renders batches of LDTab objects with a single typing and labeling lookup.
//
// # Event System
//
// Pipelines publish events via EventBus when statements are imported and
// reports are generated. The server forwards them to Server-Sent Events
// clients.
package service
