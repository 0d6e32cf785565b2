package service

import "errors"

var (
	// ErrUnknownFormat is returned for ontology formats without a codec
	ErrUnknownFormat = errors.New("unknown ontology format")
	// ErrSubjectNotFound is returned when the store has no statement for a subject
	ErrSubjectNotFound = errors.New("subject not found")
)
