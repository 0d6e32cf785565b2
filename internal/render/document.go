package render

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"

	"wiring/internal/ofn"
)

// Document is the rendered documentation of one expression
type Document struct {
	// ID is the structural fingerprint of the expression, in hex
	ID         string `json:"id" yaml:"id"`
	OFN        string `json:"ofn" yaml:"ofn"`
	Text       string `json:"text" yaml:"text"`
	Manchester string `json:"manchester" yaml:"manchester"`
	// Hash is the BLAKE2b-256 digest of Text, in hex
	Hash string `json:"hash" yaml:"hash"`
}

// NewDocument renders e in every supported form
func NewDocument(e ofn.Expr) Document {
	text := Text(e)
	sum := blake2b.Sum256([]byte(text))
	return Document{
		ID:         strconv.FormatUint(ofn.Fingerprint(e), 16),
		OFN:        ofn.Serialize(e),
		Text:       text,
		Manchester: Manchester(e),
		Hash:       hex.EncodeToString(sum[:]),
	}
}
