package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Calculator computes checksums of schema content.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of the canonical form of the content.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of the canonical JSON form of content.
// Content that is not valid JSON is hashed with surrounding whitespace trimmed.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256(Canonicalize(content))
	return hex.EncodeToString(hash[:])
}

// Canonicalize returns the canonical JSON encoding of content: object keys in
// sorted order, no insignificant whitespace, numbers kept verbatim.
func Canonicalize(content []byte) []byte {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return bytes.TrimSpace(content)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return bytes.TrimSpace(content)
	}
	return out
}
