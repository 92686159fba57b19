package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes one ingested document.
type Metadata struct {
	Filename   string `json:"filename"`
	Format     Format `json:"format"`
	Bytes      int    `json:"bytes"`
	Hash       string `json:"hash"`        // SHA256 hex digest of the raw bytes
	ReceivedAt string `json:"received_at"` // RFC3339 format
}

// NewMetadata describes data received under filename. Format is empty when unsupported.
func NewMetadata(filename string, data []byte) *Metadata {
	format, _ := DetectFormat(filename)
	return &Metadata{
		Filename:   filename,
		Format:     format,
		Bytes:      len(data),
		Hash:       computeHash(data),
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
