package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/calclex/pkg/scanner"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "lex" | "lex_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// LexPayload is the payload for "lex" requests
type LexPayload struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// LexBatchPayload is the payload for "lex_batch" requests
type LexBatchPayload struct {
	Items []scanner.ContentItem `json:"items"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "lex" | "lex_batch" | "decode" | request type on failure
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
