package scanner

import "github.com/praetorian-inc/calclex/pkg/types"

// ContentItem represents a content item to lex
type ContentItem struct {
	Source   string            `json:"source"`   // display name, e.g. "expr.calc" or "<stdin>"
	Content  string            `json:"content"`  // the expression text
	Metadata map[string]string `json:"metadata"` // optional metadata
}

// BatchScanResult represents batch scan results
type BatchScanResult struct {
	Results []*types.ScanResult `json:"results"`
	Total   int                 `json:"total"`  // tokens across successful scans
	Failed  int                 `json:"failed"` // scans that ended in a lexical error
}
