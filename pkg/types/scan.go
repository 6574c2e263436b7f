package types

// ScanResult records one scan of a source: either its tokens or the
// lexical error that stopped it.
type ScanResult struct {
	ID       SourceID `json:"id"`
	Filename string   `json:"filename"`
	Source   string   `json:"source"`
	Tokens   []Token  `json:"tokens"`
	Error    *Error   `json:"error,omitempty"`
}

// NewScanResult builds a ScanResult from the output of a scan. A non-nil
// lexErr takes precedence and the tokens are dropped.
func NewScanResult(filename, source string, tokens []Token, lexErr *Error) *ScanResult {
	r := &ScanResult{
		ID:       ComputeSourceID([]byte(source)),
		Filename: filename,
		Source:   source,
		Tokens:   tokens,
	}
	if lexErr != nil {
		r.Tokens = nil
		r.Error = lexErr
	}
	if r.Tokens == nil {
		r.Tokens = []Token{}
	}
	return r
}

// OK reports whether the scan finished without a lexical error.
func (r *ScanResult) OK() bool {
	return r.Error == nil
}
