//go:build wasm

package main

import (
	"encoding/json"
	"errors"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/calclex/pkg/lexer"
	"github.com/praetorian-inc/calclex/pkg/scanner"
	"github.com/praetorian-inc/calclex/pkg/types"
)

var (
	scanners   = make(map[int]*scanner.Core)
	scannersMu sync.RWMutex
	nextID     int
)

// runResult is the stateless CalclexRun response.
type runResult struct {
	Tokens []types.Token `json:"tokens"`
	Error  *types.Error  `json:"error,omitempty"`
}

// run lexes text without recording it.
// JS: CalclexRun(text, filename?) -> JSON {tokens, error} or error
func run(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "text argument required"}
	}

	text := args[0].String()
	filename := types.DefaultFilename
	if len(args) > 1 && args[1].String() != "" {
		filename = args[1].String()
	}

	res := runResult{Tokens: []types.Token{}}
	tokens, err := lexer.Run(filename, text)
	if err != nil {
		var lexErr *types.Error
		if !errors.As(err, &lexErr) {
			return map[string]interface{}{"error": "lex failed: " + err.Error()}
		}
		res.Error = lexErr
	} else {
		res.Tokens = tokens
	}

	jsonBytes, err := json.Marshal(res)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}
	return string(jsonBytes)
}

// newScanner creates a scanner that records scans in memory.
// JS: CalclexNewScanner() -> handle (int) or error string
func newScanner(this js.Value, args []js.Value) interface{} {
	core, err := scanner.NewCore(nil, nil)
	if err != nil {
		return map[string]interface{}{"error": "failed to create scanner: " + err.Error()}
	}

	scannersMu.Lock()
	id := nextID
	nextID++
	scanners[id] = core
	scannersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// lex lexes a single content string.
// JS: CalclexLex(handle, content, source) -> JSON result or error
func lex(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and content arguments required"}
	}

	handle := args[0].Int()
	content := args[1].String()
	source := ""
	if len(args) > 2 {
		source = args[2].String()
	}

	scannersMu.RLock()
	core, ok := scanners[handle]
	scannersMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid scanner handle"}
	}

	result, err := core.Scan(content, source)
	if err != nil {
		return map[string]interface{}{"error": "lex failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}

	return string(jsonBytes)
}

// lexBatch lexes multiple content items.
// JS: CalclexLexBatch(handle, itemsJSON) -> JSON results or error
func lexBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and itemsJSON arguments required"}
	}

	handle := args[0].Int()
	itemsJSON := args[1].String()

	scannersMu.RLock()
	core, ok := scanners[handle]
	scannersMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid scanner handle"}
	}

	var items []scanner.ContentItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return map[string]interface{}{"error": "failed to parse items JSON: " + err.Error()}
	}

	batchResult, err := core.ScanBatch(items)
	if err != nil {
		return map[string]interface{}{"error": "batch lex failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(batchResult)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}

	return string(jsonBytes)
}

// closeScanner closes a scanner and releases resources.
// JS: CalclexCloseScanner(handle)
func closeScanner(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	scannersMu.Lock()
	core, ok := scanners[handle]
	if ok {
		delete(scanners, handle)
	}
	scannersMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid scanner handle"}
	}

	core.Close()

	return nil
}
