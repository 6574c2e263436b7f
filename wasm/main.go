//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("CalclexRun", js.FuncOf(run))
	js.Global().Set("CalclexNewScanner", js.FuncOf(newScanner))
	js.Global().Set("CalclexLex", js.FuncOf(lex))
	js.Global().Set("CalclexLexBatch", js.FuncOf(lexBatch))
	js.Global().Set("CalclexCloseScanner", js.FuncOf(closeScanner))

	// Keep WASM running
	<-make(chan struct{})
}
