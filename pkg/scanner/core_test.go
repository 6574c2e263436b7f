package scanner

import (
	"bytes"
	"testing"

	"github.com/praetorian-inc/calclex/pkg/log"
	"github.com/praetorian-inc/calclex/pkg/store"
	"github.com/praetorian-inc/calclex/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCore_PrivateStore(t *testing.T) {
	core, err := NewCore(nil, nil)
	require.NoError(t, err)
	defer core.Close()

	assert.NotNil(t, core.Store())
	assert.True(t, core.ownsStore)
}

func TestCore_Scan(t *testing.T) {
	core, err := NewCore(nil, nil)
	require.NoError(t, err)
	defer core.Close()

	result, err := core.Scan("(1+2)*3", "expr.calc")
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "expr.calc", result.Filename)
	assert.Len(t, result.Tokens, 7)

	stored, err := core.Store().GetAllScans()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, result.ID, stored[0].ID)
}

func TestCore_ScanLexicalError(t *testing.T) {
	core, err := NewCore(nil, nil)
	require.NoError(t, err)
	defer core.Close()

	result, err := core.Scan("12+23.3+g", "")
	require.NoError(t, err, "lexical errors are results, not failures")
	require.NotNil(t, result.Error)
	assert.Equal(t, types.IllegalCharacter, result.Error.Kind)
	assert.Equal(t, "<stdin>", result.Filename)
	assert.Equal(t, "<stdin>", result.Error.Start.Filename)
	assert.Empty(t, result.Tokens)
}

func TestCore_ScanBatch(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.New(log.Config{Level: "debug", Output: &buf})
	require.NoError(t, err)

	st := store.NewMemory()
	core, err := NewCore(st, logger)
	require.NoError(t, err)

	batch, err := core.ScanBatch([]ContentItem{
		{Source: "a", Content: "1 + 2"},
		{Source: "b", Content: "1.2.3"},
		{Source: "c", Content: "4.5 / (6 - 7)"},
	})
	require.NoError(t, err)
	require.Len(t, batch.Results, 3)
	assert.Equal(t, 3+7, batch.Total)
	assert.Equal(t, 1, batch.Failed)
	assert.Equal(t, types.IllegalNumber, batch.Results[1].Error.Kind)

	// Caller-supplied stores stay open after Close.
	require.NoError(t, core.Close())
	all, err := st.GetAllScans()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assert.Contains(t, buf.String(), "lexical error")
	assert.Contains(t, buf.String(), "IllegalNumber")
}
