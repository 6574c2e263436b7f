package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSourceID(t *testing.T) {
	// Known git blob hash of the empty file.
	id := ComputeSourceID([]byte{})
	assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", id.Hex())

	// Same input, same ID.
	assert.Equal(t, ComputeSourceID([]byte("1+2")), ComputeSourceID([]byte("1+2")))
	assert.NotEqual(t, ComputeSourceID([]byte("1+2")), ComputeSourceID([]byte("1+3")))
}

func TestParseSourceID(t *testing.T) {
	id := ComputeSourceID([]byte("(1+2)*3"))

	parsed, err := ParseSourceID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseSourceID("abc")
	assert.Error(t, err)

	_, err = ParseSourceID("zz9de29bb2d1d6434b8b29ae775ad8c2e48c5391")
	assert.Error(t, err)
}

func TestSourceID_JSON(t *testing.T) {
	id := ComputeSourceID([]byte("42"))

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.Hex()+`"`, string(data))

	var decoded SourceID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestSourceID_SQL(t *testing.T) {
	id := ComputeSourceID([]byte("42"))

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), v)

	var scanned SourceID
	require.NoError(t, scanned.Scan([]byte(id.Hex())))
	assert.Equal(t, id, scanned)

	assert.Error(t, scanned.Scan(nil))
	assert.Error(t, scanned.Scan(42))
}
