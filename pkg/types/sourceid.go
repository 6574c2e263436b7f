package types

import (
	"crypto/sha1"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SourceID is a Git-style SHA-1 hash of source text (20 bytes).
type SourceID [20]byte

// ComputeSourceID computes SHA-1("blob {len}\0{content}"), matching the ID
// git assigns the same file contents.
func ComputeSourceID(content []byte) SourceID {
	header := fmt.Sprintf("blob %d\x00", len(content))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(content)

	var id SourceID
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns 40-character hex string.
func (id SourceID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements Stringer (returns Hex()).
func (id SourceID) String() string {
	return id.Hex()
}

// ParseSourceID parses 40-char hex string to SourceID.
func ParseSourceID(hexStr string) (SourceID, error) {
	if len(hexStr) != 40 {
		return SourceID{}, fmt.Errorf("invalid source ID length: expected 40, got %d", len(hexStr))
	}

	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return SourceID{}, fmt.Errorf("invalid hex string: %w", err)
	}

	var id SourceID
	copy(id[:], decoded)
	return id, nil
}

// MarshalJSON implements json.Marshaler.
func (id SourceID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *SourceID) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}

	parsed, err := ParseSourceID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

// Value implements driver.Valuer for SQL serialization.
func (id SourceID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan implements sql.Scanner for SQL deserialization.
func (id *SourceID) Scan(value interface{}) error {
	if value == nil {
		return fmt.Errorf("cannot scan nil into SourceID")
	}

	var hexStr string
	switch v := value.(type) {
	case string:
		hexStr = v
	case []byte:
		hexStr = string(v)
	default:
		return fmt.Errorf("cannot scan type %T into SourceID", value)
	}

	parsed, err := ParseSourceID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
