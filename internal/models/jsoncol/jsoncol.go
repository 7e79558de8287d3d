// Package jsoncol converts between Go documents and Spanner JSON columns.
package jsoncol

import (
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/bytedance/sonic"
)

// Encode wraps v for a JSON column write.
func Encode(v interface{}) spanner.NullJSON {
	return spanner.NullJSON{Value: v, Valid: true}
}

// Decode reads a JSON column into out. A NULL column leaves out untouched.
//
// The Spanner client decodes JSON into generic maps and slices, so the value
// is re-encoded and decoded again into the concrete type.
func Decode(col spanner.NullJSON, out interface{}) error {
	if !col.Valid || col.Value == nil {
		return nil
	}
	raw, err := sonic.Marshal(col.Value)
	if err != nil {
		return fmt.Errorf("failed to re-encode json column: %w", err)
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	return nil
}
