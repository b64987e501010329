package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB maps a jsonb column to raw bytes for sqlx scanning.
type JSONB json.RawMessage

// Value implements driver.Valuer.
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONB) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*j = buf
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return fmt.Errorf("unsupported type for JSONB: %T", src)
	}
}

// MarshalJSONB encodes v into a JSONB value.
func MarshalJSONB(v interface{}) (JSONB, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb value: %w", err)
	}
	return JSONB(data), nil
}

// UnmarshalJSONB decodes a JSONB value into dest. A NULL column leaves dest
// untouched.
func (j JSONB) UnmarshalJSONB(dest interface{}) error {
	if len(j) == 0 {
		return nil
	}
	if err := json.Unmarshal([]byte(j), dest); err != nil {
		return fmt.Errorf("failed to decode jsonb value: %w", err)
	}
	return nil
}
