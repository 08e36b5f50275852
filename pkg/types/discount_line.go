package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountLine is the persisted form of one applied discount.
type DiscountLine struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// DiscountLines maps to a jsonb column holding the ordered discount list.
type DiscountLines []DiscountLine

// Value implements driver.Valuer so the slice can be stored as jsonb.
func (d DiscountLines) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal discount lines: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner for the jsonb discount column.
func (d *DiscountLines) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported discount lines type %T", value)
	}

	if len(raw) == 0 {
		*d = DiscountLines{}
		return nil
	}
	return json.Unmarshal(raw, d)
}
