// Package models holds the wire shapes exchanged with the commerce backend.
// Field names and json tags follow the backend's responses exactly; a few
// numeric fields arrive as either a JSON number or a quoted string depending
// on which backend handler produced them, so those use tolerant types.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Money is a price that decodes from either a JSON number or a quoted
// numeric string.
type Money float64

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("models: price %q: %w", b, err)
	}
	*m = Money(f)
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

// String renders the amount with exactly two decimals.
func (m Money) String() string { return strconv.FormatFloat(float64(m), 'f', 2, 64) }

// FlexInt is an integer that decodes from either a JSON number or a quoted
// numeric string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	// Some handlers serialise counts as floats ("3.0").
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("models: integer %q: %w", b, err)
	}
	*n = FlexInt(int(f))
	return nil
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(n))
}

// Product is a catalog entry.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"product_name"`
	Price          Money   `json:"price"`
	InventoryCount FlexInt `json:"inventory_count"`
	Image          string  `json:"image"`
}

// ProductList is the /products response envelope.
type ProductList struct {
	Products []Product `json:"products"`
}
