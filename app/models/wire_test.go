package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesQuotedAndBareNumbers(t *testing.T) {
	// The backend serialises prices and counts inconsistently across
	// handlers; both shapes must land in the same struct.
	raw := `{"products":[
		{"id":"p1","product_name":"Choco Chip","price":"3.50","inventory_count":"12"},
		{"id":"p2","product_name":"Oatmeal","price":2.25,"inventory_count":4.0}
	]}`

	var list ProductList
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.Len(t, list.Products, 2)

	assert.Equal(t, Money(3.5), list.Products[0].Price)
	assert.Equal(t, FlexInt(12), list.Products[0].InventoryCount)
	assert.Equal(t, Money(2.25), list.Products[1].Price)
	assert.Equal(t, FlexInt(4), list.Products[1].InventoryCount)
}

func TestMoneyNullAndEmptyDecodeToZero(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, Money(0), m)

	require.NoError(t, json.Unmarshal([]byte(`""`), &m))
	assert.Equal(t, Money(0), m)

	assert.Error(t, json.Unmarshal([]byte(`"3,50"`), &m))
}

func TestMoneyStringAlwaysTwoDecimals(t *testing.T) {
	assert.Equal(t, "7.00", Money(7).String())
	assert.Equal(t, "3.50", Money(3.5).String())
	assert.Equal(t, "0.00", Money(0).String())
}

func TestOrderDateNormalisesKnownLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2026-08-12T09:30:00Z", "2026-08-12"},
		{"2026-08-12T09:30:00+05:30", "2026-08-12"},
		{"2026-08-12 09:30:00", "2026-08-12"},
		// Unparseable values render raw rather than blanking the row.
		{"last tuesday", "last tuesday"},
	}

	for _, tt := range tests {
		o := Order{OrderTime: tt.raw}
		assert.Equal(t, tt.want, o.OrderDate(), "raw=%q", tt.raw)
	}
}

func TestOrderItemCount(t *testing.T) {
	o := Order{OrderedItems: []OrderedItem{{}, {}, {}}}
	assert.Equal(t, 3, o.ItemCount())
}
