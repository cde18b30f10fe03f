package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/shakkar/app/models"
)

func catalog() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Sugar 1kg", Price: 3.5, InventoryCount: 10},
		{ID: "p2", Name: "Jaggery 500g", Price: 2.25, InventoryCount: 4},
		{ID: "p3", Name: "Honey 250g", Price: 7, InventoryCount: 0},
	}
}

func TestSetQuantityClampsToInventory(t *testing.T) {
	c := FromProducts(catalog())

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"Sugar 1kg", "3", 3},
		{"Sugar 1kg", "99", 10},  // above stock clamps down
		{"Sugar 1kg", "-2", 0},   // negative clamps to zero
		{"Sugar 1kg", "abc", 0},  // unparseable counts as zero
		{"Honey 250g", "1", 0},   // out of stock stays zero
	}

	for _, tt := range tests {
		got := c.SetQuantity(tt.name, tt.raw)
		for _, line := range got.Lines {
			if line.Product.Name == tt.name {
				assert.Equal(t, tt.want, line.Quantity, "raw=%q", tt.raw)
			}
		}
	}
}

func TestSetQuantityReplacesOnlyThatLine(t *testing.T) {
	c := FromProducts(catalog()).SetQuantity("Sugar 1kg", "2")
	c2 := c.SetQuantity("Jaggery 500g", "1")

	// Original cart untouched.
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 0, c.Lines[1].Quantity)

	// New cart has both lines.
	assert.Equal(t, 2, c2.Lines[0].Quantity)
	assert.Equal(t, 1, c2.Lines[1].Quantity)
}

func TestTotalHasExactlyTwoDecimals(t *testing.T) {
	c := FromProducts(catalog()).
		SetQuantity("Sugar 1kg", "2").    // 7.00
		SetQuantity("Jaggery 500g", "3") // 6.75

	assert.Equal(t, "13.75", c.Total())

	empty := FromProducts(catalog())
	assert.Equal(t, "0.00", empty.Total())
}

func TestSelectedFiltersZeroQuantities(t *testing.T) {
	c := FromProducts(catalog())
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Selected())

	c = c.SetQuantity("Jaggery 500g", "2")
	sel := c.Selected()

	assert.False(t, c.IsEmpty())
	assert.Len(t, sel, 1)
	assert.Equal(t, "Jaggery 500g", sel[0].Product.Name)
}

func TestSubmitItemsCarriesWireFields(t *testing.T) {
	c := FromProducts(catalog()).SetQuantity("Sugar 1kg", "4")

	items := c.SubmitItems()
	assert.Len(t, items, 1)
	assert.Equal(t, models.SubmitItem{
		Name:           "Sugar 1kg",
		ID:             "p1",
		Quantity:       4,
		Price:          3.5,
		InventoryCount: 10,
	}, items[0])
}
