// Package cart holds the catalog selection state for a checkout. A cart is a
// value type: mutations return a new cart, so a half-applied update can never
// be observed by a concurrent render.
package cart

import (
	"strconv"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/pkg/collection"
)

// Line is one catalog row with the visitor's chosen quantity.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Amount is the line price: current product price times chosen quantity.
func (l Line) Amount() models.Money {
	return l.Product.Price * models.Money(l.Quantity)
}

// Cart is the full catalog with per-line quantities, keyed by product name.
type Cart struct {
	Lines []Line `json:"lines"`
}

// FromProducts builds a cart with every quantity at zero.
func FromProducts(products []models.Product) Cart {
	return Cart{Lines: collection.Map(products, func(p models.Product) Line {
		return Line{Product: p}
	})}
}

// SetQuantity returns a cart with the named product's quantity replaced.
// The raw value is parsed leniently: anything unparseable counts as zero,
// and the result is clamped to [0, inventory_count]. Only the addressed
// line changes.
func (c Cart) SetQuantity(productName, raw string) Cart {
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)

	for i, line := range out.Lines {
		if line.Product.Name != productName {
			continue
		}
		out.Lines[i].Quantity = clamp(parseQuantity(raw), 0, int(line.Product.InventoryCount))
	}
	return out
}

// Selected returns the lines with a positive quantity.
func (c Cart) Selected() []Line {
	return collection.Filter(c.Lines, func(l Line) bool { return l.Quantity > 0 })
}

// IsEmpty reports whether nothing is selected. Checking out an empty cart
// is a no-op.
func (c Cart) IsEmpty() bool { return len(c.Selected()) == 0 }

// Total returns the selection total formatted with exactly two decimals.
func (c Cart) Total() string {
	sum := collection.Reduce(c.Lines, models.Money(0), func(acc models.Money, l Line) models.Money {
		return acc + l.Amount()
	})
	return sum.String()
}

// SubmitItems converts the selection into the order submission payload lines.
func (c Cart) SubmitItems() []models.SubmitItem {
	return collection.Map(c.Selected(), func(l Line) models.SubmitItem {
		return models.SubmitItem{
			Name:           l.Product.Name,
			ID:             l.Product.ID,
			Quantity:       l.Quantity,
			Price:          l.Product.Price,
			InventoryCount: l.Product.InventoryCount,
			Image:          l.Product.Image,
		}
	})
}

func parseQuantity(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
