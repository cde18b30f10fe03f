package models

import "time"

// OrderedItem is one line of a placed order.
type OrderedItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    FlexInt `json:"quantity"`
	Amount      Money   `json:"amount"`
}

// Order is a placed order as returned by /orders and /orders/{id}.
type Order struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customer_name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	OrderedItems []OrderedItem `json:"ordered_items"`
	TotalAmount  string        `json:"total_amount"`
	OrderTime    string        `json:"order_time"`
}

// OrderList is the /orders response envelope.
type OrderList struct {
	Orders []Order `json:"orders"`
}

// ItemCount returns the number of lines on the order.
func (o Order) ItemCount() int { return len(o.OrderedItems) }

// OrderDate renders the order timestamp as yyyy-mm-dd. Unparseable
// timestamps fall back to the raw value so the row still renders.
func (o Order) OrderDate() string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, o.OrderTime); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return o.OrderTime
}

// CustomerInfo is the contact block collected before order submission.
type CustomerInfo struct {
	CustomerName string `json:"customer_name" form:"customer_name" validate:"required,min=2,max=100"`
	Email        string `json:"email"         form:"email"         validate:"required,email"`
	Phone        string `json:"phone"         form:"phone"         validate:"required,phone"`
}

// SubmitItem is one product line in the order submission payload.
type SubmitItem struct {
	Name           string  `json:"name"`
	ID             string  `json:"id"`
	Quantity       int     `json:"quantity"`
	Price          Money   `json:"price"`
	InventoryCount FlexInt `json:"inventory_count"`
	Image          string  `json:"image"`
}

// OrderSubmission is the POST /orders request body.
type OrderSubmission struct {
	PersonalInfo    CustomerInfo    `json:"personalInfo"`
	CustomerProduct CustomerProduct `json:"customerproduct"`
}

// CustomerProduct wraps the selected product lines.
type CustomerProduct struct {
	ProductsToSubmit []SubmitItem `json:"productsToSubmit"`
}
