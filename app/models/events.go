package models

// OrderPlacedEvent is fired after an order job reaches SUCCEEDED.
type OrderPlacedEvent struct {
	CustomerName string
	Email        string
	Items        int
	Total        string
	ExecutionArn string
}

// ReportGeneratedEvent is fired after a report job reaches SUCCEEDED.
type ReportGeneratedEvent struct {
	ExecutionArn string
}
