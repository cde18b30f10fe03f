package routes

import (
	"sync"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/pkg/event"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
)

var listenersOnce sync.Once

// registerListeners subscribes the audit log to the storefront lifecycle
// events. Registered once; Register may be called repeatedly in tests.
func registerListeners() {
	listenersOnce.Do(func() {
		event.Listen("order.placed", func(payload interface{}) {
			if e, ok := payload.(models.OrderPlacedEvent); ok {
				logger.Info("order placed",
					"customer", e.CustomerName, "items", e.Items,
					"total", e.Total, "executionArn", e.ExecutionArn)
			}
		})

		event.Listen("report.generated", func(payload interface{}) {
			if e, ok := payload.(models.ReportGeneratedEvent); ok {
				logger.Info("report generated", "executionArn", e.ExecutionArn)
			}
		})
	})
}
