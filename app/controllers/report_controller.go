package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/app/services/backend"
	"github.com/shashiranjanraj/shakkar/app/services/jobs"
	"github.com/shashiranjanraj/shakkar/app/views"
	"github.com/shashiranjanraj/shakkar/pkg/event"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
)

// ReportController drives report generation end to end on a single page
// visit: start the job, poll to completion, fetch the download links.
type ReportController struct {
	backend *backend.Client
	poller  *jobs.Poller
}

func NewReportController(client *backend.Client, poller *jobs.Poller) *ReportController {
	return &ReportController{backend: client, poller: poller}
}

// Generate runs the whole flow. No banner on this page.
func (c *ReportController) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	arn, err := c.backend.CreateReport(r.Context())
	if err != nil {
		log.Error("report creation rejected", "error", err)
		renderError(w, r, err.Error())
		return
	}

	log.Info("report job started, polling", "executionArn", arn)
	_, err = c.poller.Wait(r.Context(), "report", func(ctx context.Context) (models.JobState, error) {
		return c.backend.ReportStatus(ctx, arn)
	})
	if err != nil {
		var term *jobs.TerminalError
		if errors.As(err, &term) {
			renderError(w, r, term.Output)
			return
		}
		log.Error("report status poll failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	event.FireAsync("report.generated", models.ReportGeneratedEvent{ExecutionArn: arn})

	urls, err := c.backend.PresignedURLs(r.Context(), arn)
	if err != nil {
		log.Error("presigned url fetch failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	views.Render(w, "report", page(r, "Reports", false, struct{ Urls models.ReportURLs }{urls}))
}
