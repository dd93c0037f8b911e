package handler

import (
	"time"

	reportapp "github.com/fintrack/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the owner-wide totals, percentages, and expense breakdown
func (h *ReportHandler) Summary(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// DailySeries returns the day-by-day income/expense chart series.
// The window defaults to the last 30 days when from/to are omitted.
func (h *ReportHandler) DailySeries(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		h.BadRequest(c, "'from' must be a YYYY-MM-DD date")
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		h.BadRequest(c, "'to' must be a YYYY-MM-DD date")
		return
	}

	series, err := h.reportService.DailySeries(c.Request.Context(), ownerID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
