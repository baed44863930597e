package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GET /reports/class/:id?start_date=&end_date=
func (h *ReportHandler) ClassReport(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.svc.ClassReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GET /reports/student/:id?start_date=&end_date=
func (h *ReportHandler) StudentReport(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.svc.StudentReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
