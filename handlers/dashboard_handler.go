package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type DashboardHandler struct {
	reports *services.ReportService
}

func NewDashboardHandler(reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// GET /dashboard/daily?classroom_id=&date=
// classroom_id kosong = rekap lintas semua kelas aktif; date kosong = hari ini.
func (h *DashboardHandler) Daily(c echo.Context) error {
	classroomID := uint(atoiOr(c.QueryParam("classroom_id"), 0))

	date := time.Now()
	if s := c.QueryParam("date"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":  "VALIDATION_ERROR",
				"fields": map[string]string{"date": "tanggal harus YYYY-MM-DD"},
			})
		}
		date = d
	}

	if classroomID == 0 {
		stats, err := h.reports.DailyStatistics(date)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}

	sum, err := h.reports.DailySummary(classroomID, date)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}
