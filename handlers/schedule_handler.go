package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type ScheduleHandler struct {
	svc *services.ScheduleService
}

func NewScheduleHandler(svc *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// GET /schedule
func (h *ScheduleHandler) List(c echo.Context) error {
	items, err := h.svc.AllSchedules()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

type schedulePayload struct {
	DefaultJPCount int   `json:"default_jp_count"`
	IsSchoolDay    *bool `json:"is_school_day"`
}

// PUT /schedule/:day — day 0=Senin .. 6=Minggu
func (h *ScheduleHandler) Update(c echo.Context) error {
	day := atoiOr(c.Param("day"), -1)
	if day < 0 || day > 6 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"day": "hari harus 0-6"},
		})
	}

	var p schedulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	sched, err := h.svc.UpdateSchedule(day, p.DefaultJPCount, p.IsSchoolDay)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, sched)
}
