package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type AttendanceHandler struct {
	svc *services.AttendanceService
}

func NewAttendanceHandler(svc *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// GET /attendance?classroom_id=&date=
func (h *AttendanceHandler) ListByClassroom(c echo.Context) error {
	classroomID := uint(atoiOr(c.QueryParam("classroom_id"), 0))
	if classroomID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"classroom_id": "classroom_id wajib diisi"},
		})
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"date": "tanggal harus YYYY-MM-DD"},
		})
	}

	items, err := h.svc.ForClassroom(classroomID, date)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /attendance/student/:id?date=
func (h *AttendanceHandler) GetStudent(c echo.Context) error {
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"date": "tanggal harus YYYY-MM-DD"},
		})
	}
	rec, err := h.svc.Get(mustID(c, "id"), date)
	if err != nil {
		return serviceError(c, err)
	}
	if rec == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, rec)
}

type savePayload struct {
	StudentID  uint              `json:"student_id"`
	Date       string            `json:"date"`
	JPStatuses map[string]string `json:"jp_statuses"`
	Notes      string            `json:"notes"`
}

// POST /attendance
func (h *AttendanceHandler) Save(c echo.Context) error {
	var p savePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	date, err := parseDate(p.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"date": "tanggal harus YYYY-MM-DD"},
		})
	}

	rec, err := h.svc.Save(p.StudentID, date, p.JPStatuses, actorID(c), p.Notes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

type saveBulkPayload struct {
	ClassroomID uint                 `json:"classroom_id"`
	Date        string               `json:"date"`
	Entries     []services.BulkEntry `json:"entries"`
}

// POST /attendance/bulk
func (h *AttendanceHandler) SaveBulk(c echo.Context) error {
	var p saveBulkPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	date, err := parseDate(p.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"date": "tanggal harus YYYY-MM-DD"},
		})
	}
	if len(p.Entries) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"entries": "minimal satu entri"},
		})
	}

	saved, err := h.svc.SaveBulk(p.ClassroomID, date, p.Entries, actorID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"saved": saved})
}

// GET /attendance/missing?classroom_id=&start_date=&end_date=
func (h *AttendanceHandler) Missing(c echo.Context) error {
	classroomID := uint(atoiOr(c.QueryParam("classroom_id"), 0))
	if classroomID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"classroom_id": "classroom_id wajib diisi"},
		})
	}
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}

	missing, err := h.svc.MissingDates(classroomID, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	dates := make([]string, 0, len(missing))
	for _, d := range missing {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"classroom_id":  classroomID,
		"missing_dates": dates,
		"count":         len(dates),
	})
}
