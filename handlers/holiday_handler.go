package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type HolidayHandler struct {
	svc *services.HolidayService
}

func NewHolidayHandler(svc *services.HolidayService) *HolidayHandler {
	return &HolidayHandler{svc: svc}
}

// GET /holidays?start_date=&end_date=&classroom_id=
func (h *HolidayHandler) List(c echo.Context) error {
	if c.QueryParam("start_date") == "" && c.QueryParam("end_date") == "" {
		items, err := h.svc.All()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}

	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	classroomID := uint(atoiOr(c.QueryParam("classroom_id"), 0))

	items, err := h.svc.HolidaysInRange(start, end, classroomID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /holidays/:id
func (h *HolidayHandler) Get(c echo.Context) error {
	item, err := h.svc.ByID(mustID(c, "id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// POST /holidays
func (h *HolidayHandler) Create(c echo.Context) error {
	var in services.HolidayInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	item, err := h.svc.Create(&in, actorID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /holidays/:id
func (h *HolidayHandler) Update(c echo.Context) error {
	var in services.HolidayInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	item, err := h.svc.Update(mustID(c, "id"), &in, actorID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DELETE /holidays/:id
func (h *HolidayHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(mustID(c, "id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
