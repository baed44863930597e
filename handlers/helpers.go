package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

// konversi string -> int; kalau gagal kembalikan default
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// mustID membaca path param sebagai uint; 0 berarti tidak valid
func mustID(c echo.Context, name string) uint {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// parseDate membaca query param tanggal YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// parseDateRange membaca start_date/end_date dari query; keduanya wajib
func parseDateRange(c echo.Context) (time.Time, time.Time, map[string]string) {
	fields := map[string]string{}
	start, err := parseDate(c.QueryParam("start_date"))
	if err != nil {
		fields["start_date"] = "tanggal harus YYYY-MM-DD"
	}
	end, err := parseDate(c.QueryParam("end_date"))
	if err != nil {
		fields["end_date"] = "tanggal harus YYYY-MM-DD"
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, fields
	}
	return start, end, nil
}

// actorID mengambil id user dari claims JWT yang ditempel middleware
func actorID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}

// serviceError memetakan error service ke respons JSON standar:
// ValidationError -> 400 VALIDATION_ERROR + fields, ErrNotFound -> 404, sisanya 500.
func serviceError(c echo.Context, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{ve.Field: ve.Message},
		})
	}
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
}
