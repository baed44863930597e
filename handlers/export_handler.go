package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type ExportHandler struct {
	reports *services.ReportService
}

func NewExportHandler(reports *services.ReportService) *ExportHandler {
	return &ExportHandler{reports: reports}
}

// sanitizeFilename membuang karakter yang bermasalah di header Content-Disposition
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}

func shortDate(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("02/01")
	}
	return date
}

// buildClassCSVRows menyusun baris CSV rekap kelas. Angka di sini diambil
// apa adanya dari laporan, tidak dihitung ulang, supaya CSV dan JSON tidak
// pernah beda isi.
func buildClassCSVRows(report *services.ClassReport) [][]string {
	header := []string{"No", "NIS", "Nama Siswa"}
	for _, d := range report.SchoolDates {
		header = append(header, shortDate(d))
	}
	header = append(header, "Total H", "Total S", "Total I", "Total A", "Total JP", "Persentase")

	rows := [][]string{header}
	for i, row := range report.Students {
		r := []string{
			strconv.Itoa(i + 1),
			row.Student.StudentID,
			row.Student.Name,
		}
		for _, cell := range row.Daily {
			r = append(r, cell.Summary)
		}
		r = append(r,
			strconv.Itoa(row.TotalHadir),
			strconv.Itoa(row.TotalSakit),
			strconv.Itoa(row.TotalIzin),
			strconv.Itoa(row.TotalAlpa),
			strconv.Itoa(row.TotalJP),
			fmt.Sprintf("%.2f%%", row.AttendancePercentage),
		)
		rows = append(rows, r)
	}

	sum := report.Summary
	total := []string{"", "", "TOTAL"}
	for range report.SchoolDates {
		total = append(total, "")
	}
	total = append(total,
		strconv.Itoa(sum.TotalHadir),
		strconv.Itoa(sum.TotalSakit),
		strconv.Itoa(sum.TotalIzin),
		strconv.Itoa(sum.TotalAlpa),
		strconv.Itoa(sum.TotalJP),
		fmt.Sprintf("%.2f%%", sum.AttendancePercentage),
	)
	rows = append(rows, total)
	return rows
}

// buildStudentCSVRows menyusun baris CSV rekap per-JP satu siswa.
func buildStudentCSVRows(report *services.StudentReport) [][]string {
	header := []string{"No", "Tanggal", "Hari"}
	for jp := 1; jp <= report.MaxJPCount; jp++ {
		header = append(header, fmt.Sprintf("JP%d", jp))
	}
	header = append(header, "H", "S", "I", "A")

	rows := [][]string{header}
	for i, day := range report.DailyRecords {
		r := []string{
			strconv.Itoa(i + 1),
			shortDateYear(day.Date),
			day.DayName,
		}
		for jp := 1; jp <= report.MaxJPCount; jp++ {
			if jp <= day.JPCount {
				status := "-"
				if jp <= len(day.Periods) && day.Periods[jp-1].Status != "" {
					status = day.Periods[jp-1].Status
				}
				r = append(r, status)
			} else {
				// di luar jadwal hari itu
				r = append(r, "")
			}
		}
		r = append(r,
			strconv.Itoa(day.Hadir),
			strconv.Itoa(day.Sakit),
			strconv.Itoa(day.Izin),
			strconv.Itoa(day.Alpa),
		)
		rows = append(rows, r)
	}

	sum := report.Summary
	total := []string{"", "", "TOTAL"}
	for jp := 1; jp <= report.MaxJPCount; jp++ {
		total = append(total, "")
	}
	total = append(total,
		strconv.Itoa(sum.TotalHadir),
		strconv.Itoa(sum.TotalSakit),
		strconv.Itoa(sum.TotalIzin),
		strconv.Itoa(sum.TotalAlpa),
	)
	rows = append(rows, total)
	return rows
}

func shortDateYear(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("02/01/2006")
	}
	return date
}

func writeCSV(c echo.Context, filename string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "CSV_WRITE_FAILED"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(filename)))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GET /exports/class/:id/csv?start_date=&end_date=
func (h *ExportHandler) ClassCSV(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.reports.ClassReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}

	filename := fmt.Sprintf("laporan_absensi_jp_%s_%s_%s.csv",
		report.Classroom.Name, report.Period.Start, report.Period.End)
	return writeCSV(c, filename, buildClassCSVRows(report))
}

// GET /exports/student/:id/csv?start_date=&end_date=
func (h *ExportHandler) StudentCSV(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.reports.StudentReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}

	filename := fmt.Sprintf("laporan_absensi_siswa_%s_%s_%s.csv",
		report.Student.StudentID, report.Period.Start, report.Period.End)
	return writeCSV(c, filename, buildStudentCSVRows(report))
}
