package handlers

import (
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/services"
)

type PDFExportHandler struct {
	reports *services.ReportService
}

func NewPDFExportHandler(reports *services.ReportService) *PDFExportHandler {
	return &PDFExportHandler{reports: reports}
}

// compactDaySummary: ringkasan sel tabel kelas, mis. "H5S1"; angka nol selain
// H disembunyikan supaya sel tetap sempit
func compactDaySummary(cell services.DailyCell) string {
	if !cell.HasRecord {
		return "-"
	}
	s := fmt.Sprintf("H%d", cell.Hadir)
	if cell.Sakit > 0 {
		s += fmt.Sprintf("S%d", cell.Sakit)
	}
	if cell.Izin > 0 {
		s += fmt.Sprintf("I%d", cell.Izin)
	}
	if cell.Alpa > 0 {
		s += fmt.Sprintf("A%d", cell.Alpa)
	}
	return s
}

func truncateName(name string, max int) string {
	// potong per rune, bukan per byte, supaya nama ber-karakter multi-byte
	// tidak terpenggal di tengah sequence
	r := []rune(name)
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return name
}

func pdfTableHeader(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, label := range labels {
		pdf.CellFormat(widths[i], 7, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
}

// GET /exports/class/:id/pdf?start_date=&end_date=
func (h *PDFExportHandler) ClassPDF(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.reports.ClassReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}

	// landscape supaya kolom tanggal muat
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Laporan Absensi Kelas")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, fmt.Sprintf("Kelas: %s", report.Classroom.Name))
	pdf.Ln(6)
	pdf.Cell(40, 7, fmt.Sprintf("Periode: %s s.d. %s", report.Period.Start, report.Period.End))
	pdf.Ln(6)
	pdf.Cell(40, 7, fmt.Sprintf("Jumlah hari sekolah: %d", report.TotalSchoolDays))
	pdf.Ln(10)

	// lebar kolom: No/NIS/Nama dan blok ringkasan tetap, sisa halaman dibagi
	// rata ke kolom tanggal
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	avail := pageW - left - right

	fixed := []float64{8, 15, 40}
	sumW := []float64{8, 8, 8, 8, 12}
	used := 0.0
	for _, w := range fixed {
		used += w
	}
	for _, w := range sumW {
		used += w
	}
	dateW := 10.0
	if n := len(report.SchoolDates); n > 0 {
		dateW = (avail - used) / float64(n)
	}

	widths := append([]float64{}, fixed...)
	labels := []string{"No", "NIS", "Nama Siswa"}
	for _, d := range report.SchoolDates {
		widths = append(widths, dateW)
		labels = append(labels, shortDate(d))
	}
	widths = append(widths, sumW...)
	labels = append(labels, "H", "S", "I", "A", "%")

	pdfTableHeader(pdf, widths, labels)

	for i, sr := range report.Students {
		vals := []string{
			fmt.Sprintf("%d", i+1),
			sr.Student.StudentID,
			truncateName(sr.Student.Name, 20),
		}
		for _, cell := range sr.Daily {
			vals = append(vals, compactDaySummary(cell))
		}
		vals = append(vals,
			fmt.Sprintf("%d", sr.TotalHadir),
			fmt.Sprintf("%d", sr.TotalSakit),
			fmt.Sprintf("%d", sr.TotalIzin),
			fmt.Sprintf("%d", sr.TotalAlpa),
			fmt.Sprintf("%.1f%%", sr.AttendancePercentage),
		)
		for j, v := range vals {
			align := "C"
			if j == 2 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Ringkasan kelas
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Ringkasan Kelas")
	pdf.Ln(9)

	pdf.SetFont("Arial", "", 10)
	sum := report.Summary
	for _, m := range []struct {
		label string
		value string
	}{
		{"Total Siswa", fmt.Sprintf("%d", sum.TotalStudents)},
		{"Total JP Tercatat", fmt.Sprintf("%d", sum.TotalJP)},
		{"Total Hadir (H)", fmt.Sprintf("%d", sum.TotalHadir)},
		{"Total Sakit (S)", fmt.Sprintf("%d", sum.TotalSakit)},
		{"Total Izin (I)", fmt.Sprintf("%d", sum.TotalIzin)},
		{"Total Alpa (A)", fmt.Sprintf("%d", sum.TotalAlpa)},
		{"Persentase Kehadiran", fmt.Sprintf("%.2f%%", sum.AttendancePercentage)},
	} {
		pdf.CellFormat(60, 7, m.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, m.value, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(40, 6, "Keterangan Status: H = Hadir, S = Sakit, I = Izin, A = Alpa")

	filename := fmt.Sprintf("Laporan_Absensi_%s_%s_%s.pdf",
		report.Classroom.Name, report.Period.Start, report.Period.End)
	return writePDF(c, pdf, filename)
}

// GET /exports/student/:id/pdf?start_date=&end_date=
func (h *PDFExportHandler) StudentPDF(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.reports.StudentReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Laporan Absensi Siswa")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, fmt.Sprintf("Nama: %s", report.Student.Name))
	pdf.Ln(6)
	pdf.Cell(40, 7, fmt.Sprintf("NIS: %s", report.Student.StudentID))
	pdf.Ln(6)
	pdf.Cell(40, 7, fmt.Sprintf("Kelas: %s", report.Classroom.Name))
	pdf.Ln(6)
	pdf.Cell(40, 7, fmt.Sprintf("Periode: %s s.d. %s", report.Period.Start, report.Period.End))
	pdf.Ln(10)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	avail := pageW - left - right

	fixed := []float64{8, 22, 12}
	sumW := []float64{8, 8, 8, 8}
	used := 0.0
	for _, w := range fixed {
		used += w
	}
	for _, w := range sumW {
		used += w
	}
	jpW := 10.0
	if report.MaxJPCount > 0 {
		jpW = (avail - used) / float64(report.MaxJPCount)
	}

	widths := append([]float64{}, fixed...)
	labels := []string{"No", "Tanggal", "Hari"}
	for jp := 1; jp <= report.MaxJPCount; jp++ {
		widths = append(widths, jpW)
		labels = append(labels, fmt.Sprintf("JP%d", jp))
	}
	widths = append(widths, sumW...)
	labels = append(labels, "H", "S", "I", "A")

	pdfTableHeader(pdf, widths, labels)

	for i, day := range report.DailyRecords {
		dayName := day.DayName
		if len(dayName) > 3 {
			dayName = dayName[:3]
		}
		vals := []string{
			fmt.Sprintf("%d", i+1),
			shortDateYear(day.Date),
			dayName,
		}
		for jp := 1; jp <= report.MaxJPCount; jp++ {
			status := "-"
			if jp <= len(day.Periods) && day.Periods[jp-1].Status != "" {
				status = day.Periods[jp-1].Status
			}
			vals = append(vals, status)
		}
		vals = append(vals,
			fmt.Sprintf("%d", day.Hadir),
			fmt.Sprintf("%d", day.Sakit),
			fmt.Sprintf("%d", day.Izin),
			fmt.Sprintf("%d", day.Alpa),
		)
		for j, v := range vals {
			pdf.CellFormat(widths[j], 6, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Ringkasan")
	pdf.Ln(9)

	pdf.SetFont("Arial", "", 10)
	sum := report.Summary
	for _, m := range []struct {
		label string
		value string
	}{
		{"Total Hari Sekolah", fmt.Sprintf("%d", report.TotalSchoolDays)},
		{"Total JP Tercatat", fmt.Sprintf("%d", sum.TotalJP)},
		{"Hadir (H)", fmt.Sprintf("%d (%.2f%%)", sum.TotalHadir, sum.HadirPct)},
		{"Sakit (S)", fmt.Sprintf("%d (%.2f%%)", sum.TotalSakit, sum.SakitPct)},
		{"Izin (I)", fmt.Sprintf("%d (%.2f%%)", sum.TotalIzin, sum.IzinPct)},
		{"Alpa (A)", fmt.Sprintf("%d (%.2f%%)", sum.TotalAlpa, sum.AlpaPct)},
	} {
		pdf.CellFormat(60, 7, m.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, m.value, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(40, 6, "Keterangan Status: H = Hadir, S = Sakit, I = Izin, A = Alpa")

	filename := fmt.Sprintf("Laporan_Absensi_%s_%s_%s.pdf",
		report.Student.StudentID, report.Period.Start, report.Period.End)
	return writePDF(c, pdf, filename)
}

func writePDF(c echo.Context, pdf *gofpdf.Fpdf, filename string) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(filename)))
	c.Response().WriteHeader(http.StatusOK)
	if err := pdf.Output(c.Response()); err != nil {
		return err
	}
	return nil
}
