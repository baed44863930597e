package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/hisbanh/rekapabsensi/services"
)

type ExcelExportHandler struct {
	reports *services.ReportService
}

func NewExcelExportHandler(reports *services.ReportService) *ExcelExportHandler {
	return &ExcelExportHandler{reports: reports}
}

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// colName: 1 -> A, 27 -> AA
func colName(n int) string {
	s, _ := excelize.ColumnNumberToName(n)
	return s
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

// GET /exports/class/:id/excel?start_date=&end_date=
func (h *ExcelExportHandler) ClassExcel(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.reports.ClassReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rekap Kelas"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	lastCol := 3 + len(report.SchoolDates) + 6

	// Judul
	f.SetCellValue(sheetName, "A1", "LAPORAN ABSENSI KELAS")
	f.MergeCell(sheetName, "A1", cellRef(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", cellRef(lastCol, 1), headerStyle)
	f.SetRowHeight(sheetName, 1, 25)

	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Kelas: %s", report.Classroom.Name))
	f.SetCellValue(sheetName, "A3",
		fmt.Sprintf("Periode: %s s.d. %s", report.Period.Start, report.Period.End))

	// Header tabel
	headerRow := 5
	headers := []string{"No", "NIS", "Nama Siswa"}
	for _, d := range report.SchoolDates {
		headers = append(headers, shortDate(d))
	}
	headers = append(headers, "Total H", "Total S", "Total I", "Total A", "Total JP", "Persentase")
	for i, hd := range headers {
		cell := cellRef(i+1, headerRow)
		f.SetCellValue(sheetName, cell, hd)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// Baris siswa
	row := headerRow + 1
	firstDataRow := row
	for i, sr := range report.Students {
		f.SetCellValue(sheetName, cellRef(1, row), i+1)
		f.SetCellValue(sheetName, cellRef(2, row), sr.Student.StudentID)
		f.SetCellValue(sheetName, cellRef(3, row), sr.Student.Name)
		col := 4
		for _, cell := range sr.Daily {
			f.SetCellValue(sheetName, cellRef(col, row), cell.Summary)
			col++
		}
		f.SetCellValue(sheetName, cellRef(col, row), sr.TotalHadir)
		f.SetCellValue(sheetName, cellRef(col+1, row), sr.TotalSakit)
		f.SetCellValue(sheetName, cellRef(col+2, row), sr.TotalIzin)
		f.SetCellValue(sheetName, cellRef(col+3, row), sr.TotalAlpa)
		f.SetCellValue(sheetName, cellRef(col+4, row), sr.TotalJP)
		f.SetCellValue(sheetName, cellRef(col+5, row), sr.AttendancePercentage/100)
		row++
	}

	// Baris TOTAL: pakai formula SUM supaya angka di sheet selalu konsisten
	// dengan baris di atasnya walau ada yang mengedit manual
	totalCol := 4 + len(report.SchoolDates)
	f.SetCellValue(sheetName, cellRef(3, row), "TOTAL")
	if len(report.Students) > 0 {
		for i := 0; i < 5; i++ {
			col := totalCol + i
			f.SetCellFormula(sheetName, cellRef(col, row),
				fmt.Sprintf("SUM(%s:%s)", cellRef(col, firstDataRow), cellRef(col, row-1)))
		}
	}
	f.SetCellValue(sheetName, cellRef(totalCol+5, row), report.Summary.AttendancePercentage/100)

	// Format persen pada kolom persentase
	pctStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	f.SetCellStyle(sheetName,
		cellRef(totalCol+5, firstDataRow), cellRef(totalCol+5, row), pctStyle)

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, colName(4), colName(3+len(report.SchoolDates)), 14)

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("Laporan_Absensi_%s_%s_%s.xlsx",
		report.Classroom.Name, report.Period.Start, report.Period.End)
	return writeExcel(c, f, filename)
}

// GET /exports/student/:id/excel?start_date=&end_date=
func (h *ExcelExportHandler) StudentExcel(c echo.Context) error {
	start, end, fields := parseDateRange(c)
	if fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	report, err := h.reports.StudentReport(mustID(c, "id"), start, end)
	if err != nil {
		return serviceError(c, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rekap Siswa"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	lastCol := 3 + report.MaxJPCount + 4

	f.SetCellValue(sheetName, "A1", "LAPORAN ABSENSI SISWA")
	f.MergeCell(sheetName, "A1", cellRef(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", cellRef(lastCol, 1), headerStyle)
	f.SetRowHeight(sheetName, 1, 25)

	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Nama: %s", report.Student.Name))
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("NIS: %s", report.Student.StudentID))
	f.SetCellValue(sheetName, "A4", fmt.Sprintf("Kelas: %s", report.Classroom.Name))
	f.SetCellValue(sheetName, "A5",
		fmt.Sprintf("Periode: %s s.d. %s", report.Period.Start, report.Period.End))

	headerRow := 7
	headers := []string{"No", "Tanggal", "Hari"}
	for jp := 1; jp <= report.MaxJPCount; jp++ {
		headers = append(headers, fmt.Sprintf("JP%d", jp))
	}
	headers = append(headers, "H", "S", "I", "A")
	for i, hd := range headers {
		cell := cellRef(i+1, headerRow)
		f.SetCellValue(sheetName, cell, hd)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := headerRow + 1
	firstDataRow := row
	jpFirstCol := 4
	jpLastCol := 3 + report.MaxJPCount
	for i, day := range report.DailyRecords {
		f.SetCellValue(sheetName, cellRef(1, row), i+1)
		f.SetCellValue(sheetName, cellRef(2, row), shortDateYear(day.Date))
		f.SetCellValue(sheetName, cellRef(3, row), day.DayName)
		for jp := 1; jp <= report.MaxJPCount; jp++ {
			cell := cellRef(jpFirstCol+jp-1, row)
			if jp > day.JPCount {
				continue
			}
			status := "-"
			if jp <= len(day.Periods) && day.Periods[jp-1].Status != "" {
				status = day.Periods[jp-1].Status
			}
			f.SetCellValue(sheetName, cell, status)
		}
		// hitung per baris langsung dari sel status, jadi total pasti
		// cocok dengan isi baris
		rng := fmt.Sprintf("%s:%s", cellRef(jpFirstCol, row), cellRef(jpLastCol, row))
		f.SetCellFormula(sheetName, cellRef(jpLastCol+1, row), fmt.Sprintf(`COUNTIF(%s,"H")`, rng))
		f.SetCellFormula(sheetName, cellRef(jpLastCol+2, row), fmt.Sprintf(`COUNTIF(%s,"S")`, rng))
		f.SetCellFormula(sheetName, cellRef(jpLastCol+3, row), fmt.Sprintf(`COUNTIF(%s,"I")`, rng))
		f.SetCellFormula(sheetName, cellRef(jpLastCol+4, row), fmt.Sprintf(`COUNTIF(%s,"A")`, rng))
		row++
	}

	f.SetCellValue(sheetName, cellRef(3, row), "TOTAL")
	if len(report.DailyRecords) > 0 {
		for i := 1; i <= 4; i++ {
			col := jpLastCol + i
			f.SetCellFormula(sheetName, cellRef(col, row),
				fmt.Sprintf("SUM(%s:%s)", cellRef(col, firstDataRow), cellRef(col, row-1)))
		}

		// warnai sel status: hijau H, kuning S, biru I, merah A
		area := fmt.Sprintf("%s:%s", cellRef(jpFirstCol, firstDataRow), cellRef(jpLastCol, row-1))
		for _, cf := range []struct {
			letter string
			color  string
		}{
			{"H", "#C6EFCE"},
			{"S", "#FFEB9C"},
			{"I", "#BDD7EE"},
			{"A", "#FFC7CE"},
		} {
			style, _ := f.NewConditionalStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{cf.color}, Pattern: 1},
			})
			f.SetConditionalFormat(sheetName, area, []excelize.ConditionalFormatOptions{
				{Type: "cell", Criteria: "==", Value: fmt.Sprintf("%q", cf.letter), Format: style},
			})
		}
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, colName(jpFirstCol), colName(jpLastCol), 6)

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("Laporan_Absensi_%s_%s_%s.xlsx",
		report.Student.StudentID, report.Period.Start, report.Period.End)
	return writeExcel(c, f, filename)
}

func writeExcel(c echo.Context, f *excelize.File, filename string) error {
	c.Response().Header().Set(echo.HeaderContentType, excelContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(filename)))
	c.Response().WriteHeader(http.StatusOK)
	if err := f.Write(c.Response()); err != nil {
		return err
	}
	return nil
}
