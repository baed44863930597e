package handlers

import (
	"testing"

	"github.com/hisbanh/rekapabsensi/models"
	"github.com/hisbanh/rekapabsensi/services"
)

func sampleClassReport() *services.ClassReport {
	return &services.ClassReport{
		Classroom: models.Classroom{ID: 1, Name: "X-A"},
		Period:    services.Period{Start: "2025-01-06", End: "2025-01-07"},
		Students: []services.StudentRow{
			{
				Student:    models.Student{ID: 10, StudentID: "1001", Name: "Ahmad"},
				TotalHadir: 11, TotalSakit: 1, TotalJP: 12,
				AttendancePercentage: 91.67,
				Daily: []services.DailyCell{
					{Date: "2025-01-06", JPCount: 6, Hadir: 6, HasRecord: true, Summary: "H:6 S:0 I:0 A:0"},
					{Date: "2025-01-07", JPCount: 6, Hadir: 5, Sakit: 1, HasRecord: true, Summary: "H:5 S:1 I:0 A:0"},
				},
			},
			{
				Student: models.Student{ID: 11, StudentID: "1002", Name: "Budi"},
				Daily: []services.DailyCell{
					{Date: "2025-01-06", JPCount: 6, Summary: "-"},
					{Date: "2025-01-07", JPCount: 6, Summary: "-"},
				},
			},
		},
		Summary: services.ClassSummary{
			TotalStudents: 2, TotalHadir: 11, TotalSakit: 1, TotalJP: 12,
			AttendancePercentage: 91.67,
		},
		SchoolDates:     []string{"2025-01-06", "2025-01-07"},
		TotalSchoolDays: 2,
	}
}

func TestBuildClassCSVRows(t *testing.T) {
	rows := buildClassCSVRows(sampleClassReport())

	// header + 2 siswa + baris TOTAL
	if len(rows) != 4 {
		t.Fatalf("jumlah baris = %d, want 4", len(rows))
	}

	header := rows[0]
	wantHeader := []string{"No", "NIS", "Nama Siswa", "06/01", "07/01",
		"Total H", "Total S", "Total I", "Total A", "Total JP", "Persentase"}
	if len(header) != len(wantHeader) {
		t.Fatalf("lebar header = %d, want %d", len(header), len(wantHeader))
	}
	for i, h := range wantHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	ahmad := rows[1]
	if ahmad[1] != "1001" || ahmad[2] != "Ahmad" {
		t.Fatalf("baris Ahmad: %v", ahmad)
	}
	if ahmad[3] != "H:6 S:0 I:0 A:0" || ahmad[4] != "H:5 S:1 I:0 A:0" {
		t.Fatalf("sel harian Ahmad: %q / %q", ahmad[3], ahmad[4])
	}
	if ahmad[10] != "91.67%" {
		t.Fatalf("persentase Ahmad = %q, want 91.67%%", ahmad[10])
	}

	budi := rows[2]
	if budi[3] != "-" || budi[4] != "-" {
		t.Fatalf("siswa tanpa record harus '-': %v", budi)
	}
	if budi[10] != "0.00%" {
		t.Fatalf("persentase Budi = %q, want 0.00%%", budi[10])
	}

	total := rows[3]
	if total[2] != "TOTAL" {
		t.Fatalf("baris total: %v", total)
	}
	if total[9] != "12" || total[10] != "91.67%" {
		t.Fatalf("total JP/persentase = %q/%q", total[9], total[10])
	}
	// setiap baris sama lebar — syarat CSV yang rapi
	for i, r := range rows {
		if len(r) != len(header) {
			t.Fatalf("baris %d lebarnya %d, want %d", i, len(r), len(header))
		}
	}
}

func TestBuildStudentCSVRows(t *testing.T) {
	report := &services.StudentReport{
		Student:   models.Student{ID: 10, StudentID: "1001", Name: "Ahmad"},
		Classroom: models.Classroom{ID: 1, Name: "X-A"},
		Period:    services.Period{Start: "2025-01-09", End: "2025-01-10"},
		DailyRecords: []services.DayRecord{
			{
				Date: "2025-01-09", DayName: "Kamis", JPCount: 6, HasRecord: true,
				Hadir: 6,
				Periods: []services.JPDetail{
					{JPNumber: 1, Status: "H", Label: "Hadir"},
					{JPNumber: 2, Status: "H", Label: "Hadir"},
					{JPNumber: 3, Status: "H", Label: "Hadir"},
					{JPNumber: 4, Status: "H", Label: "Hadir"},
					{JPNumber: 5, Status: "H", Label: "Hadir"},
					{JPNumber: 6, Status: "H", Label: "Hadir"},
				},
			},
			{
				// Jumat hanya 4 JP: kolom JP5-JP6 harus kosong, bukan "-"
				Date: "2025-01-10", DayName: "Jumat", JPCount: 4, HasRecord: true,
				Hadir: 3, Alpa: 1,
				Periods: []services.JPDetail{
					{JPNumber: 1, Status: "H", Label: "Hadir"},
					{JPNumber: 2, Status: "H", Label: "Hadir"},
					{JPNumber: 3, Status: "A", Label: "Alpa"},
					{JPNumber: 4, Status: "H", Label: "Hadir"},
				},
			},
		},
		Summary: services.StudentSummary{
			TotalHadir: 9, TotalAlpa: 1, TotalJP: 10,
			HadirPct: 90.0, AlpaPct: 10.0,
		},
		TotalSchoolDays: 2,
		MaxJPCount:      6,
	}

	rows := buildStudentCSVRows(report)
	if len(rows) != 4 {
		t.Fatalf("jumlah baris = %d, want 4", len(rows))
	}

	header := rows[0]
	wantHeader := []string{"No", "Tanggal", "Hari", "JP1", "JP2", "JP3", "JP4", "JP5", "JP6", "H", "S", "I", "A"}
	for i, h := range wantHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	kamis := rows[1]
	if kamis[1] != "09/01/2025" || kamis[2] != "Kamis" {
		t.Fatalf("baris Kamis: %v", kamis)
	}
	for i := 3; i <= 8; i++ {
		if kamis[i] != "H" {
			t.Fatalf("Kamis JP%d = %q, want H", i-2, kamis[i])
		}
	}

	jumat := rows[2]
	if jumat[5] != "A" {
		t.Fatalf("Jumat JP3 = %q, want A", jumat[5])
	}
	if jumat[7] != "" || jumat[8] != "" {
		t.Fatalf("JP di luar jadwal Jumat harus kosong: %q %q", jumat[7], jumat[8])
	}
	if jumat[9] != "3" || jumat[12] != "1" {
		t.Fatalf("ringkasan Jumat H=%q A=%q, want 3/1", jumat[9], jumat[12])
	}

	total := rows[3]
	if total[2] != "TOTAL" || total[9] != "9" || total[12] != "1" {
		t.Fatalf("baris total: %v", total)
	}
}
