package services

import (
	"strconv"
	"testing"

	"github.com/hisbanh/rekapabsensi/models"
)

type fixture struct {
	attendance *AttendanceService
	reports    *ReportService
	store      *fakeAttendanceStore
	holidays   *HolidayService
	classrooms *fakeClassroomStore
	schedule   *ScheduleService
}

// newFixture: satu kelas (id 1) dengan dua siswa aktif, jadwal default
func newFixture() *fixture {
	classrooms := newFakeClassroomStore()
	classrooms.classrooms[1] = &models.Classroom{ID: 1, Name: "X-A", IsActive: true}
	classrooms.classrooms[2] = &models.Classroom{ID: 2, Name: "X-B", IsActive: true}
	classrooms.students[10] = &models.Student{ID: 10, StudentID: "1001", Name: "Ahmad", ClassroomID: 1, IsActive: true}
	classrooms.students[11] = &models.Student{ID: 11, StudentID: "1002", Name: "Budi", ClassroomID: 1, IsActive: true}
	classrooms.students[20] = &models.Student{ID: 20, StudentID: "2001", Name: "Citra", ClassroomID: 2, IsActive: true}

	students := &fakeStudentStore{classrooms: classrooms}
	store := newFakeAttendanceStore(classrooms)
	schedule := NewScheduleService(defaultSchedules())
	holidays := NewHolidayService(newFakeHolidayStore(), classrooms, schedule)

	return &fixture{
		attendance: NewAttendanceService(store, students, classrooms, schedule, holidays),
		reports:    NewReportService(store, students, classrooms, schedule, holidays, 366),
		store:      store,
		holidays:   holidays,
		classrooms: classrooms,
		schedule:   schedule,
	}
}

func fullDay(status string, jpCount int) map[string]string {
	m := map[string]string{}
	for jp := 1; jp <= jpCount; jp++ {
		m[strconv.Itoa(jp)] = status
	}
	return m
}

func TestSaveUpsertIsIdempotent(t *testing.T) {
	fx := newFixture()
	d := date("2025-01-06") // Senin, 6 JP

	if _, err := fx.attendance.Save(10, d, fullDay("H", 6), 1, ""); err != nil {
		t.Fatalf("Save pertama: %v", err)
	}
	statuses := fullDay("H", 6)
	statuses["3"] = "S"
	if _, err := fx.attendance.Save(10, d, statuses, 1, "sakit jp 3"); err != nil {
		t.Fatalf("Save kedua: %v", err)
	}

	if n := fx.store.countFor(10); n != 1 {
		t.Fatalf("jumlah record = %d, want 1 (upsert, bukan duplikat)", n)
	}
	rec, _ := fx.store.Get(10, "2025-01-06")
	if rec.StatusMap()["3"] != "S" {
		t.Fatalf("JP 3 = %q, want S (nilai terakhir yang menang)", rec.StatusMap()["3"])
	}
	if rec.Notes != "sakit jp 3" {
		t.Fatalf("Notes = %q", rec.Notes)
	}
}

func TestSaveRejectsBadStatuses(t *testing.T) {
	fx := newFixture()
	d := date("2025-01-06")

	// kode tidak dikenal
	bad := fullDay("H", 6)
	bad["2"] = "X"
	if _, err := fx.attendance.Save(10, d, bad, 1, ""); err == nil {
		t.Fatalf("kode status X seharusnya ditolak")
	}

	// jumlah JP kurang dari jadwal
	if _, err := fx.attendance.Save(10, d, fullDay("H", 5), 1, ""); err == nil {
		t.Fatalf("5 JP di hari 6 JP seharusnya ditolak")
	}

	// nomor JP di luar rentang
	out := fullDay("H", 6)
	delete(out, "1")
	out["7"] = "H"
	if _, err := fx.attendance.Save(10, d, out, 1, ""); err == nil {
		t.Fatalf("JP 7 di hari 6 JP seharusnya ditolak")
	}

	// Jumat hanya 4 JP
	if _, err := fx.attendance.Save(10, date("2025-01-10"), fullDay("H", 6), 1, ""); err == nil {
		t.Fatalf("6 JP di hari Jumat (4 JP) seharusnya ditolak")
	}
	if _, err := fx.attendance.Save(10, date("2025-01-10"), fullDay("H", 4), 1, ""); err != nil {
		t.Fatalf("4 JP di hari Jumat: %v", err)
	}

	if _, err := fx.attendance.Save(99, d, fullDay("H", 6), 1, ""); err == nil {
		t.Fatalf("siswa tidak dikenal seharusnya NOT_FOUND")
	}
}

func TestSaveBulkIsAllOrNothing(t *testing.T) {
	fx := newFixture()
	d := date("2025-01-06")

	entries := []BulkEntry{
		{StudentID: 10, JPStatuses: fullDay("H", 6)},
		{StudentID: 11, JPStatuses: map[string]string{"1": "H"}}, // kurang JP
	}
	if _, err := fx.attendance.SaveBulk(1, d, entries, 1); err == nil {
		t.Fatalf("bulk dengan entri rusak seharusnya gagal")
	}
	if n := fx.store.totalCount(); n != 0 {
		t.Fatalf("record tersimpan = %d, want 0 (gagal satu = batal semua)", n)
	}

	// siswa kelas lain juga menggagalkan seluruh batch
	entries = []BulkEntry{
		{StudentID: 10, JPStatuses: fullDay("H", 6)},
		{StudentID: 20, JPStatuses: fullDay("H", 6)},
	}
	if _, err := fx.attendance.SaveBulk(1, d, entries, 1); err == nil {
		t.Fatalf("siswa di luar kelas seharusnya menggagalkan batch")
	}
	if n := fx.store.totalCount(); n != 0 {
		t.Fatalf("record tersimpan = %d, want 0", n)
	}

	// batch sehat tersimpan semua
	entries = []BulkEntry{
		{StudentID: 10, JPStatuses: fullDay("H", 6)},
		{StudentID: 11, JPStatuses: fullDay("A", 6)},
	}
	saved, err := fx.attendance.SaveBulk(1, d, entries, 1)
	if err != nil {
		t.Fatalf("SaveBulk: %v", err)
	}
	if saved != 2 || fx.store.totalCount() != 2 {
		t.Fatalf("saved = %d, total = %d, want 2/2", saved, fx.store.totalCount())
	}
}

func TestMissingDates(t *testing.T) {
	fx := newFixture()

	// isi Senin saja; Selasa-Sabtu bolong, Minggu bukan hari sekolah
	if _, err := fx.attendance.Save(10, date("2025-01-06"), fullDay("H", 6), 1, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	missing, err := fx.attendance.MissingDates(1, date("2025-01-06"), date("2025-01-12"))
	if err != nil {
		t.Fatalf("MissingDates: %v", err)
	}
	if len(missing) != 5 {
		t.Fatalf("jumlah tanggal bolong = %d, want 5", len(missing))
	}
	for _, d := range missing {
		s := d.Format("2006-01-02")
		if s == "2025-01-06" || s == "2025-01-12" {
			t.Fatalf("%s seharusnya tidak dianggap bolong", s)
		}
	}
}

func TestMissingDatesEmptyClassroom(t *testing.T) {
	fx := newFixture()
	// kelas 2 hanya punya Citra; nonaktifkan
	fx.classrooms.students[20].IsActive = false

	missing, err := fx.attendance.MissingDates(2, date("2025-01-06"), date("2025-01-12"))
	if err != nil {
		t.Fatalf("MissingDates: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("kelas tanpa siswa aktif: bolong = %d, want 0", len(missing))
	}
}
