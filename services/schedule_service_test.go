package services

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekdayIndex(t *testing.T) {
	// 2025-01-06 jatuh di hari Senin
	cases := []struct {
		date string
		want int
	}{
		{"2025-01-06", 0}, // Senin
		{"2025-01-10", 4}, // Jumat
		{"2025-01-11", 5}, // Sabtu
		{"2025-01-12", 6}, // Minggu
	}
	for _, c := range cases {
		if got := WeekdayIndex(date(c.date)); got != c.want {
			t.Fatalf("WeekdayIndex(%s) = %d, want %d", c.date, got, c.want)
		}
	}
}

func TestJPCountPerDay(t *testing.T) {
	svc := NewScheduleService(defaultSchedules())

	if got := svc.JPCountForDate(date("2025-01-06")); got != 6 {
		t.Fatalf("Senin: JP = %d, want 6", got)
	}
	if got := svc.JPCountForDate(date("2025-01-10")); got != 4 {
		t.Fatalf("Jumat: JP = %d, want 4", got)
	}
	if svc.IsSchoolDay(date("2025-01-12")) {
		t.Fatalf("Minggu seharusnya bukan hari sekolah")
	}
	if !svc.IsSchoolDay(date("2025-01-11")) {
		t.Fatalf("Sabtu seharusnya hari sekolah")
	}
}

func TestJPCountFallbackWhenRowMissing(t *testing.T) {
	store := defaultSchedules()
	delete(store.rows, 2) // Rabu hilang
	svc := NewScheduleService(store)

	if got := svc.JPCountForDate(date("2025-01-08")); got != 6 {
		t.Fatalf("fallback JP = %d, want 6", got)
	}
	if !svc.IsSchoolDay(date("2025-01-08")) {
		t.Fatalf("hari tanpa baris jadwal (bukan Minggu) harus tetap hari sekolah")
	}

	delete(store.rows, 6)
	if svc.IsSchoolDay(date("2025-01-12")) {
		t.Fatalf("Minggu tanpa baris jadwal harus tetap bukan hari sekolah")
	}
}

func TestUpdateScheduleValidation(t *testing.T) {
	svc := NewScheduleService(defaultSchedules())

	if _, err := svc.UpdateSchedule(0, 0, nil); err == nil {
		t.Fatalf("JP 0 seharusnya ditolak")
	}
	if _, err := svc.UpdateSchedule(0, 11, nil); err == nil {
		t.Fatalf("JP 11 seharusnya ditolak")
	}

	sched, err := svc.UpdateSchedule(4, 5, nil)
	if err != nil {
		t.Fatalf("UpdateSchedule: %v", err)
	}
	if sched.DefaultJPCount != 5 {
		t.Fatalf("JP Jumat = %d, want 5", sched.DefaultJPCount)
	}
	if got := svc.JPCountForDate(date("2025-01-10")); got != 5 {
		t.Fatalf("JP Jumat setelah update = %d, want 5", got)
	}
}
