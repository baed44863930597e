package services

import (
	"time"

	"github.com/hisbanh/rekapabsensi/models"
)

const (
	// Fallback kalau baris jadwal hari itu hilang: 6 JP, tetap hari sekolah
	// (kecuali Minggu). Absennya konfigurasi tidak boleh memblokir rekap.
	fallbackJPCount = 6

	minJPCount = 1
	maxJPCount = 10

	sundayIndex = 6
)

const dateLayout = "2006-01-02"

// WeekdayIndex memetakan time.Weekday (Minggu=0) ke indeks jadwal (Senin=0 .. Minggu=6).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

type ScheduleService struct {
	store ScheduleStore
}

func NewScheduleService(store ScheduleStore) *ScheduleService {
	return &ScheduleService{store: store}
}

// JPCountForDate mengembalikan jumlah JP default untuk tanggal itu.
// Tidak pernah error: baris jadwal yang hilang terdegradasi ke fallback.
func (s *ScheduleService) JPCountForDate(t time.Time) int {
	sched, err := s.store.ByWeekday(WeekdayIndex(t))
	if err != nil || sched == nil {
		return fallbackJPCount
	}
	return sched.DefaultJPCount
}

func (s *ScheduleService) IsSchoolDay(t time.Time) bool {
	day := WeekdayIndex(t)
	sched, err := s.store.ByWeekday(day)
	if err != nil || sched == nil {
		return day != sundayIndex
	}
	return sched.IsSchoolDay
}

// ScheduleForDate mengembalikan (nil, nil) jika baris hari itu tidak ada.
func (s *ScheduleService) ScheduleForDate(t time.Time) (*models.DaySchedule, error) {
	return s.store.ByWeekday(WeekdayIndex(t))
}

func (s *ScheduleService) AllSchedules() ([]models.DaySchedule, error) {
	return s.store.All()
}

// UpdateSchedule mengubah jumlah JP (dan opsional flag hari sekolah) untuk satu hari.
func (s *ScheduleService) UpdateSchedule(dayOfWeek, jpCount int, isSchoolDay *bool) (*models.DaySchedule, error) {
	if jpCount < minJPCount || jpCount > maxJPCount {
		return nil, validationErr("default_jp_count",
			"jumlah JP harus %d-%d, dapat %d", minJPCount, maxJPCount, jpCount)
	}

	sched, err := s.store.ByWeekday(dayOfWeek)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, notFoundErr("day schedule", dayOfWeek)
	}

	sched.DefaultJPCount = jpCount
	if isSchoolDay != nil {
		sched.IsSchoolDay = *isSchoolDay
	}
	if err := s.store.Save(sched); err != nil {
		return nil, err
	}
	return sched, nil
}
