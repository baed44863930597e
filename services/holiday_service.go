package services

import (
	"strings"
	"time"

	"github.com/hisbanh/rekapabsensi/models"
)

type HolidayService struct {
	store      HolidayStore
	classrooms ClassroomStore
	schedule   *ScheduleService
}

func NewHolidayService(store HolidayStore, classrooms ClassroomStore, schedule *ScheduleService) *HolidayService {
	return &HolidayService{store: store, classrooms: classrooms, schedule: schedule}
}

// IsHoliday: libur global menang duluan, baru cek libur yang discope ke kelas.
// classroomID 0 = hanya cek libur global.
func (s *HolidayService) IsHoliday(t time.Time, classroomID uint) bool {
	date := t.Format(dateLayout)
	if global, err := s.store.GlobalOnDate(date); err == nil && global {
		return true
	}
	if classroomID != 0 {
		if scoped, err := s.store.ClassroomOnDate(date, classroomID); err == nil && scoped {
			return true
		}
	}
	return false
}

// SchoolDatesInRange: sumber tunggal daftar "tanggal yang seharusnya ada absensi"
// — hari sekolah menurut jadwal dan bukan hari libur untuk kelas itu.
// Dipakai oleh rekap dan deteksi absensi bolong supaya keduanya tidak pernah beda.
func (s *HolidayService) SchoolDatesInRange(start, end time.Time, classroomID uint) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if s.schedule.IsSchoolDay(d) && !s.IsHoliday(d, classroomID) {
			dates = append(dates, d)
		}
	}
	return dates
}

func (s *HolidayService) HolidaysInRange(start, end time.Time, classroomID uint) ([]models.Holiday, error) {
	return s.store.InRange(start.Format(dateLayout), end.Format(dateLayout), classroomID)
}

func (s *HolidayService) ByID(id uint) (*models.Holiday, error) {
	h, err := s.store.ByID(id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, notFoundErr("holiday", id)
	}
	return h, nil
}

func (s *HolidayService) All() ([]models.Holiday, error) {
	return s.store.All()
}

type HolidayInput struct {
	Date         string `json:"date"`
	Name         string `json:"name"`
	HolidayType  string `json:"holiday_type"`
	ApplyToAll   *bool  `json:"apply_to_all"`
	ClassroomIDs []uint `json:"classroom_ids"`
	Description  string `json:"description"`
}

func (s *HolidayService) validateInput(in *HolidayInput) error {
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return validationErr("date", "tanggal harus YYYY-MM-DD")
	}
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("name", "nama hari libur wajib diisi")
	}
	if !models.IsValidHolidayType(in.HolidayType) {
		return validationErr("holiday_type",
			"jenis libur tidak valid: %q", in.HolidayType)
	}
	applyToAll := in.ApplyToAll == nil || *in.ApplyToAll
	if !applyToAll {
		// Invariant scoping: libur non-global wajib menyebut minimal satu kelas.
		if len(in.ClassroomIDs) == 0 {
			return validationErr("classroom_ids",
				"minimal satu kelas harus dipilih jika apply_to_all=false")
		}
		n, err := s.classrooms.CountExisting(in.ClassroomIDs)
		if err != nil {
			return err
		}
		if n != len(in.ClassroomIDs) {
			return notFoundErr("classroom", in.ClassroomIDs)
		}
	}
	return nil
}

func (s *HolidayService) Create(in *HolidayInput, actorID uint) (*models.Holiday, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	h := &models.Holiday{
		Date:        in.Date,
		Name:        strings.TrimSpace(in.Name),
		HolidayType: in.HolidayType,
		ApplyToAll:  in.ApplyToAll == nil || *in.ApplyToAll,
		Description: in.Description,
		CreatedBy:   actorID,
	}
	if err := s.store.Create(h, in.ClassroomIDs); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HolidayService) Update(id uint, in *HolidayInput, actorID uint) (*models.Holiday, error) {
	h, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	h.Date = in.Date
	h.Name = strings.TrimSpace(in.Name)
	h.HolidayType = in.HolidayType
	h.ApplyToAll = in.ApplyToAll == nil || *in.ApplyToAll
	h.Description = in.Description
	if err := s.store.Update(h, in.ClassroomIDs); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HolidayService) Delete(id uint) error {
	ok, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundErr("holiday", id)
	}
	return nil
}
