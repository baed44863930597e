package services

import (
	"strconv"
	"time"

	"github.com/hisbanh/rekapabsensi/models"
)

type AttendanceService struct {
	store      AttendanceStore
	students   StudentStore
	classrooms ClassroomStore
	schedule   *ScheduleService
	holidays   *HolidayService
}

func NewAttendanceService(
	store AttendanceStore,
	students StudentStore,
	classrooms ClassroomStore,
	schedule *ScheduleService,
	holidays *HolidayService,
) *AttendanceService {
	return &AttendanceService{
		store:      store,
		students:   students,
		classrooms: classrooms,
		schedule:   schedule,
		holidays:   holidays,
	}
}

// Get mengembalikan (nil, nil) jika belum ada record — bukan error.
func (s *AttendanceService) Get(studentID uint, date time.Time) (*models.DailyAttendance, error) {
	if st, err := s.students.ByID(studentID); err != nil {
		return nil, err
	} else if st == nil {
		return nil, notFoundErr("student", studentID)
	}
	return s.store.Get(studentID, date.Format(dateLayout))
}

func (s *AttendanceService) ForClassroom(classroomID uint, date time.Time) ([]models.DailyAttendance, error) {
	if c, err := s.classrooms.ByID(classroomID); err != nil {
		return nil, err
	} else if c == nil {
		return nil, notFoundErr("classroom", classroomID)
	}
	return s.store.ForClassroom(classroomID, date.Format(dateLayout))
}

// validateStatuses memvalidasi isi mapping JP di batas tulis: kode status harus
// H/S/I/A, key harus angka 1..jpCount, dan jumlah entri harus sama dengan
// jumlah JP hari itu. Tidak pernah mengoreksi diam-diam.
func validateStatuses(statuses map[string]string, jpCount int) error {
	for jp, code := range statuses {
		if !models.IsValidStatus(code) {
			return validationErr("jp_statuses",
				"status %q untuk JP %s tidak valid (harus H/S/I/A)", code, jp)
		}
		n, err := strconv.Atoi(jp)
		if err != nil || n < 1 || n > jpCount {
			return validationErr("jp_statuses",
				"nomor JP %q di luar rentang 1-%d", jp, jpCount)
		}
	}
	if len(statuses) != jpCount {
		return validationErr("jp_statuses",
			"jumlah JP tidak cocok: harusnya %d, dapat %d", jpCount, len(statuses))
	}
	return nil
}

// Save melakukan upsert absensi satu siswa satu tanggal. Pencatat (actorID)
// selalu eksplisit, tidak pernah diambil dari state ambient.
func (s *AttendanceService) Save(
	studentID uint,
	date time.Time,
	statuses map[string]string,
	actorID uint,
	notes string,
) (*models.DailyAttendance, error) {
	student, err := s.students.ByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFoundErr("student", studentID)
	}

	if err := validateStatuses(statuses, s.schedule.JPCountForDate(date)); err != nil {
		return nil, err
	}

	rec := &models.DailyAttendance{
		StudentID:  studentID,
		Date:       date.Format(dateLayout),
		Notes:      notes,
		RecordedBy: actorID,
	}
	rec.SetStatusMap(statuses)
	if err := s.store.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type BulkEntry struct {
	StudentID  uint              `json:"student_id"`
	JPStatuses map[string]string `json:"jp_statuses"`
	Notes      string            `json:"notes"`
}

// SaveBulk menyimpan absensi satu kelas untuk satu tanggal, all-or-nothing:
// semua entri divalidasi dulu, baru ditulis dalam satu transaksi. Satu entri
// gagal berarti tidak ada satu baris pun yang tersimpan, dan error menyebut
// siswa yang bermasalah.
func (s *AttendanceService) SaveBulk(
	classroomID uint,
	date time.Time,
	entries []BulkEntry,
	actorID uint,
) (int, error) {
	classroom, err := s.classrooms.ByID(classroomID)
	if err != nil {
		return 0, err
	}
	if classroom == nil {
		return 0, notFoundErr("classroom", classroomID)
	}

	jpCount := s.schedule.JPCountForDate(date)
	dateStr := date.Format(dateLayout)

	recs := make([]*models.DailyAttendance, 0, len(entries))
	for _, entry := range entries {
		student, err := s.students.ByID(entry.StudentID)
		if err != nil {
			return 0, err
		}
		if student == nil {
			return 0, notFoundErr("student", entry.StudentID)
		}
		if student.ClassroomID != classroomID {
			return 0, validationErr("student_id",
				"siswa %s bukan anggota kelas %s", student.Name, classroom.Name)
		}
		if err := validateStatuses(entry.JPStatuses, jpCount); err != nil {
			if ve, ok := err.(*ValidationError); ok {
				return 0, validationErr(ve.Field, "siswa %s: %s", student.Name, ve.Message)
			}
			return 0, err
		}

		rec := &models.DailyAttendance{
			StudentID:  entry.StudentID,
			Date:       dateStr,
			Notes:      entry.Notes,
			RecordedBy: actorID,
		}
		rec.SetStatusMap(entry.JPStatuses)
		recs = append(recs, rec)
	}

	if err := s.store.UpsertBatch(recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// MissingDates: tanggal sekolah dalam rentang yang belum punya satu pun record
// absensi untuk kelas itu. Memakai SchoolDatesInRange yang sama dengan rekap,
// jadi tanggal yang ditandai bolong pasti tanggal yang muncul di laporan.
func (s *AttendanceService) MissingDates(classroomID uint, start, end time.Time) ([]time.Time, error) {
	classroom, err := s.classrooms.ByID(classroomID)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, notFoundErr("classroom", classroomID)
	}

	students, err := s.classrooms.ActiveStudents(classroomID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, nil
	}

	existing, err := s.store.DatesWithRecords(classroomID,
		start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	var missing []time.Time
	for _, d := range s.holidays.SchoolDatesInRange(start, end, classroomID) {
		if !existing[d.Format(dateLayout)] {
			missing = append(missing, d)
		}
	}
	return missing, nil
}
