package services

import "github.com/hisbanh/rekapabsensi/models"

// Store interfaces: batas antara logika rekap dan persistence. Implementasi
// produksi memakai GORM (store_gorm.go); test memakai fake in-memory.

type ScheduleStore interface {
	// ByWeekday mengembalikan (nil, nil) jika baris hari itu tidak ada.
	ByWeekday(dayOfWeek int) (*models.DaySchedule, error)
	All() ([]models.DaySchedule, error)
	Save(s *models.DaySchedule) error
}

type HolidayStore interface {
	GlobalOnDate(date string) (bool, error)
	ClassroomOnDate(date string, classroomID uint) (bool, error)
	// InRange: libur global + libur yang discope ke classroomID (0 = global saja).
	InRange(start, end string, classroomID uint) ([]models.Holiday, error)
	ByID(id uint) (*models.Holiday, error)
	All() ([]models.Holiday, error)
	// Create/Update mengganti relasi classrooms dengan classroomIDs dan
	// menyinkronkan h.Classrooms ke scope baru.
	Create(h *models.Holiday, classroomIDs []uint) error
	Update(h *models.Holiday, classroomIDs []uint) error
	Delete(id uint) (bool, error)
}

type ClassroomStore interface {
	ByID(id uint) (*models.Classroom, error)
	All(activeOnly bool) ([]models.Classroom, error)
	// ActiveStudents diurutkan berdasarkan nama.
	ActiveStudents(classroomID uint) ([]models.Student, error)
	CountExisting(ids []uint) (int, error)
}

type StudentStore interface {
	ByID(id uint) (*models.Student, error)
}

type AttendanceStore interface {
	// Get mengembalikan (nil, nil) jika belum ada record untuk (siswa, tanggal).
	Get(studentID uint, date string) (*models.DailyAttendance, error)
	ForClassroom(classroomID uint, date string) ([]models.DailyAttendance, error)
	ForClassroomRange(classroomID uint, start, end string) ([]models.DailyAttendance, error)
	ForStudentRange(studentID uint, start, end string) ([]models.DailyAttendance, error)
	// DatesWithRecords: set tanggal yang sudah punya minimal satu record di kelas.
	DatesWithRecords(classroomID uint, start, end string) (map[string]bool, error)
	// Upsert atomik terhadap unique (student_id, date).
	Upsert(rec *models.DailyAttendance) error
	// UpsertBatch menulis semua record dalam satu transaksi; gagal satu = batal semua.
	UpsertBatch(recs []*models.DailyAttendance) error
}
