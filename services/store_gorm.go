package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hisbanh/rekapabsensi/models"
)

// ─── ScheduleStore ─────────────────────────────────────────────────────────────

type gormScheduleStore struct{ db *gorm.DB }

func NewGormScheduleStore(db *gorm.DB) ScheduleStore { return &gormScheduleStore{db: db} }

func (g *gormScheduleStore) ByWeekday(dayOfWeek int) (*models.DaySchedule, error) {
	var s models.DaySchedule
	if err := g.db.Where("day_of_week = ?", dayOfWeek).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (g *gormScheduleStore) All() ([]models.DaySchedule, error) {
	var out []models.DaySchedule
	if err := g.db.Order("day_of_week ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormScheduleStore) Save(s *models.DaySchedule) error {
	return g.db.Save(s).Error
}

// ─── HolidayStore ──────────────────────────────────────────────────────────────

type gormHolidayStore struct{ db *gorm.DB }

func NewGormHolidayStore(db *gorm.DB) HolidayStore { return &gormHolidayStore{db: db} }

func (g *gormHolidayStore) GlobalOnDate(date string) (bool, error) {
	var n int64
	err := g.db.Model(&models.Holiday{}).
		Where("date = ? AND apply_to_all = ?", date, true).
		Count(&n).Error
	return n > 0, err
}

func (g *gormHolidayStore) ClassroomOnDate(date string, classroomID uint) (bool, error) {
	var n int64
	err := g.db.Model(&models.Holiday{}).
		Joins("JOIN holiday_classrooms hc ON hc.holiday_id = holidays.id").
		Where("holidays.date = ? AND holidays.apply_to_all = ? AND hc.classroom_id = ?",
			date, false, classroomID).
		Count(&n).Error
	return n > 0, err
}

func (g *gormHolidayStore) InRange(start, end string, classroomID uint) ([]models.Holiday, error) {
	tx := g.db.Model(&models.Holiday{}).Distinct("holidays.*").
		Where("holidays.date >= ? AND holidays.date <= ?", start, end)
	if classroomID != 0 {
		tx = tx.Joins("LEFT JOIN holiday_classrooms hc ON hc.holiday_id = holidays.id").
			Where("holidays.apply_to_all = ? OR hc.classroom_id = ?", true, classroomID)
	}
	var out []models.Holiday
	if err := tx.Order("holidays.date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormHolidayStore) ByID(id uint) (*models.Holiday, error) {
	var h models.Holiday
	if err := g.db.Preload("Classrooms").First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (g *gormHolidayStore) All() ([]models.Holiday, error) {
	var out []models.Holiday
	if err := g.db.Preload("Classrooms").Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormHolidayStore) Create(h *models.Holiday, classroomIDs []uint) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(h).Error; err != nil {
			return err
		}
		return replaceHolidayClassrooms(tx, h, classroomIDs)
	})
}

func (g *gormHolidayStore) Update(h *models.Holiday, classroomIDs []uint) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(h).Error; err != nil {
			return err
		}
		return replaceHolidayClassrooms(tx, h, classroomIDs)
	})
}

func replaceHolidayClassrooms(tx *gorm.DB, h *models.Holiday, classroomIDs []uint) error {
	if h.ApplyToAll || len(classroomIDs) == 0 {
		if err := tx.Model(h).Association("Classrooms").Clear(); err != nil {
			return err
		}
		h.Classrooms = nil
		return nil
	}
	var classrooms []models.Classroom
	if err := tx.Find(&classrooms, "id IN ?", classroomIDs).Error; err != nil {
		return err
	}
	if err := tx.Model(h).Association("Classrooms").Replace(classrooms); err != nil {
		return err
	}
	// h bisa datang dari ByID dengan scope lama ter-preload; sinkronkan
	// supaya response update tidak menampilkan scope basi.
	h.Classrooms = classrooms
	return nil
}

func (g *gormHolidayStore) Delete(id uint) (bool, error) {
	tx := g.db.Select(clause.Associations).Delete(&models.Holiday{ID: id})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ─── ClassroomStore / StudentStore ─────────────────────────────────────────────

type gormClassroomStore struct{ db *gorm.DB }

func NewGormClassroomStore(db *gorm.DB) ClassroomStore { return &gormClassroomStore{db: db} }

func (g *gormClassroomStore) ByID(id uint) (*models.Classroom, error) {
	var c models.Classroom
	if err := g.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (g *gormClassroomStore) All(activeOnly bool) ([]models.Classroom, error) {
	tx := g.db.Order("grade ASC, section ASC")
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	var out []models.Classroom
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormClassroomStore) ActiveStudents(classroomID uint) ([]models.Student, error) {
	var out []models.Student
	err := g.db.Where("classroom_id = ? AND is_active = ?", classroomID, true).
		Order("name ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormClassroomStore) CountExisting(ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := g.db.Model(&models.Classroom{}).Where("id IN ?", ids).Count(&n).Error
	return int(n), err
}

type gormStudentStore struct{ db *gorm.DB }

func NewGormStudentStore(db *gorm.DB) StudentStore { return &gormStudentStore{db: db} }

func (g *gormStudentStore) ByID(id uint) (*models.Student, error) {
	var s models.Student
	if err := g.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ─── AttendanceStore ───────────────────────────────────────────────────────────

type gormAttendanceStore struct{ db *gorm.DB }

func NewGormAttendanceStore(db *gorm.DB) AttendanceStore { return &gormAttendanceStore{db: db} }

func (g *gormAttendanceStore) Get(studentID uint, date string) (*models.DailyAttendance, error) {
	var rec models.DailyAttendance
	err := g.db.Where("student_id = ? AND date = ?", studentID, date).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (g *gormAttendanceStore) ForClassroom(classroomID uint, date string) ([]models.DailyAttendance, error) {
	var out []models.DailyAttendance
	err := g.db.
		Joins("JOIN students s ON s.id = daily_attendances.student_id").
		Where("s.classroom_id = ? AND daily_attendances.date = ?", classroomID, date).
		Order("s.name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormAttendanceStore) ForClassroomRange(classroomID uint, start, end string) ([]models.DailyAttendance, error) {
	var out []models.DailyAttendance
	err := g.db.
		Joins("JOIN students s ON s.id = daily_attendances.student_id").
		Where("s.classroom_id = ? AND daily_attendances.date >= ? AND daily_attendances.date <= ?",
			classroomID, start, end).
		Order("daily_attendances.date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormAttendanceStore) ForStudentRange(studentID uint, start, end string) ([]models.DailyAttendance, error) {
	var out []models.DailyAttendance
	err := g.db.
		Where("student_id = ? AND date >= ? AND date <= ?", studentID, start, end).
		Order("date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gormAttendanceStore) DatesWithRecords(classroomID uint, start, end string) (map[string]bool, error) {
	var dates []string
	err := g.db.Model(&models.DailyAttendance{}).
		Joins("JOIN students s ON s.id = daily_attendances.student_id").
		Where("s.classroom_id = ? AND daily_attendances.date >= ? AND daily_attendances.date <= ?",
			classroomID, start, end).
		Distinct().
		Pluck("daily_attendances.date", &dates).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		out[d] = true
	}
	return out, nil
}

// Upsert atomik: insert dengan konflik (student_id, date) menjadi update.
// Dua penyimpanan bersamaan untuk pasangan yang sama terserialisasi di DB.
func (g *gormAttendanceStore) Upsert(rec *models.DailyAttendance) error {
	return g.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"jp_statuses", "notes", "recorded_by", "updated_at",
		}),
	}).Create(rec).Error
}

func (g *gormAttendanceStore) UpsertBatch(recs []*models.DailyAttendance) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range recs {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"jp_statuses", "notes", "recorded_by", "updated_at",
				}),
			}).Create(rec).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
