package services

import (
	"sort"

	"github.com/hisbanh/rekapabsensi/models"
)

// fake store in-memory untuk test service tanpa database

type fakeScheduleStore struct {
	rows map[int]*models.DaySchedule
}

func defaultSchedules() *fakeScheduleStore {
	rows := map[int]*models.DaySchedule{}
	names := []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}
	for day, name := range names {
		jp := 6
		school := true
		switch day {
		case 4:
			jp = 4
		case 6:
			jp = 0
			school = false
		}
		rows[day] = &models.DaySchedule{
			ID: uint(day + 1), DayOfWeek: day, DayName: name,
			DefaultJPCount: jp, IsSchoolDay: school,
		}
	}
	return &fakeScheduleStore{rows: rows}
}

func (f *fakeScheduleStore) ByWeekday(day int) (*models.DaySchedule, error) {
	return f.rows[day], nil
}

func (f *fakeScheduleStore) All() ([]models.DaySchedule, error) {
	out := make([]models.DaySchedule, 0, len(f.rows))
	for day := 0; day < 7; day++ {
		if s, ok := f.rows[day]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) Save(s *models.DaySchedule) error {
	f.rows[s.DayOfWeek] = s
	return nil
}

type fakeHolidayStore struct {
	holidays []models.Holiday
	// id libur -> kelas yang discope
	scopes map[uint][]uint
	nextID uint
}

func newFakeHolidayStore() *fakeHolidayStore {
	return &fakeHolidayStore{scopes: map[uint][]uint{}, nextID: 1}
}

func (f *fakeHolidayStore) GlobalOnDate(date string) (bool, error) {
	for _, h := range f.holidays {
		if h.Date == date && h.ApplyToAll {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayStore) ClassroomOnDate(date string, classroomID uint) (bool, error) {
	for _, h := range f.holidays {
		if h.Date != date || h.ApplyToAll {
			continue
		}
		for _, id := range f.scopes[h.ID] {
			if id == classroomID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeHolidayStore) InRange(start, end string, classroomID uint) ([]models.Holiday, error) {
	var out []models.Holiday
	for _, h := range f.holidays {
		if h.Date < start || h.Date > end {
			continue
		}
		if h.ApplyToAll {
			out = append(out, h)
			continue
		}
		for _, id := range f.scopes[h.ID] {
			if id == classroomID {
				out = append(out, h)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeHolidayStore) ByID(id uint) (*models.Holiday, error) {
	for i := range f.holidays {
		if f.holidays[i].ID == id {
			return &f.holidays[i], nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayStore) All() ([]models.Holiday, error) {
	return append([]models.Holiday{}, f.holidays...), nil
}

func syncHolidayScope(h *models.Holiday, classroomIDs []uint) {
	if h.ApplyToAll || len(classroomIDs) == 0 {
		h.Classrooms = nil
		return
	}
	h.Classrooms = make([]models.Classroom, 0, len(classroomIDs))
	for _, id := range classroomIDs {
		h.Classrooms = append(h.Classrooms, models.Classroom{ID: id})
	}
}

func (f *fakeHolidayStore) Create(h *models.Holiday, classroomIDs []uint) error {
	h.ID = f.nextID
	f.nextID++
	syncHolidayScope(h, classroomIDs)
	f.holidays = append(f.holidays, *h)
	f.scopes[h.ID] = classroomIDs
	return nil
}

func (f *fakeHolidayStore) Update(h *models.Holiday, classroomIDs []uint) error {
	syncHolidayScope(h, classroomIDs)
	for i := range f.holidays {
		if f.holidays[i].ID == h.ID {
			f.holidays[i] = *h
		}
	}
	f.scopes[h.ID] = classroomIDs
	return nil
}

func (f *fakeHolidayStore) Delete(id uint) (bool, error) {
	for i := range f.holidays {
		if f.holidays[i].ID == id {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			delete(f.scopes, id)
			return true, nil
		}
	}
	return false, nil
}

type fakeClassroomStore struct {
	classrooms map[uint]*models.Classroom
	students   map[uint]*models.Student
}

func newFakeClassroomStore() *fakeClassroomStore {
	return &fakeClassroomStore{
		classrooms: map[uint]*models.Classroom{},
		students:   map[uint]*models.Student{},
	}
}

func (f *fakeClassroomStore) ByID(id uint) (*models.Classroom, error) {
	return f.classrooms[id], nil
}

func (f *fakeClassroomStore) All(activeOnly bool) ([]models.Classroom, error) {
	var out []models.Classroom
	for _, c := range f.classrooms {
		if !activeOnly || c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClassroomStore) ActiveStudents(classroomID uint) ([]models.Student, error) {
	var out []models.Student
	for _, s := range f.students {
		if s.ClassroomID == classroomID && s.IsActive {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeClassroomStore) CountExisting(ids []uint) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := f.classrooms[id]; ok {
			n++
		}
	}
	return n, nil
}

type fakeStudentStore struct {
	classrooms *fakeClassroomStore
}

func (f *fakeStudentStore) ByID(id uint) (*models.Student, error) {
	return f.classrooms.students[id], nil
}

type fakeAttendanceStore struct {
	// key: studentID lalu tanggal
	records    map[uint]map[string]*models.DailyAttendance
	classrooms *fakeClassroomStore
}

func newFakeAttendanceStore(classrooms *fakeClassroomStore) *fakeAttendanceStore {
	return &fakeAttendanceStore{
		records:    map[uint]map[string]*models.DailyAttendance{},
		classrooms: classrooms,
	}
}

func (f *fakeAttendanceStore) Get(studentID uint, date string) (*models.DailyAttendance, error) {
	return f.records[studentID][date], nil
}

func (f *fakeAttendanceStore) inClassroom(studentID, classroomID uint) bool {
	s := f.classrooms.students[studentID]
	return s != nil && s.ClassroomID == classroomID
}

func (f *fakeAttendanceStore) ForClassroom(classroomID uint, date string) ([]models.DailyAttendance, error) {
	var out []models.DailyAttendance
	for sid, byDate := range f.records {
		if !f.inClassroom(sid, classroomID) {
			continue
		}
		if rec, ok := byDate[date]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ForClassroomRange(classroomID uint, start, end string) ([]models.DailyAttendance, error) {
	var out []models.DailyAttendance
	for sid, byDate := range f.records {
		if !f.inClassroom(sid, classroomID) {
			continue
		}
		for date, rec := range byDate {
			if date >= start && date <= end {
				out = append(out, *rec)
			}
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ForStudentRange(studentID uint, start, end string) ([]models.DailyAttendance, error) {
	var out []models.DailyAttendance
	for date, rec := range f.records[studentID] {
		if date >= start && date <= end {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) DatesWithRecords(classroomID uint, start, end string) (map[string]bool, error) {
	out := map[string]bool{}
	for sid, byDate := range f.records {
		if !f.inClassroom(sid, classroomID) {
			continue
		}
		for date := range byDate {
			if date >= start && date <= end {
				out[date] = true
			}
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) Upsert(rec *models.DailyAttendance) error {
	if f.records[rec.StudentID] == nil {
		f.records[rec.StudentID] = map[string]*models.DailyAttendance{}
	}
	cp := *rec
	f.records[rec.StudentID][rec.Date] = &cp
	return nil
}

func (f *fakeAttendanceStore) UpsertBatch(recs []*models.DailyAttendance) error {
	for _, rec := range recs {
		if err := f.Upsert(rec); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAttendanceStore) countFor(studentID uint) int {
	return len(f.records[studentID])
}

func (f *fakeAttendanceStore) totalCount() int {
	n := 0
	for _, byDate := range f.records {
		n += len(byDate)
	}
	return n
}
