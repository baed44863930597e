package services

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/hisbanh/rekapabsensi/models"
)

// ─── bentuk laporan ───────────────────────────────────────────────────────────

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DailyCell: agregat satu siswa satu tanggal. Summary berbentuk "H:4 S:1 I:0 A:1",
// atau "-" jika belum ada record sama sekali.
type DailyCell struct {
	Date      string `json:"date"`
	JPCount   int    `json:"jp_count"`
	Hadir     int    `json:"hadir"`
	Sakit     int    `json:"sakit"`
	Izin      int    `json:"izin"`
	Alpa      int    `json:"alpa"`
	HasRecord bool   `json:"has_record"`
	Summary   string `json:"summary"`
}

type StudentRow struct {
	Student              models.Student `json:"student"`
	TotalHadir           int            `json:"total_hadir"`
	TotalSakit           int            `json:"total_sakit"`
	TotalIzin            int            `json:"total_izin"`
	TotalAlpa            int            `json:"total_alpa"`
	TotalJP              int            `json:"total_jp"`
	AttendancePercentage float64        `json:"attendance_percentage"`
	Daily                []DailyCell    `json:"daily"`
}

type ClassSummary struct {
	TotalStudents        int     `json:"total_students"`
	TotalHadir           int     `json:"total_hadir"`
	TotalSakit           int     `json:"total_sakit"`
	TotalIzin            int     `json:"total_izin"`
	TotalAlpa            int     `json:"total_alpa"`
	TotalJP              int     `json:"total_jp"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type ClassReport struct {
	Classroom       models.Classroom `json:"classroom"`
	Period          Period           `json:"period"`
	Students        []StudentRow     `json:"students"`
	Summary         ClassSummary     `json:"class_summary"`
	SchoolDates     []string         `json:"school_dates"`
	TotalSchoolDays int              `json:"total_school_days"`
}

type JPDetail struct {
	JPNumber int    `json:"jp_number"`
	Status   string `json:"status"`
	Label    string `json:"label"`
}

type DayRecord struct {
	Date      string     `json:"date"`
	DayName   string     `json:"day_name"`
	JPCount   int        `json:"jp_count"`
	Periods   []JPDetail `json:"periods"`
	HasRecord bool       `json:"has_record"`
	Hadir     int        `json:"hadir"`
	Sakit     int        `json:"sakit"`
	Izin      int        `json:"izin"`
	Alpa      int        `json:"alpa"`
	Notes     string     `json:"notes"`
}

type StudentSummary struct {
	TotalHadir int     `json:"total_hadir"`
	TotalSakit int     `json:"total_sakit"`
	TotalIzin  int     `json:"total_izin"`
	TotalAlpa  int     `json:"total_alpa"`
	TotalJP    int     `json:"total_jp"`
	HadirPct   float64 `json:"hadir_pct"`
	SakitPct   float64 `json:"sakit_pct"`
	IzinPct    float64 `json:"izin_pct"`
	AlpaPct    float64 `json:"alpa_pct"`
}

type StudentReport struct {
	Student         models.Student   `json:"student"`
	Classroom       models.Classroom `json:"classroom"`
	Period          Period           `json:"period"`
	DailyRecords    []DayRecord      `json:"daily_records"`
	Summary         StudentSummary   `json:"summary"`
	TotalSchoolDays int              `json:"total_school_days"`
	MaxJPCount      int              `json:"max_jp_count"`
}

// ─── service ──────────────────────────────────────────────────────────────────

type ReportService struct {
	attendance   AttendanceStore
	students     StudentStore
	classrooms   ClassroomStore
	schedule     *ScheduleService
	holidays     *HolidayService
	maxRangeDays int
}

func NewReportService(
	attendance AttendanceStore,
	students StudentStore,
	classrooms ClassroomStore,
	schedule *ScheduleService,
	holidays *HolidayService,
	maxRangeDays int,
) *ReportService {
	if maxRangeDays <= 0 {
		maxRangeDays = 366
	}
	return &ReportService{
		attendance:   attendance,
		students:     students,
		classrooms:   classrooms,
		schedule:     schedule,
		holidays:     holidays,
		maxRangeDays: maxRangeDays,
	}
}

func (s *ReportService) validateRange(start, end time.Time) error {
	if end.Before(start) {
		return validationErr("end_date", "tanggal akhir sebelum tanggal mulai")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > s.maxRangeDays {
		return validationErr("end_date",
			"rentang %d hari melebihi batas %d hari", days, s.maxRangeDays)
	}
	return nil
}

// roundPct: persentase 2 desimal, pembulatan half-up; penyebut nol = 0.0.
func roundPct(n, d int) float64 {
	if d == 0 {
		return 0.0
	}
	return math.Round(float64(n)/float64(d)*10000) / 100
}

// countStatuses menghitung per kode status pada slot 1..jpCount. JP yang tidak
// diisi tidak masuk pembilang maupun penyebut, dan key di luar jadwal hari itu
// (sisa record sebelum jadwal dikecilkan) diabaikan supaya rekap kelas dan
// rekap siswa selalu sepakat.
func countStatuses(statuses map[string]string, jpCount int) (h, sk, i, a int) {
	for jp := 1; jp <= jpCount; jp++ {
		switch statuses[strconv.Itoa(jp)] {
		case models.StatusHadir:
			h++
		case models.StatusSakit:
			sk++
		case models.StatusIzin:
			i++
		case models.StatusAlpa:
			a++
		}
	}
	return
}

func summaryString(h, s, i, a int, hasRecord bool) string {
	if !hasRecord {
		return "-"
	}
	return fmt.Sprintf("H:%d S:%d I:%d A:%d", h, s, i, a)
}

// ClassReport membangun rekap satu kelas untuk rentang tanggal. Hari libur dan
// hari non-sekolah tidak pernah masuk kolom, jadi tidak memengaruhi persentase.
func (s *ReportService) ClassReport(classroomID uint, start, end time.Time) (*ClassReport, error) {
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}
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

	schoolDates := s.holidays.SchoolDatesInRange(start, end, classroomID)
	dateStrs := make([]string, len(schoolDates))
	for i, d := range schoolDates {
		dateStrs[i] = d.Format(dateLayout)
	}

	records, err := s.attendance.ForClassroomRange(classroomID,
		start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	// index (student, tanggal) -> record; unique constraint menjamin maksimal satu
	byStudentDate := make(map[uint]map[string]*models.DailyAttendance, len(students))
	for i := range records {
		rec := &records[i]
		if byStudentDate[rec.StudentID] == nil {
			byStudentDate[rec.StudentID] = make(map[string]*models.DailyAttendance)
		}
		byStudentDate[rec.StudentID][rec.Date] = rec
	}

	report := &ClassReport{
		Classroom:       *classroom,
		Period:          Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)},
		Students:        make([]StudentRow, 0, len(students)),
		SchoolDates:     dateStrs,
		TotalSchoolDays: len(schoolDates),
	}

	var classHadir, classSakit, classIzin, classAlpa, classJP int
	for _, student := range students {
		row := StudentRow{Student: student, Daily: make([]DailyCell, 0, len(schoolDates))}
		for _, d := range schoolDates {
			dateStr := d.Format(dateLayout)
			cell := DailyCell{Date: dateStr, JPCount: s.schedule.JPCountForDate(d)}
			if rec, ok := byStudentDate[student.ID][dateStr]; ok {
				cell.HasRecord = true
				cell.Hadir, cell.Sakit, cell.Izin, cell.Alpa = countStatuses(rec.StatusMap(), cell.JPCount)
			}
			cell.Summary = summaryString(cell.Hadir, cell.Sakit, cell.Izin, cell.Alpa, cell.HasRecord)
			row.TotalHadir += cell.Hadir
			row.TotalSakit += cell.Sakit
			row.TotalIzin += cell.Izin
			row.TotalAlpa += cell.Alpa
			row.Daily = append(row.Daily, cell)
		}
		row.TotalJP = row.TotalHadir + row.TotalSakit + row.TotalIzin + row.TotalAlpa
		row.AttendancePercentage = roundPct(row.TotalHadir, row.TotalJP)

		classHadir += row.TotalHadir
		classSakit += row.TotalSakit
		classIzin += row.TotalIzin
		classAlpa += row.TotalAlpa
		classJP += row.TotalJP
		report.Students = append(report.Students, row)
	}

	// Persentase kelas dihitung dari jumlah JP gabungan, bukan rata-rata
	// persentase per siswa: siswa dengan JP lebih banyak berbobot lebih besar.
	report.Summary = ClassSummary{
		TotalStudents:        len(students),
		TotalHadir:           classHadir,
		TotalSakit:           classSakit,
		TotalIzin:            classIzin,
		TotalAlpa:            classAlpa,
		TotalJP:              classJP,
		AttendancePercentage: roundPct(classHadir, classJP),
	}
	return report, nil
}

// StudentReport membangun rekap per-JP satu siswa untuk rentang tanggal.
func (s *ReportService) StudentReport(studentID uint, start, end time.Time) (*StudentReport, error) {
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}
	student, err := s.students.ByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFoundErr("student", studentID)
	}
	classroom, err := s.classrooms.ByID(student.ClassroomID)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, notFoundErr("classroom", student.ClassroomID)
	}

	schoolDates := s.holidays.SchoolDatesInRange(start, end, classroom.ID)

	records, err := s.attendance.ForStudentRange(studentID,
		start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*models.DailyAttendance, len(records))
	for i := range records {
		byDate[records[i].Date] = &records[i]
	}

	report := &StudentReport{
		Student:         *student,
		Classroom:       *classroom,
		Period:          Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)},
		DailyRecords:    make([]DayRecord, 0, len(schoolDates)),
		TotalSchoolDays: len(schoolDates),
	}

	var sum StudentSummary
	for _, d := range schoolDates {
		jpCount := s.schedule.JPCountForDate(d)
		if jpCount > report.MaxJPCount {
			report.MaxJPCount = jpCount
		}

		day := DayRecord{
			Date:    d.Format(dateLayout),
			JPCount: jpCount,
			Periods: make([]JPDetail, 0, jpCount),
		}
		if sched, err := s.schedule.ScheduleForDate(d); err == nil && sched != nil {
			day.DayName = sched.DayName
		}

		var statuses map[string]string
		if rec, ok := byDate[day.Date]; ok {
			day.HasRecord = true
			day.Notes = rec.Notes
			statuses = rec.StatusMap()
		}
		for jp := 1; jp <= jpCount; jp++ {
			code := statuses[strconv.Itoa(jp)]
			day.Periods = append(day.Periods, JPDetail{
				JPNumber: jp,
				Status:   code,
				Label:    models.StatusLabel(code),
			})
			switch code {
			case models.StatusHadir:
				day.Hadir++
			case models.StatusSakit:
				day.Sakit++
			case models.StatusIzin:
				day.Izin++
			case models.StatusAlpa:
				day.Alpa++
			}
		}
		sum.TotalHadir += day.Hadir
		sum.TotalSakit += day.Sakit
		sum.TotalIzin += day.Izin
		sum.TotalAlpa += day.Alpa
		report.DailyRecords = append(report.DailyRecords, day)
	}

	sum.TotalJP = sum.TotalHadir + sum.TotalSakit + sum.TotalIzin + sum.TotalAlpa
	sum.HadirPct = roundPct(sum.TotalHadir, sum.TotalJP)
	sum.SakitPct = roundPct(sum.TotalSakit, sum.TotalJP)
	sum.IzinPct = roundPct(sum.TotalIzin, sum.TotalJP)
	sum.AlpaPct = roundPct(sum.TotalAlpa, sum.TotalJP)
	report.Summary = sum
	return report, nil
}

// DailySummary: ringkasan satu kelas satu tanggal untuk dashboard guru.
type DailySummary struct {
	Date          string `json:"date"`
	ClassroomID   uint   `json:"classroom_id"`
	ClassroomName string `json:"classroom_name"`
	IsSchoolDay   bool   `json:"is_school_day"`
	IsHoliday     bool   `json:"is_holiday"`
	JPCount       int    `json:"jp_count"`
	TotalStudents int    `json:"total_students"`
	Recorded      int    `json:"recorded"`
	Hadir         int    `json:"hadir"`
	Sakit         int    `json:"sakit"`
	Izin          int    `json:"izin"`
	Alpa          int    `json:"alpa"`
}

func (s *ReportService) DailySummary(classroomID uint, date time.Time) (*DailySummary, error) {
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
	records, err := s.attendance.ForClassroom(classroomID, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	sum := &DailySummary{
		Date:          date.Format(dateLayout),
		ClassroomID:   classroomID,
		ClassroomName: classroom.Name,
		IsSchoolDay:   s.schedule.IsSchoolDay(date),
		IsHoliday:     s.holidays.IsHoliday(date, classroomID),
		JPCount:       s.schedule.JPCountForDate(date),
		TotalStudents: len(students),
		Recorded:      len(records),
	}
	for i := range records {
		h, sk, iz, a := countStatuses(records[i].StatusMap(), sum.JPCount)
		sum.Hadir += h
		sum.Sakit += sk
		sum.Izin += iz
		sum.Alpa += a
	}
	return sum, nil
}

// DailyStatistics: ringkasan satu tanggal lintas semua kelas aktif, dipakai
// dashboard untuk menampilkan kelas mana yang belum mengisi absensi.
type DailyStatistics struct {
	Date            string         `json:"date"`
	TotalClassrooms int            `json:"total_classrooms"`
	TotalStudents   int            `json:"total_students"`
	TotalRecorded   int            `json:"total_recorded"`
	NotRecorded     int            `json:"not_recorded"`
	Hadir           int            `json:"hadir"`
	Sakit           int            `json:"sakit"`
	Izin            int            `json:"izin"`
	Alpa            int            `json:"alpa"`
	Classrooms      []DailySummary `json:"classrooms"`
}

func (s *ReportService) DailyStatistics(date time.Time) (*DailyStatistics, error) {
	classrooms, err := s.classrooms.All(true)
	if err != nil {
		return nil, err
	}

	stats := &DailyStatistics{
		Date:            date.Format(dateLayout),
		TotalClassrooms: len(classrooms),
		Classrooms:      make([]DailySummary, 0, len(classrooms)),
	}
	for _, classroom := range classrooms {
		sum, err := s.DailySummary(classroom.ID, date)
		if err != nil {
			return nil, err
		}
		stats.TotalStudents += sum.TotalStudents
		stats.TotalRecorded += sum.Recorded
		// Kelas yang hari itu libur atau bukan hari sekolah tidak dihitung
		// sebagai "belum mengisi".
		if sum.IsSchoolDay && !sum.IsHoliday {
			stats.NotRecorded += sum.TotalStudents - sum.Recorded
		}
		stats.Hadir += sum.Hadir
		stats.Sakit += sum.Sakit
		stats.Izin += sum.Izin
		stats.Alpa += sum.Alpa
		stats.Classrooms = append(stats.Classrooms, *sum)
	}
	return stats, nil
}
