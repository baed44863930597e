package models

import (
	"time"

	"gorm.io/datatypes"
)

// Absensi harian per siswa. Satu baris per (siswa, tanggal); jp_statuses berisi
// mapping nomor JP (string "1".."N") ke kode status H/S/I/A. Key yang tidak ada
// berarti JP itu belum tercatat — bukan Alpa.
type DailyAttendance struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	StudentID  uint              `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_date"`
	Date       string            `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_student_date;index"` // YYYY-MM-DD
	JPStatuses datatypes.JSONMap `json:"jp_statuses" gorm:"not null"`
	Notes      string            `json:"notes" gorm:"type:text"`
	RecordedBy uint              `json:"recorded_by" gorm:"not null"` // user yang mencatat, eksplisit

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusMap menurunkan jp_statuses ke map[string]string; nilai yang bukan
// string kode status diabaikan.
func (a *DailyAttendance) StatusMap() map[string]string {
	out := make(map[string]string, len(a.JPStatuses))
	for jp, v := range a.JPStatuses {
		if s, ok := v.(string); ok {
			out[jp] = s
		}
	}
	return out
}

func (a *DailyAttendance) SetStatusMap(m map[string]string) {
	jm := make(datatypes.JSONMap, len(m))
	for jp, s := range m {
		jm[jp] = s
	}
	a.JPStatuses = jm
}
