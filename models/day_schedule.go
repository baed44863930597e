package models

import "time"

// Jadwal JP default per hari dalam seminggu. Tepat 7 baris (0=Senin .. 6=Minggu),
// di-seed sekali saat start; hanya diubah lewat endpoint update jadwal, tidak pernah dihapus.
type DaySchedule struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	DayOfWeek      int    `json:"day_of_week" gorm:"uniqueIndex;not null"` // 0=Senin .. 6=Minggu
	DayName        string `json:"day_name" gorm:"size:10;not null"`
	DefaultJPCount int    `json:"default_jp_count" gorm:"not null"` // 1-10; 0 hanya untuk hari non-sekolah
	IsSchoolDay    bool   `json:"is_school_day" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
