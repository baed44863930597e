package models

import "time"

// Jenis hari libur.
const (
	HolidayUAS       = "UAS"       // ujian akhir semester
	HolidayUN        = "UN"        // ujian nasional
	HolidayPesantren = "PESANTREN" // libur pesantren
	HolidayLainnya   = "LAINNYA"
)

var holidayTypes = map[string]bool{
	HolidayUAS:       true,
	HolidayUN:        true,
	HolidayPesantren: true,
	HolidayLainnya:   true,
}

func IsValidHolidayType(t string) bool { return holidayTypes[t] }

// Hari libur: global (apply_to_all) atau terbatas ke sebagian kelas.
// Jika apply_to_all=false, relasi classrooms wajib terisi (divalidasi di service).
type Holiday struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Date        string `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	Name        string `json:"name" gorm:"size:100;not null"`
	HolidayType string `json:"holiday_type" gorm:"size:20;not null"` // UAS | UN | PESANTREN | LAINNYA
	ApplyToAll  bool   `json:"apply_to_all" gorm:"not null;default:true"`
	Description string `json:"description" gorm:"type:text"`

	Classrooms []Classroom `json:"classrooms,omitempty" gorm:"many2many:holiday_classrooms;"`

	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
