package models

import "time"

type Classroom struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Grade        int    `json:"grade" gorm:"not null;index"`              // 7..12
	Section      string `json:"section" gorm:"size:5"`                    // A, B, C, ...
	Name         string `json:"name" gorm:"size:50;not null"`             // misal "Kelas 10A"
	Capacity     int    `json:"capacity" gorm:"not null;default:30"`
	AcademicYear string `json:"academic_year" gorm:"size:9;not null"` // "2025/2026"
	IsActive     bool   `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
