package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UUID        uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`     // referensi eksternal yang stabil
	StudentID   string    `json:"student_id" gorm:"size:20;uniqueIndex;not null"` // NIS
	NISN        string    `json:"nisn" gorm:"size:10"`
	Name        string    `json:"name" gorm:"size:100;not null;index"`
	ClassroomID uint      `json:"classroom_id" gorm:"not null;index"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
