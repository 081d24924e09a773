package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Level       string `gorm:"not null" json:"level"`    // A1, A2, B1, B2, C1
	Category    string `gorm:"not null" json:"category"` // medical, engineering, general
	TeacherID   uint   `gorm:"not null" json:"teacher_id"`

	// Read-model fields joined in by the store, never persisted.
	TeacherEmail    string `gorm:"-" json:"teacher_email,omitempty"`
	EnrollmentCount int64  `gorm:"-" json:"enrollment_count"`
}

// CourseUpdate lists the mutable course fields. Ownership (TeacherID) is
// deliberately absent: courses do not change hands through the update route.
type CourseUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Level       *string `json:"level" validate:"omitempty,oneof=A1 A2 B1 B2 C1"`
	Category    *string `json:"category" validate:"omitempty,oneof=medical engineering general"`
}

// Enrollment joins a learner to a course. The composite unique index is the
// duplicate-enrollment guard; the handlers rely on the store surfacing the
// violation rather than checking first.
type Enrollment struct {
	gorm.Model
	CourseID uint `gorm:"not null;uniqueIndex:idx_enrollments_course_user" json:"course_id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_enrollments_course_user" json:"user_id"`
	Progress int  `gorm:"default:0" json:"progress"`

	Email string `gorm:"-" json:"email,omitempty"`
}
