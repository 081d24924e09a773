package models

import "gorm.io/gorm"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User is the local account for an externally issued identity. FirebaseUID
// is the provider's subject identifier; exactly one account exists per
// subject.
type User struct {
	gorm.Model
	FirebaseUID string `gorm:"uniqueIndex;not null" json:"firebase_uid"`
	Email       string `gorm:"not null" json:"email"`
	Role        string `gorm:"default:student" json:"role"` // student, teacher, admin
}

// UserUpdate lists the mutable account fields. Anything not present here
// (subject identifier, ids, timestamps) cannot be changed through the API.
type UserUpdate struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}
