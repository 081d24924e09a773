// Package stores defines the storage capabilities the handlers are built
// against, plus their relational, document and in-memory implementations.
// Handlers receive these interfaces at construction time and never touch a
// global connection.
package stores

import (
	"context"
	"errors"

	"langbridge/backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type ListUsersOptions struct {
	Limit  int
	Offset int
	Role   string
}

type AccountStore interface {
	Create(ctx context.Context, user *models.User) error
	BySubject(ctx context.Context, firebaseUID string) (*models.User, error)
	Update(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, opts ListUsersOptions) ([]models.User, error)
}

type ListCoursesOptions struct {
	Limit    int
	Offset   int
	Level    string
	Category string
	Search   string
}

type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	ByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, id uint, update models.CourseUpdate) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, opts ListCoursesOptions) ([]models.Course, error)
	Enroll(ctx context.Context, courseID, userID uint) error
	UpdateProgress(ctx context.Context, courseID, userID uint, progress int) error
	Enrollments(ctx context.Context, courseID uint) ([]models.Enrollment, error)
}

// ConversationStore is append-only; messages never change after Append.
// Messages returns the store's native order, newest first; callers reverse
// for display.
type ConversationStore interface {
	Messages(ctx context.Context, courseID uint, limit int) ([]models.ChatMessage, error)
	Append(ctx context.Context, message *models.ChatMessage) error
	Message(ctx context.Context, courseID uint, messageID string) (*models.ChatMessage, error)
	Delete(ctx context.Context, courseID uint, messageID string) error
}
