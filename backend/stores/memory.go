package stores

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"langbridge/backend/models"
)

// In-memory implementations of the store capabilities. They honor the same
// sentinel errors and ordering contracts as the real stores and count every
// write, so tests can assert that a denied request mutated nothing.

type MemoryAccounts struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
	writes int
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{nextID: 1, users: make(map[uint]*models.User)}
}

func (s *MemoryAccounts) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemoryAccounts) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.FirebaseUID == user.FirebaseUID {
			return ErrDuplicate
		}
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	s.writes++
	return nil
}

func (s *MemoryAccounts) BySubject(_ context.Context, firebaseUID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.FirebaseUID == firebaseUID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryAccounts) Update(_ context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	s.writes++
	copied := *user
	return &copied, nil
}

func (s *MemoryAccounts) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	s.writes++
	return nil
}

func (s *MemoryAccounts) List(_ context.Context, opts ListUsersOptions) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for id := uint(1); id < s.nextID; id++ {
		user, ok := s.users[id]
		if !ok {
			continue
		}
		if opts.Role != "" && user.Role != opts.Role {
			continue
		}
		users = append(users, *user)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if opts.Offset >= len(users) {
		return nil, nil
	}
	users = users[opts.Offset:]
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type MemoryCourses struct {
	mu          sync.Mutex
	nextID      uint
	courses     map[uint]*models.Course
	enrollments []*models.Enrollment
	accounts    *MemoryAccounts
	writes      int
}

// NewMemoryCourses takes the account fake so course reads can join in
// teacher and learner emails the way the relational store does.
func NewMemoryCourses(accounts *MemoryAccounts) *MemoryCourses {
	return &MemoryCourses{nextID: 1, courses: make(map[uint]*models.Course), accounts: accounts}
}

func (s *MemoryCourses) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemoryCourses) email(userID uint) string {
	if s.accounts == nil {
		return ""
	}
	s.accounts.mu.Lock()
	defer s.accounts.mu.Unlock()
	if user, ok := s.accounts.users[userID]; ok {
		return user.Email
	}
	return ""
}

func (s *MemoryCourses) Create(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	course.ID = s.nextID
	course.CreatedAt = time.Now().UTC()
	s.nextID++
	copied := *course
	s.courses[course.ID] = &copied
	s.writes++
	return nil
}

func (s *MemoryCourses) get(id uint) (*models.Course, bool) {
	course, ok := s.courses[id]
	return course, ok
}

func (s *MemoryCourses) ByID(_ context.Context, id uint) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	copied := *course
	copied.TeacherEmail = s.email(copied.TeacherID)
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == id {
			copied.EnrollmentCount++
		}
	}
	return &copied, nil
}

func (s *MemoryCourses) Update(_ context.Context, id uint, update models.CourseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.get(id)
	if !ok {
		return ErrNotFound
	}
	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.Level != nil {
		course.Level = *update.Level
	}
	if update.Category != nil {
		course.Category = *update.Category
	}
	s.writes++
	return nil
}

func (s *MemoryCourses) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.get(id); !ok {
		return ErrNotFound
	}
	delete(s.courses, id)
	s.writes++
	return nil
}

func (s *MemoryCourses) List(_ context.Context, opts ListCoursesOptions) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []models.Course
	for id := uint(1); id < s.nextID; id++ {
		course, ok := s.courses[id]
		if !ok {
			continue
		}
		if opts.Level != "" && course.Level != opts.Level {
			continue
		}
		if opts.Category != "" && course.Category != opts.Category {
			continue
		}
		if opts.Search != "" {
			needle := strings.ToLower(opts.Search)
			if !strings.Contains(strings.ToLower(course.Title), needle) &&
				!strings.Contains(strings.ToLower(course.Description), needle) {
				continue
			}
		}
		copied := *course
		copied.TeacherEmail = s.email(copied.TeacherID)
		for _, enrollment := range s.enrollments {
			if enrollment.CourseID == id {
				copied.EnrollmentCount++
			}
		}
		courses = append(courses, copied)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if opts.Offset >= len(courses) {
		return nil, nil
	}
	courses = courses[opts.Offset:]
	if len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

func (s *MemoryCourses) Enroll(_ context.Context, courseID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID && enrollment.UserID == userID {
			return ErrDuplicate
		}
	}
	s.enrollments = append(s.enrollments, &models.Enrollment{
		CourseID: courseID,
		UserID:   userID,
		Progress: 0,
	})
	s.writes++
	return nil
}

func (s *MemoryCourses) UpdateProgress(_ context.Context, courseID, userID uint, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID && enrollment.UserID == userID {
			enrollment.Progress = progress
			s.writes++
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryCourses) Enrollments(_ context.Context, courseID uint) ([]models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID != courseID {
			continue
		}
		copied := *enrollment
		copied.Email = s.email(copied.UserID)
		result = append(result, copied)
	}
	return result, nil
}

type MemoryConversations struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	clock    time.Time
	writes   int
}

func NewMemoryConversations() *MemoryConversations {
	return &MemoryConversations{clock: time.Now().UTC()}
}

func (s *MemoryConversations) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Messages returns newest first, matching the document store's native order.
func (s *MemoryConversations) Messages(_ context.Context, courseID uint, limit int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.ChatMessage
	for i := len(s.messages) - 1; i >= 0 && len(result) < limit; i-- {
		if s.messages[i].CourseID == courseID {
			result = append(result, s.messages[i])
		}
	}
	return result, nil
}

func (s *MemoryConversations) Append(_ context.Context, message *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = primitive.NewObjectID()
	// Strictly increasing timestamps keep the order total even when two
	// appends land in the same wall-clock instant.
	s.clock = s.clock.Add(time.Millisecond)
	message.Timestamp = s.clock
	s.messages = append(s.messages, *message)
	s.writes++
	return nil
}

func (s *MemoryConversations) Message(_ context.Context, courseID uint, messageID string) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, message := range s.messages {
		if message.CourseID == courseID && message.ID.Hex() == messageID {
			copied := message
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryConversations) Delete(_ context.Context, courseID uint, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, message := range s.messages {
		if message.CourseID == courseID && message.ID.Hex() == messageID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.writes++
			return nil
		}
	}
	return ErrNotFound
}
