package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"langbridge/backend/models"
)

type GormCourses struct {
	DB *gorm.DB
}

func NewGormCourses(db *gorm.DB) *GormCourses {
	return &GormCourses{DB: db}
}

func (s *GormCourses) Create(ctx context.Context, course *models.Course) error {
	return s.DB.WithContext(ctx).Create(course).Error
}

func (s *GormCourses) ByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := s.DB.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.decorate(ctx, []*models.Course{&course}); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *GormCourses) Update(ctx context.Context, id uint, update models.CourseUpdate) error {
	var course models.Course
	if err := s.DB.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
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

	return s.DB.WithContext(ctx).Save(&course).Error
}

func (s *GormCourses) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormCourses) List(ctx context.Context, opts ListCoursesOptions) ([]models.Course, error) {
	query := s.DB.WithContext(ctx).Model(&models.Course{})
	if opts.Level != "" {
		query = query.Where("level = ?", opts.Level)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	var courses []models.Course
	if err := query.Limit(limit).Offset(opts.Offset).Find(&courses).Error; err != nil {
		return nil, err
	}

	refs := make([]*models.Course, len(courses))
	for i := range courses {
		refs[i] = &courses[i]
	}
	if err := s.decorate(ctx, refs); err != nil {
		return nil, err
	}
	return courses, nil
}

// decorate fills the read-model fields (teacher email, enrollment count)
// with two batched queries instead of a query per course.
func (s *GormCourses) decorate(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	teacherIDs := make([]uint, 0, len(courses))
	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		teacherIDs = append(teacherIDs, course.TeacherID)
		courseIDs = append(courseIDs, course.ID)
	}

	var teachers []models.User
	if err := s.DB.WithContext(ctx).Where("id IN ?", teacherIDs).Find(&teachers).Error; err != nil {
		return err
	}
	emails := make(map[uint]string, len(teachers))
	for _, teacher := range teachers {
		emails[teacher.ID] = teacher.Email
	}

	type courseCount struct {
		CourseID uint
		Count    int64
	}
	var counts []courseCount
	err := s.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) AS count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}
	byCourse := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byCourse[c.CourseID] = c.Count
	}

	for _, course := range courses {
		course.TeacherEmail = emails[course.TeacherID]
		course.EnrollmentCount = byCourse[course.ID]
	}
	return nil
}

func (s *GormCourses) Enroll(ctx context.Context, courseID, userID uint) error {
	enrollment := models.Enrollment{CourseID: courseID, UserID: userID, Progress: 0}
	if err := s.DB.WithContext(ctx).Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *GormCourses) UpdateProgress(ctx context.Context, courseID, userID uint, progress int) error {
	result := s.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Update("progress", progress)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormCourses) Enrollments(ctx context.Context, courseID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.DB.WithContext(ctx).Where("course_id = ?", courseID).Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return enrollments, nil
	}

	userIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		userIDs = append(userIDs, enrollment.UserID)
	}
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	emails := make(map[uint]string, len(users))
	for _, user := range users {
		emails[user.ID] = user.Email
	}
	for i := range enrollments {
		enrollments[i].Email = emails[enrollments[i].UserID]
	}
	return enrollments, nil
}
