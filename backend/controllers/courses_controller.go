package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"langbridge/backend/config"
	"langbridge/backend/middleware"
	"langbridge/backend/models"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

type CoursesController struct {
	Courses stores.CourseStore
	Cfg     *config.Config
}

func NewCoursesController(courses stores.CourseStore, cfg *config.Config) *CoursesController {
	return &CoursesController{Courses: courses, Cfg: cfg}
}

// ownerOrAdmin is the ownership gate: admins always pass, everyone else must
// own the resource. Callers check existence first so a missing resource is
// reported as not-found, never as permission-denied.
func ownerOrAdmin(account *models.User, ownerID uint) bool {
	return account.Role == models.RoleAdmin || account.ID == ownerID
}

type CourseInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=A1 A2 B1 B2 C1"`
	Category    string `json:"category" validate:"required,oneof=medical engineering general"`
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, cc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Cannot parse JSON", err))
	}
	if err := validate.Struct(input); err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course data", err))
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		Level:       input.Level,
		Category:    input.Category,
		TeacherID:   account.ID,
	}
	if err := cc.Courses.Create(c.Context(), &course); err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error creating course", err))
	}

	created, err := cc.Courses.ByID(c.Context(), course.ID)
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error creating course", err))
	}
	return utils.Created(c, created)
}

func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	courses, err := cc.Courses.List(c.Context(), stores.ListCoursesOptions{
		Limit:    c.QueryInt("limit", 10),
		Offset:   c.QueryInt("offset", 0),
		Level:    c.Query("level"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error fetching courses", err))
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	course, err := cc.Courses.ByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, cc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error fetching course", err))
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, cc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	var update models.CourseUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Cannot parse JSON", err))
	}
	if err := validate.Struct(update); err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course data", err))
	}

	course, err := cc.Courses.ByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, cc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error updating course", err))
	}
	if !ownerOrAdmin(account, course.TeacherID) {
		return utils.Fail(c, cc.Cfg, utils.PermissionError("Not authorized to update this course"))
	}

	if err := cc.Courses.Update(c.Context(), uint(id), update); err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error updating course", err))
	}

	updated, err := cc.Courses.ByID(c.Context(), uint(id))
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error updating course", err))
	}
	return utils.Success(c, fiber.StatusOK, updated)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, cc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	course, err := cc.Courses.ByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, cc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error deleting course", err))
	}
	if !ownerOrAdmin(account, course.TeacherID) {
		return utils.Fail(c, cc.Cfg, utils.PermissionError("Not authorized to delete this course"))
	}

	if err := cc.Courses.Delete(c.Context(), uint(id)); err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error deleting course", err))
	}
	return utils.Message(c, fiber.StatusOK, "Course deleted successfully")
}

func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, cc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	if _, err := cc.Courses.ByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, cc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error enrolling in course", err))
	}

	if err := cc.Courses.Enroll(c.Context(), uint(id), account.ID); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return utils.Fail(c, cc.Cfg, utils.ValidationError("Already enrolled in course", nil))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error enrolling in course", err))
	}
	return utils.Message(c, fiber.StatusOK, "Successfully enrolled in course")
}

type ProgressInput struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

func (cc *CoursesController) UpdateProgress(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, cc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Cannot parse JSON", err))
	}
	if err := validate.Struct(input); err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Progress must be between 0 and 100", err))
	}

	err = cc.Courses.UpdateProgress(c.Context(), uint(id), account.ID, *input.Progress)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, cc.Cfg, utils.NotFoundError("Enrollment not found"))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error updating progress", err))
	}
	return utils.Message(c, fiber.StatusOK, "Progress updated successfully")
}

func (cc *CoursesController) Enrollments(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, cc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	course, err := cc.Courses.ByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, cc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error fetching enrollments", err))
	}
	if !ownerOrAdmin(account, course.TeacherID) {
		return utils.Fail(c, cc.Cfg, utils.PermissionError("Not authorized to view enrollments"))
	}

	enrollments, err := cc.Courses.Enrollments(c.Context(), uint(id))
	if err != nil {
		return utils.Fail(c, cc.Cfg, utils.StoreError("Error fetching enrollments", err))
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	return utils.Success(c, fiber.StatusOK, enrollments)
}
