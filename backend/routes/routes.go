package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"langbridge/backend/config"
	"langbridge/backend/controllers"
	"langbridge/backend/metrics"
	"langbridge/backend/middleware"
	"langbridge/backend/models"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

// Deps carries every capability the handlers need. Tests swap in the memory
// stores and a static verifier; nothing below reaches for globals.
type Deps struct {
	Cfg           *config.Config
	Verifier      utils.TokenVerifier
	Accounts      stores.AccountStore
	Courses       stores.CourseStore
	Conversations stores.ConversationStore
}

func SetupRoutes(app *fiber.App, deps Deps) {
	authRequired := middleware.RequireAuth(deps.Verifier, deps.Accounts, deps.Cfg)
	adminOnly := middleware.RequireRole(deps.Cfg, models.RoleAdmin)
	teacherOrAdmin := middleware.RequireRole(deps.Cfg, models.RoleTeacher, models.RoleAdmin)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return utils.Message(c, fiber.StatusOK, "ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Auth routes
	authController := controllers.NewAuthController(deps.Accounts, deps.Cfg)
	auth := app.Group("/api/auth")
	auth.Post("/signup", authController.Signup)
	auth.Get("/me", authRequired, authController.Me)
	auth.Put("/me", authRequired, authController.UpdateMe)
	auth.Get("/users", authRequired, adminOnly, authController.ListUsers)
	auth.Delete("/users/:id", authRequired, adminOnly, authController.DeleteUser)

	// Courses routes; list and detail are public
	coursesController := controllers.NewCoursesController(deps.Courses, deps.Cfg)
	courses := app.Group("/api/courses")
	courses.Post("/", authRequired, teacherOrAdmin, coursesController.CreateCourse)
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Put("/:id", authRequired, teacherOrAdmin, coursesController.UpdateCourse)
	courses.Delete("/:id", authRequired, teacherOrAdmin, coursesController.DeleteCourse)
	courses.Post("/:id/enroll", authRequired, coursesController.Enroll)
	courses.Put("/:id/progress", authRequired, coursesController.UpdateProgress)
	courses.Get("/:id/enrollments", authRequired, teacherOrAdmin, coursesController.Enrollments)

	// Chat routes
	chatController := controllers.NewChatController(deps.Courses, deps.Conversations, deps.Cfg)
	chat := app.Group("/api/chat", authRequired)
	chat.Get("/:courseId", chatController.GetMessages)
	chat.Post("/:courseId", chatController.PostMessage)
	chat.Delete("/:courseId/messages/:messageId", chatController.DeleteMessage)
}
