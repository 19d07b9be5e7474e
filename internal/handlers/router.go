package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/coursehub/elearning-service/internal/auth"
	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/services"
	"github.com/coursehub/elearning-service/internal/storage"
	"github.com/coursehub/elearning-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	userHandler       *UserHandler
	courseHandler     *CourseHandler
	contentHandler    *ContentHandler
	enrollmentHandler *EnrollmentHandler
	categoryHandler   *CategoryHandler
	authMiddleware    *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	issuer *auth.TokenIssuer,
	mediaStore storage.MediaStore,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), serviceManager.Instructor(), mediaStore, logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), serviceManager.Report(), mediaStore, logger),
		contentHandler:    NewContentHandler(serviceManager.Content(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		categoryHandler:   NewCategoryHandler(serviceManager.Category(), logger),
		authMiddleware:    NewJWTAuthMiddleware(issuer),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
		}

		// Course catalog is publicly readable; user identity is
		// attached when a token is present so can_edit resolves.
		courses := v1.Group("/courses")
		courses.Use(hm.authMiddleware.OptionalAuthMiddleware())
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
		}

		categoriesPublic := v1.Group("/categories")
		{
			categoriesPublic.GET("", hm.categoryHandler.ListCategories)
		}

		// Authenticated routes
		secured := v1.Group("")
		secured.Use(hm.authMiddleware.AuthMiddleware())
		{
			secured.GET("/auth/me", hm.userHandler.GetProfile)

			// Profile
			users := secured.Group("/users")
			{
				users.GET("/me", hm.userHandler.GetProfile)
				users.PUT("/me", hm.userHandler.UpdateProfile)
				users.POST("/me/avatar", hm.userHandler.UploadAvatar)
			}

			// Role upgrade is self-service and student-only.
			secured.POST("/instructors/apply", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.userHandler.ApplyInstructor)

			// Course management - Instructors only
			manage := secured.Group("/courses")
			{
				manage.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.CreateCourse)
				manage.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.UpdateCourse)
				manage.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.DeleteCourse)
				manage.POST("/:id/image", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.UploadCourseImage)
				manage.GET("/:id/stats", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.GetCourseStats)
				manage.GET("/:id/roster", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.GetRoster)
				manage.GET("/:id/roster/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.ExportRoster)

				// Contents - enrolled students or the owner
				manage.GET("/:id/contents", hm.contentHandler.ListCourseContents)
			}

			secured.GET("/instructors/me/courses", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.courseHandler.ListMyCourses)

			// Content management - Instructors only
			contents := secured.Group("/contents")
			{
				contents.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.contentHandler.CreateContent)
				contents.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.contentHandler.DeleteContent)
			}

			// Enrollment ledger
			enrollments := secured.Group("/enrollments")
			{
				enrollments.POST("", hm.enrollmentHandler.Enroll)
				enrollments.GET("/me", hm.enrollmentHandler.ListMyEnrollments)
				enrollments.PUT("/progress", hm.enrollmentHandler.UpdateProgress)
			}

			// Category management - Instructors only
			secured.POST("/categories", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor), hm.categoryHandler.CreateCategory)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "elearning-service",
		})
	})
}
