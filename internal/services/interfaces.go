package services

import (
	"context"
	"io"

	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
	"github.com/coursehub/elearning-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request payloads are validated with struct tags in the validator
// package.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type UpdateProfileRequest = validator.UpdateProfileRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type CreateContentRequest = validator.ContentCreateRequest
type EnrollRequest = validator.EnrollRequest
type ProgressUpdateRequest = validator.ProgressUpdateRequest
type InstructorApplyRequest = validator.InstructorApplyRequest
type CreateCategoryRequest = validator.CategoryCreateRequest

// AuthResponse is returned on successful registration and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type CourseResponse struct {
	*models.Course
	CanEdit  bool `json:"can_edit"`
	Enrolled bool `json:"enrolled,omitempty"`
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
}

type CourseListFilters struct {
	InstructorID *uint
	CategoryID   *uint
	Query        string
	MinPrice     *float64
	MaxPrice     *float64
	Page         int
	Size         int
	SortBy       string
	SortOrder    string
}

type CourseStatsResponse struct {
	CourseID        uint    `json:"course_id"`
	EnrollmentCount int64   `json:"enrollment_count"`
	AverageProgress float64 `json:"average_progress"`
	ContentCount    int64   `json:"content_count"`
}

// ===== SERVICE INTERFACES =====

// AuthService issues tokens and manages credentials.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, instructorID uint) (*CourseResponse, error)
	GetByID(ctx context.Context, id uint, userID uint) (*CourseResponse, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID uint) (*CourseResponse, error)
	UpdateImage(ctx context.Context, id uint, imageURL string, userID uint) error
	Delete(ctx context.Context, id uint, userID uint) error
	List(ctx context.Context, filters CourseListFilters, userID uint) (*CourseListResponse, error)
	ListByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error)
	GetStats(ctx context.Context, id uint, userID uint) (*CourseStatsResponse, error)
}

type ContentService interface {
	Create(ctx context.Context, req *CreateContentRequest, userID uint) (*models.CourseContent, error)
	ListByCourse(ctx context.Context, courseID uint, userID uint) ([]*models.CourseContent, error)
	Delete(ctx context.Context, id uint, userID uint) error
}

// EnrollmentService maintains the ledger of student/course pairs.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID uint, req *EnrollRequest) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.EnrollmentView, error)
	UpdateProgress(ctx context.Context, userID uint, req *ProgressUpdateRequest) (*models.Enrollment, error)
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
}

type InstructorService interface {
	Apply(ctx context.Context, userID uint, req *InstructorApplyRequest) (*models.User, error)
}

type CategoryService interface {
	Create(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// ReportService produces instructor-facing exports.
type ReportService interface {
	// ExportRoster writes an xlsx roster of a course's students.
	ExportRoster(ctx context.Context, courseID uint, userID uint, w io.Writer) error
	GetRoster(ctx context.Context, courseID uint, userID uint) ([]*repositories.RosterRow, error)
}

// ServiceManager wires up and exposes all services.
type ServiceManager interface {
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error

	Auth() AuthService
	User() UserService
	Course() CourseService
	Content() ContentService
	Enrollment() EnrollmentService
	Instructor() InstructorService
	Category() CategoryService
	Report() ReportService
}
