package validator

// RegisterRequest is the payload for creating an account. Role is not
// accepted from the client: everyone starts as a student.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,password_strength,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
}

type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,course_title"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Price       float64 `json:"price" validate:"price_range"`
	CategoryID  *uint   `json:"category_id"`
}

type CourseUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,course_title"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price" validate:"omitempty,price_range"`
	CategoryID  *uint    `json:"category_id"`
}

type ContentCreateRequest struct {
	CourseID   uint                   `json:"course_id" validate:"required"`
	Title      string                 `json:"title" validate:"required,min=1,max=200"`
	ContentURL string                 `json:"content_url" validate:"required,url,max=500"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

type ProgressUpdateRequest struct {
	CourseID uint    `json:"course_id" validate:"required"`
	Progress float64 `json:"progress" validate:"min=0,max=100"`
}

type InstructorApplyRequest struct {
	TermsAccepted bool `json:"termsAccepted"`
}

type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}
