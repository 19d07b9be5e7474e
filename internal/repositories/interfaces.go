package repositories

import "time"

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	InstructorID *uint   `json:"instructor_id"`
	CategoryID   *uint   `json:"category_id"`
	Query        string  `json:"query"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
	SortBy       string  `json:"sort_by"`    // "created_at", "title", "price"
	SortOrder    string  `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Query  string // Search query for username or email
	Role   string
	Limit  int
	Offset int
}

// ===== SHARED HELPER STRUCTS =====

// RosterRow is a row of a course's enrollment roster, used for listing
// and spreadsheet export.
type RosterRow struct {
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Progress   float64   `json:"progress"`
}

// CourseStats summarizes a course for its instructor.
type CourseStats struct {
	EnrollmentCount int64   `json:"enrollment_count"`
	AverageProgress float64 `json:"average_progress"`
	ContentCount    int64   `json:"content_count"`
}
