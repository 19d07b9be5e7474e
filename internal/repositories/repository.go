package repositories

import "context"

// Repository aggregates all domain repositories behind one handle so
// services can reach every store through a single dependency.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Content() ContentRepository
	Category() CategoryRepository
	Enrollment() EnrollmentRepository
	Application() ApplicationRepository

	// WithTransaction runs fn against a transactional view of the
	// repository; fn returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
