package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/coursehub/elearning-service/internal/auth"
	"github.com/coursehub/elearning-service/internal/events"
	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
	"github.com/coursehub/elearning-service/internal/repositories/postgres"
	"github.com/coursehub/elearning-service/internal/validator"
)

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	issuer    *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.CourseContent{},
		&models.Enrollment{},
		&models.InstructorApplication{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	return &testEnv{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		publisher: events.NewMockEventPublisher(logger),
		logger:    logger,
		validator: validator.New(),
		issuer:    auth.NewTokenIssuer("test-secret-0123456789abcdef", "elearning-service", time.Hour),
	}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("S3curePassw0rd")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		Username:     email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := e.repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T, instructorID uint, title string) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        title,
		Price:        49.99,
		InstructorID: instructorID,
	}
	if err := e.repo.Course().Create(context.Background(), course); err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	return course
}
