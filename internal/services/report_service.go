package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// GetRoster returns the students of a course to its instructor.
func (s *reportService) GetRoster(ctx context.Context, courseID uint, userID uint) ([]*repositories.RosterRow, error) {
	if err := s.checkOwnership(ctx, courseID, userID); err != nil {
		return nil, err
	}

	rows, err := s.repo.Enrollment().ListRoster(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return rows, nil
}

// ExportRoster writes the roster as an xlsx workbook.
func (s *reportService) ExportRoster(ctx context.Context, courseID uint, userID uint, w io.Writer) error {
	rows, err := s.GetRoster(ctx, courseID, userID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Student ID", "Username", "Email", "Enrolled At", "Progress (%)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for r, row := range rows {
		values := []interface{}{
			row.UserID,
			row.Username,
			row.Email,
			row.EnrolledAt.Format("2006-01-02 15:04:05"),
			row.Progress,
		}
		for c, value := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r+1, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "D", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Roster exported", "course_id", courseID, "rows", len(rows))
	return nil
}

func (s *reportService) checkOwnership(ctx context.Context, courseID, userID uint) error {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}
	if course.InstructorID != userID {
		return NewPermissionError(userID, courseID, "course", "export_roster", "not the course instructor")
	}
	return nil
}
