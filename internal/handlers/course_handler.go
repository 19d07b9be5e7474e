package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	uuid2 "github.com/google/uuid"

	"github.com/coursehub/elearning-service/internal/services"
	"github.com/coursehub/elearning-service/internal/storage"
	"github.com/coursehub/elearning-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	reportService services.ReportService
	mediaStore    storage.MediaStore
}

func NewCourseHandler(courseService services.CourseService, reportService services.ReportService, mediaStore storage.MediaStore, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
		reportService: reportService,
		mediaStore:    mediaStore,
	}
}

// CreateCourse creates a course owned by the authenticated instructor.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.courseService.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Course created successfully",
		Data:    resp,
	})
}

// GetCourse returns a course; anonymous access is allowed.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.courseService.GetByID(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// ListCourses returns the catalog with optional filters.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := services.CourseListFilters{
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filters.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("size", "20")); err == nil {
		filters.Size = size
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filters.CategoryID = &categoryID
		}
	}
	if raw := c.Query("instructor_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			instructorID := uint(id)
			filters.InstructorID = &instructorID
		}
	}
	if raw := c.Query("min_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &price
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &price
		}
	}

	resp, err := h.courseService.List(c.Request.Context(), filters, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMyCourses returns the authenticated instructor's courses.
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	courses, err := h.courseService.ListByInstructor(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: courses})
}

// UpdateCourse applies a partial update; only the owner may call it.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.courseService.Update(c.Request.Context(), id, &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Course updated successfully",
		Data:    resp,
	})
}

// DeleteCourse soft-deletes the course; only the owner may call it.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Course deleted successfully",
	})
}

// UploadCourseImage stores a cover image for an owned course.
func (h *CourseHandler) UploadCourseImage(c *gin.Context) {
	if h.mediaStore == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Media storage is not configured",
		})
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	// Resolve ownership before accepting the upload.
	course, err := h.courseService.GetByID(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !course.CanEdit {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file in request",
		})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File too large",
		})
		return
	}

	key := storage.ObjectKey("courses", uuid2.New().String(), header.Filename)
	url, err := h.mediaStore.Put(c.Request.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.LogError(c, err, "Course image upload failed", "course_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to store file",
		})
		return
	}

	if err := h.courseService.UpdateImage(c.Request.Context(), id, url, currentUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Course image updated successfully",
		Data:    gin.H{"image_url": url},
	})
}

// GetCourseStats returns enrollment statistics to the owner.
func (h *CourseHandler) GetCourseStats(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.courseService.GetStats(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: stats})
}

// GetRoster returns the enrolled students of an owned course.
func (h *CourseHandler) GetRoster(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.reportService.GetRoster(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: rows})
}

// ExportRoster streams the roster as an xlsx download.
func (h *CourseHandler) ExportRoster(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	// Buffer the workbook so a late error can still produce a JSON
	// response instead of a truncated download.
	var buf bytes.Buffer
	if err := h.reportService.ExportRoster(c.Request.Context(), id, currentUserID(c), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=course_%d_roster.xlsx", id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
