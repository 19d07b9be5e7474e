package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/elearning-service/internal/services"
	"github.com/coursehub/elearning-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

// Enroll adds the authenticated user to a course. The enrolling
// identity always comes from the token, never from the payload.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Enrolled successfully",
		Data:    enrollment,
	})
}

// ListMyEnrollments returns the authenticated user's enrolled
// courses, most recent first.
func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	views, err := h.enrollmentService.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: views})
}

// UpdateProgress records course completion progress for the caller.
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	var req services.ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.UpdateProgress(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Progress updated successfully",
		Data:    enrollment,
	})
}
