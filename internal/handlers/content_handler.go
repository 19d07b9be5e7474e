package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/elearning-service/internal/services"
	"github.com/coursehub/elearning-service/internal/utils"
)

type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
	}
}

// CreateContent adds material to a course owned by the caller.
func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req services.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	content, err := h.contentService.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Content created successfully",
		Data:    content,
	})
}

// ListCourseContents returns a course's materials to enrolled
// students and the owner.
func (h *ContentHandler) ListCourseContents(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	contents, err := h.contentService.ListByCourse(c.Request.Context(), courseID, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: contents})
}

// DeleteContent removes a material item; ownership resolves through
// the parent course.
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Content deleted successfully",
	})
}
