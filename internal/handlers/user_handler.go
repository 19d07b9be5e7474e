package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	uuid2 "github.com/google/uuid"

	"github.com/coursehub/elearning-service/internal/services"
	"github.com/coursehub/elearning-service/internal/storage"
	"github.com/coursehub/elearning-service/internal/utils"
)

// Media uploads are capped to keep memory bounded during multipart
// parsing.
const maxUploadSize = 10 << 20

type UserHandler struct {
	BaseHandler
	userService       services.UserService
	instructorService services.InstructorService
	mediaStore        storage.MediaStore
}

func NewUserHandler(userService services.UserService, instructorService services.InstructorService, mediaStore storage.MediaStore, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:       NewBaseHandler(logger),
		userService:       userService,
		instructorService: instructorService,
		mediaStore:        mediaStore,
	}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: user})
}

// UpdateProfile updates username or email of the authenticated user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Profile updated successfully",
		Data:    user,
	})
}

// UploadAvatar stores a new avatar image and links it to the profile.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	if h.mediaStore == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Media storage is not configured",
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

	key := storage.ObjectKey("avatars", uuid2.New().String(), header.Filename)
	url, err := h.mediaStore.Put(c.Request.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.LogError(c, err, "Avatar upload failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to store file",
		})
		return
	}

	if err := h.userService.UpdateAvatar(c.Request.Context(), currentUserID(c), url); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Avatar updated successfully",
		Data:    gin.H{"avatar_url": url},
	})
}

// ApplyInstructor upgrades the authenticated student to instructor.
func (h *UserHandler) ApplyInstructor(c *gin.Context) {
	var req services.InstructorApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.instructorService.Apply(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "You are now an instructor",
		Data:    user,
	})
}
