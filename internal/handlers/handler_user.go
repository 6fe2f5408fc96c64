package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles the profile of the authenticated user.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("/me", h.createProfile)
		users.GET("/me", h.getProfile)
		users.PATCH("/me", h.updateProfile)
	}
}

// createProfile godoc
// @Summary Create the caller's profile
// @Description Stores email and name for the authenticated subject
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "Profile"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Profile already exists"
// @Failure 500 {object} map[string]string "Failed to create profile"
// @Security BearerAuth
// @Router /users/me [post]
func (h *userHandler) createProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if !bindJSON(c, logger, &req, "CreateUser") {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create profile")
		return
	}

	logger.Info("Profile created")
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to retrieve profile"
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to update profile"
// @Security BearerAuth
// @Router /users/me [patch]
func (h *userHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, logger, &req, "UpdateUser") {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update profile")
		return
	}

	logger.Info("Profile updated", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
