package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/pkg/response"
)

// UserHandler handles registration, login, password flows and the
// admin-facing user management endpoints
type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// Register handles user registration
// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrUserTaken) {
			response.Conflict(c, "user already registered")
			return
		}
		response.InternalError(c, "failed to register user")
		return
	}

	response.Created(c, newAuthResponse(user, token))
}

// Login handles user login
// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.InternalError(c, "failed to login")
		return
	}

	response.OK(c, newAuthResponse(user, token))
}

// ForgotPassword starts the password reset flow
// POST /api/users/forgotpassword
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrMailDispatch) {
			response.InternalError(c, "failed to send email")
			return
		}
		response.InternalError(c, "failed to start password reset")
		return
	}

	// Uniform response whether or not the account exists
	response.Message(c, "email sent if the address is registered")
}

// ResetPassword consumes a reset token
// PUT /api/users/resetpassword
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			response.BadRequest(c, "reset token is invalid or has expired")
			return
		}
		response.InternalError(c, "failed to reset password")
		return
	}

	response.Message(c, "password changed successfully")
}

// UpdatePassword changes the caller's own password
// PUT /api/users/updatepassword
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.UpdatePassword(user.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.Unauthorized(c, "current password is incorrect")
			return
		}
		response.InternalError(c, "failed to update password")
		return
	}

	response.Message(c, "password updated successfully")
}

// List returns all users, password-stripped
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		response.InternalError(c, "failed to list users")
		return
	}

	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = newUserDTO(&users[i])
	}
	response.OK(c, dtos)
}

// Delete removes a user
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	caller := middleware.CurrentUser(c)
	if err := h.userService.Delete(caller.ID, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, service.ErrCannotDeleteSuperUser):
			response.BadRequest(c, "the superadmin account cannot be deleted")
		case errors.Is(err, service.ErrCannotDeleteSelf):
			response.BadRequest(c, "you cannot delete your own account")
		default:
			response.InternalError(c, "failed to delete user")
		}
		return
	}

	response.Message(c, "user deleted successfully")
}

// UpdateRole changes a user's role
// PUT /api/users/:id
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateRole(id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, "the selected role is not valid")
		case errors.Is(err, repository.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			response.InternalError(c, "failed to update role")
		}
		return
	}

	response.OK(c, newUserDTO(user))
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/forgotpassword", h.ForgotPassword)
		users.PUT("/resetpassword", h.ResetPassword)
		users.PUT("/updatepassword", protect, h.UpdatePassword)

		users.GET("", protect, middleware.RequireAdmin(), h.List)
		users.DELETE("/:id", protect, middleware.RequireAdmin(), h.Delete)
		users.PUT("/:id", protect, middleware.RequireSuperAdmin(), h.UpdateRole)
	}
}

// parseIDParam parses the numeric :id path parameter
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
