package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/app/services"
	"github.com/yogastudio/yoga-app/internal/middleware"
)

// AuthController handles authentication related requests
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles user login
// @Summary Log in
// @Description Verifies email and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.JWTResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 401 {object} dto.ErrorResponse "Bad credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Register handles user registration
// @Summary Register a new account
// @Description Creates a non-admin user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account information"
// @Success 200 {object} dto.MessageResponse "User registered successfully!"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields or email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Register(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: dto.MessageUserRegistered})
}
