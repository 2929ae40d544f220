package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/app/services"
	"github.com/yogastudio/yoga-app/internal/middleware"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/helpers"
)

// UserController handles user account requests
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// FindByID returns a user
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDto
// @Failure 400 {object} dto.ErrorResponse "User ID is not a number"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [get]
func (c *UserController) FindByID(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.FindByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if user == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrUserNotFound)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserDto(user))
}

// Delete removes the caller's own account
// @Summary Delete a user
// @Description Only the account owner (token subject equal to the user's email) may delete it
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "User ID is not a number"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated, or not the account owner"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	if err := c.userService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
