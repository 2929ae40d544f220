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

// TeacherController exposes teachers read-only
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
	}
}

// FindAll lists every teacher
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TeacherDto
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /teacher [get]
func (c *TeacherController) FindAll(ctx *gin.Context) {
	teachers, err := c.teacherService.FindAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewTeacherDtos(teachers))
}

// FindByID returns one teacher
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.TeacherDto
// @Failure 400 {object} dto.ErrorResponse "Teacher ID is not a number"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teacher/{id} [get]
func (c *TeacherController) FindByID(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	teacher, err := c.teacherService.FindByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if teacher == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTeacherNotFound)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewTeacherDto(teacher))
}
