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

// SessionController handles yoga session requests
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// FindAll lists every session
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SessionDto
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /session [get]
func (c *SessionController) FindAll(ctx *gin.Context) {
	sessions, err := c.sessionService.FindAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSessionDtos(sessions))
}

// FindByID returns one session
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.SessionDto
// @Failure 400 {object} dto.ErrorResponse "Session ID is not a number"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /session/{id} [get]
func (c *SessionController) FindByID(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.sessionService.FindByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if session == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrSessionNotFound)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSessionDto(session))
}

// Create adds a session
// @Summary Create a session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SessionDto true "Session"
// @Success 200 {object} dto.SessionDto
// @Failure 400 {object} dto.ErrorResponse "Invalid fields, or unknown teacher or user"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /session [post]
func (c *SessionController) Create(ctx *gin.Context) {
	var req dto.SessionDto
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.Create(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSessionDto(session))
}

// Update overwrites a session, including its participant list
// @Summary Update a session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.SessionDto true "Session"
// @Success 200 {object} dto.SessionDto
// @Failure 400 {object} dto.ErrorResponse "Invalid fields, or unknown teacher or user"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /session/{id} [put]
func (c *SessionController) Update(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SessionDto
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.Update(ctx.Request.Context(), id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSessionDto(session))
}

// Delete removes a session
// @Summary Delete a session
// @Tags sessions
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Session ID is not a number"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /session/{id} [delete]
func (c *SessionController) Delete(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func parseParticipationParams(ctx *gin.Context) (sessionID, userID int64, err error) {
	if sessionID, err = helpers.ParseIDParam(ctx, "id"); err != nil {
		return 0, 0, err
	}
	if userID, err = helpers.ParseIDParam(ctx, "userId"); err != nil {
		return 0, 0, err
	}
	return sessionID, userID, nil
}

// Participate adds a user to a session
// @Summary Join a session
// @Tags sessions
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param userId path int true "User ID"
// @Success 200 "Joined"
// @Failure 400 {object} dto.ErrorResponse "Non-numeric id, or already participating"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Session or user not found"
// @Router /session/{id}/participate/{userId} [post]
func (c *SessionController) Participate(ctx *gin.Context) {
	sessionID, userID, err := parseParticipationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessionService.Participate(ctx.Request.Context(), sessionID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// Unparticipate removes a user from a session
// @Summary Leave a session
// @Tags sessions
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param userId path int true "User ID"
// @Success 200 "Left"
// @Failure 400 {object} dto.ErrorResponse "Non-numeric id, or not participating"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /session/{id}/participate/{userId} [delete]
func (c *SessionController) Unparticipate(ctx *gin.Context) {
	sessionID, userID, err := parseParticipationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessionService.Unparticipate(ctx.Request.Context(), sessionID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}
