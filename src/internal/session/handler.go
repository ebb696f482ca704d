package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetAllSessions(c *gin.Context)
	GetSession(c *gin.Context)
	CreateSession(c *gin.Context)
	UpdateSession(c *gin.Context)
	DeleteSession(c *gin.Context)
	Participate(c *gin.Context)
	Unparticipate(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) GetAllSessions(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	sessions, err := h.service.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *handler) GetSession(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	found, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logrus.WithError(err).WithField("session_id", id).Error("Failed to get session")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *handler) CreateSession(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var dto Dto
	if err := c.ShouldBindJSON(&dto); err != nil {
		logrus.WithError(err).Debug("Invalid session payload")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := h.service.Create(ctx, &dto)
	if err != nil {
		logrus.WithError(err).Error("Failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, created)
}

func (h *handler) UpdateSession(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var dto Dto
	if err := c.ShouldBindJSON(&dto); err != nil {
		logrus.WithError(err).Debug("Invalid session payload")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := h.service.Update(ctx, id, &dto)
	if err != nil {
		logrus.WithError(err).WithField("session_id", id).Error("Failed to update session")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *handler) DeleteSession(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logrus.WithError(err).WithField("session_id", id).Error("Failed to delete session")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (h *handler) Participate(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	sessionID, userID, ok := participationIDs(c)
	if !ok {
		return
	}

	if err := h.service.Participate(ctx, sessionID, userID); err != nil {
		h.handleParticipationError(c, sessionID, userID, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *handler) Unparticipate(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	sessionID, userID, ok := participationIDs(c)
	if !ok {
		return
	}

	if err := h.service.Unparticipate(ctx, sessionID, userID); err != nil {
		h.handleParticipationError(c, sessionID, userID, err)
		return
	}

	c.Status(http.StatusOK)
}

func participationIDs(c *gin.Context) (int64, int64, bool) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return 0, 0, false
	}

	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return 0, 0, false
	}

	return sessionID, userID, true
}

func (h *handler) handleParticipationError(c *gin.Context, sessionID, userID int64, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    userID,
	}).Debug("Participation change rejected")

	switch {
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, models.ErrUserNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, models.ErrAlreadyParticipating), errors.Is(err, models.ErrNotParticipating):
		c.Status(http.StatusBadRequest)
	default:
		logrus.WithError(err).Error("Participation change failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
