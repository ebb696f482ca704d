package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"classbook-svc/src/clients"
	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/middleware"
	"classbook-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetUser(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type handler struct {
	config    *config.Configuration
	service   Service
	publisher clients.Publisher
}

func NewHandler(cfg *config.Configuration, service Service, publisher clients.Publisher) Handler {
	return &handler{
		config:    cfg,
		service:   service,
		publisher: publisher,
	}
}

func (h *handler) GetUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	found, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to get user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, found.ToDto())
}

// DeleteUser removes the caller's own account. Deleting anyone else's
// account is refused with 401; this mirrors the historical API contract,
// which never used 403 here.
func (h *handler) DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	found, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to load user for deletion")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	principal, ok := middleware.Principal(c)
	if !ok || principal.Email != found.Email {
		logrus.WithFields(logrus.Fields{
			"target_user_id": id,
		}).Warn("Refused account deletion for non-owner")
		middleware.AbortUnauthorized(c, nil)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := h.publisher.Publish(models.ActivityMessage{
		UserID:      id,
		Email:       found.Email,
		ServiceName: models.ServiceUser,
		Action:      models.ActionUserDeleted,
	}); err != nil {
		logrus.WithError(err).Warn("Failed to publish user deletion event")
	}

	c.Status(http.StatusOK)
}
