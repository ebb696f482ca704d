package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"classbook-svc/src/clients"
	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/middleware"
	"classbook-svc/src/internal/models"
	"classbook-svc/src/internal/security"
	"classbook-svc/src/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Login(c *gin.Context)
	Register(c *gin.Context)
}

type handler struct {
	config      *config.Configuration
	userService user.Service
	codec       *security.TokenCodec
	publisher   clients.Publisher
}

func NewHandler(cfg *config.Configuration, userService user.Service, codec *security.TokenCodec, publisher clients.Publisher) Handler {
	return &handler{
		config:      cfg,
		userService: userService,
		codec:       codec,
		publisher:   publisher,
	}
}

func (h *handler) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Debug("Invalid login payload")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	found, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrBadCredentials) {
			logrus.WithField("email", req.Email).Debug("Login rejected")
			middleware.AbortUnauthorized(c, models.ErrBadCredentials)
			return
		}
		logrus.WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	token, err := h.codec.Generate(found.Email)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.publishActivity(found, models.ActionLogin)

	logrus.WithFields(logrus.Fields{
		"user_id": found.ID,
		"email":   found.Email,
	}).Info("User logged in")

	c.JSON(http.StatusOK, JwtResponse{
		Token:     token,
		Type:      "Bearer",
		ID:        found.ID,
		Username:  found.Email,
		FirstName: found.FirstName,
		LastName:  found.LastName,
		Admin:     found.Admin,
	})
}

func (h *handler) Register(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Debug("Invalid signup payload")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "Error: Email is already taken!"})
			return
		}
		logrus.WithError(err).Error("Registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.publishActivity(created, models.ActionRegister)

	c.JSON(http.StatusOK, MessageResponse{Message: "User registered successfully!"})
}

func (h *handler) publishActivity(u *user.User, action string) {
	err := h.publisher.Publish(models.ActivityMessage{
		UserID:      u.ID,
		Email:       u.Email,
		ServiceName: models.ServiceAuth,
		Action:      action,
	})
	if err != nil {
		logrus.WithError(err).WithField("action", action).Warn("Failed to publish auth event")
	}
}
