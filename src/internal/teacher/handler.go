package teacher

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
	GetAllTeachers(c *gin.Context)
	GetTeacher(c *gin.Context)
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

func (h *handler) GetAllTeachers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	teachers, err := h.service.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get teachers")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, teachers)
}

func (h *handler) GetTeacher(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	found, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrTeacherNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logrus.WithError(err).WithField("teacher_id", id).Error("Failed to get teacher")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, found)
}
