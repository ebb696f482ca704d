package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrFullAuthenticationRequired is the message rendered when an
// unauthenticated request reaches a protected route.
var ErrFullAuthenticationRequired = errors.New("Full authentication is required to access this resource")

type unauthorizedBody struct {
	Status  int     `json:"status"`
	Error   string  `json:"error"`
	Message *string `json:"message"`
	Path    string  `json:"path"`
}

// AbortUnauthorized writes the canonical 401 body and stops the chain.
// A nil err renders message as JSON null; an empty request path renders
// as "".
func AbortUnauthorized(c *gin.Context, err error) {
	var message *string
	if err != nil {
		m := err.Error()
		message = &m
	}

	path := ""
	if c.Request != nil && c.Request.URL != nil {
		path = c.Request.URL.Path
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody{
		Status:  http.StatusUnauthorized,
		Error:   "Unauthorized",
		Message: message,
		Path:    path,
	})
}
