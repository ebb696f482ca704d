package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	sessions        map[int64]*Session
	participateErr  error
	unparticipErr   error
	participations  [][2]int64
	unparticipation [][2]int64
}

func (s *stubService) FindAll(_ context.Context) ([]*Session, error) {
	all := []*Session{}
	for _, v := range s.sessions {
		all = append(all, v)
	}
	return all, nil
}

func (s *stubService) GetByID(_ context.Context, id int64) (*Session, error) {
	v, ok := s.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return v, nil
}

func (s *stubService) Create(_ context.Context, dto *Dto) (*Session, error) {
	created := dto.ToSession()
	created.ID = 1
	return created, nil
}

func (s *stubService) Update(_ context.Context, id int64, dto *Dto) (*Session, error) {
	updated := dto.ToSession()
	updated.ID = id
	return updated, nil
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	if _, ok := s.sessions[id]; !ok {
		return models.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *stubService) Participate(_ context.Context, sessionID, userID int64) error {
	if s.participateErr != nil {
		return s.participateErr
	}
	s.participations = append(s.participations, [2]int64{sessionID, userID})
	return nil
}

func (s *stubService) Unparticipate(_ context.Context, sessionID, userID int64) error {
	if s.unparticipErr != nil {
		return s.unparticipErr
	}
	s.unparticipation = append(s.unparticipation, [2]int64{sessionID, userID})
	return nil
}

func handlerFixture(stub *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Configuration{App: config.Application{Timeout: 5}}
	h := NewHandler(cfg, stub)

	router := gin.New()
	router.GET("/api/session/:id", h.GetSession)
	router.POST("/api/session", h.CreateSession)
	router.DELETE("/api/session/:id", h.DeleteSession)
	router.POST("/api/session/:id/participate/:userId", h.Participate)
	router.DELETE("/api/session/:id/participate/:userId", h.Unparticipate)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestGetSessionByID(t *testing.T) {
	stub := &stubService{sessions: map[int64]*Session{
		1: {ID: 1, Name: "Morning Yoga", Date: time.Now(), Users: []int64{}},
	}}
	router := handlerFixture(stub)

	w := perform(router, "GET", "/api/session/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Morning Yoga"`)
}

func TestGetSessionNotFound(t *testing.T) {
	router := handlerFixture(&stubService{sessions: map[int64]*Session{}})

	w := perform(router, "GET", "/api/session/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSessionNonNumericID(t *testing.T) {
	router := handlerFixture(&stubService{sessions: map[int64]*Session{}})

	w := perform(router, "GET", "/api/session/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSessionValidation(t *testing.T) {
	router := handlerFixture(&stubService{sessions: map[int64]*Session{}})

	// Missing required name and teacher_id.
	w := perform(router, "POST", "/api/session", `{"description":"d","date":"2026-01-10T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, "POST", "/api/session",
		`{"name":"Morning Yoga","description":"Beginner class","date":"2026-01-10T10:00:00Z","teacher_id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Morning Yoga"`)
}

func TestParticipateRoutes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		path       string
		wantStatus int
	}{
		{"ok", nil, "/api/session/1/participate/1", http.StatusOK},
		{"session missing", models.ErrSessionNotFound, "/api/session/999/participate/1", http.StatusNotFound},
		{"user missing", models.ErrUserNotFound, "/api/session/1/participate/999", http.StatusNotFound},
		{"already participating", models.ErrAlreadyParticipating, "/api/session/1/participate/1", http.StatusBadRequest},
		{"non-numeric session id", nil, "/api/session/abc/participate/1", http.StatusBadRequest},
		{"non-numeric user id", nil, "/api/session/1/participate/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := handlerFixture(&stubService{participateErr: tt.err})
			w := perform(router, "POST", tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUnparticipateRoutes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		path       string
		wantStatus int
	}{
		{"ok", nil, "/api/session/1/participate/1", http.StatusOK},
		{"session missing", models.ErrSessionNotFound, "/api/session/999/participate/1", http.StatusNotFound},
		{"not participating", models.ErrNotParticipating, "/api/session/1/participate/1", http.StatusBadRequest},
		{"non-numeric user id", nil, "/api/session/1/participate/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := handlerFixture(&stubService{unparticipErr: tt.err})
			w := perform(router, "DELETE", tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDeleteSession(t *testing.T) {
	stub := &stubService{sessions: map[int64]*Session{1: {ID: 1}}}
	router := handlerFixture(stub)

	w := perform(router, "DELETE", "/api/session/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(router, "DELETE", "/api/session/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
