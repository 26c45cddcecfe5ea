package handlers

import (
	"context"
	"net/http"
	"time"

	"deskclock/internal/models"
	"deskclock/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockOperator accepts the token "valid" unless authorizeErr is set.
type mockOperator struct {
	locked       bool
	token        string
	expires      time.Time
	issueErr     error
	authorizeErr error

	lastPassword string
	lastToken    string
	lastScope    string
}

func (m *mockOperator) Locked() bool { return m.locked }

func (m *mockOperator) IssueToken(password string) (string, time.Time, error) {
	m.lastPassword = password
	if m.issueErr != nil {
		return "", time.Time{}, m.issueErr
	}
	return m.token, m.expires, nil
}

func (m *mockOperator) Authorize(token, scope string) error {
	m.lastToken = token
	m.lastScope = scope
	return m.authorizeErr
}

type mockAlarm struct {
	cfg      models.AlarmConfig
	getErr   error
	setErr   error
	clearErr error

	lastSet    service.AlarmParams
	setCalls   int
	clearCalls int
}

func (m *mockAlarm) Get(ctx context.Context) (models.AlarmConfig, error) {
	return m.cfg, m.getErr
}
func (m *mockAlarm) Set(ctx context.Context, p service.AlarmParams) (models.AlarmConfig, error) {
	m.setCalls++
	m.lastSet = p
	if m.setErr != nil {
		return models.AlarmConfig{}, m.setErr
	}
	return m.cfg, nil
}
func (m *mockAlarm) Clear(ctx context.Context) error {
	m.clearCalls++
	return m.clearErr
}

type mockMonitoring struct {
	state models.ClockState
	err   error
	calls int
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.ClockState, error) {
	m.calls++
	return m.state, m.err
}

type mockEventLog struct {
	resp   []models.ClockEvent
	err    error
	calls  int
	filter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ClockEvent, error) {
	m.calls++
	m.filter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
