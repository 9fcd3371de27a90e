package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "stokercloud_gateway"
	"stokercloud_gateway/internal/events"
	"stokercloud_gateway/internal/service"
)

// ---- Service mocks ----

type mockAuth struct {
	genToken string
	genErr   error
	parseErr error

	lastAccessKey  string
	lastParseToken string
}

func (m *mockAuth) GenerateToken(accessKey string) (string, error) {
	m.lastAccessKey = accessKey
	return m.genToken, m.genErr
}

func (m *mockAuth) ParseToken(token string) error {
	m.lastParseToken = token
	return m.parseErr
}

type mockMonitoring struct {
	snapshot models.ControllerSnapshot
	info     models.RefreshInfo
	ok       bool
}

func (m *mockMonitoring) Snapshot() (models.ControllerSnapshot, models.RefreshInfo, bool) {
	return m.snapshot, m.info, m.ok
}

type mockEventLog struct {
	batch models.EventBatch
	info  models.RefreshInfo
	ok    bool
}

func (m *mockEventLog) Latest() (models.EventBatch, models.RefreshInfo, bool) {
	return m.batch, m.info, m.ok
}

// ---- Test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, events.DefaultByteBudget)
	return h.InitRoutes()
}

func newTestRouterWithBudget(s *service.Service, budget int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, budget)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}
