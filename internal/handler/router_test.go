//go:build unit

package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"dorm-services/internal/handler"
	"dorm-services/internal/handler/api"
	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/handler/middleware"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/metrics"
	"dorm-services/internal/usecase/queries"
	"dorm-services/tests/common/httptest"
	commandsmock "dorm-services/tests/mock/commands"
	queriesmock "dorm-services/tests/mock/queries"
	usecasemock "dorm-services/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	engine       *gin.Engine
	metrics      *metrics.Metrics
	reservationQ *queriesmock.MockReservationQueries
	validator    *usecasemock.MockTokenValidator
}

func newRouter(t *testing.T) routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	reservationCmds := commandsmock.NewMockReservationCommands(ctrl)
	reservationQ := queriesmock.NewMockReservationQueries(ctrl)
	complaintCmds := commandsmock.NewMockComplaintCommands(ctrl)
	complaintQ := queriesmock.NewMockComplaintQueries(ctrl)
	authCmds := commandsmock.NewMockAuthCommands(ctrl)
	validator := usecasemock.NewMockTokenValidator(ctrl)

	cfg := config.NewTestConfig()
	m := metrics.New()
	engine := gin.New()
	handler.NewRouter(engine, cfg, handler.Handlers{
		Auth:        api.NewAuthHandler(authCmds, cfg),
		Reservation: api.NewReservationHandler(reservationCmds, reservationQ),
		Complaint:   api.NewComplaintHandler(complaintCmds, complaintQ),
		Admin:       api.NewAdminHandler(reservationCmds, reservationQ, complaintCmds, complaintQ),
	}, middleware.NewAuthMiddleware(validator), m)

	return routerFixture{engine: engine, metrics: m, reservationQ: reservationQ, validator: validator}
}

func TestRouter_Health(t *testing.T) {
	f := newRouter(t)

	w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_MetricsUseRouteTemplates(t *testing.T) {
	f := newRouter(t)
	f.reservationQ.EXPECT().ListSpaces(gomock.Any()).Return(queries.CatalogView{}).Times(2)

	for range 2 {
		w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/reservations/spaces", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	httptest.PerformRequest(t, f.engine, http.MethodGet, "/nope", nil, "")

	expected := `
# HELP dorm_http_requests_total HTTP requests, by route and status code.
# TYPE dorm_http_requests_total counter
dorm_http_requests_total{method="GET",route="/api/reservations/spaces",status="200"} 2
dorm_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "dorm_http_requests_total"))

	w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dorm_http_request_duration_seconds")
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	f := newRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/reservations?spaceId=ROOM_A&date=2025-03-20"},
		{http.MethodDelete, "/api/admin/reservations/0b5f3c1e-6a55-4a8e-9d43-1b0c1f1f2a10/purge"},
		{http.MethodGet, "/api/admin/maintenance"},
		{http.MethodPatch, "/api/admin/maintenance/0b5f3c1e-6a55-4a8e-9d43-1b0c1f1f2a10/status"},
		{http.MethodDelete, "/api/admin/maintenance/0b5f3c1e-6a55-4a8e-9d43-1b0c1f1f2a10"},
		{http.MethodPost, "/api/auth/logout"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := httptest.PerformRequest(t, f.engine, r.method, r.path, nil, "")
			httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, httperr.KindUnauthenticated)
		})
	}
}
