package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
	mcore "github.com/amirhossein-jamali/sms-ledger/mocks/port/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	logger := mcore.NewMockLogger(t)
	logger.On("Error", "Panic recovered in API request", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["path"] == "/boom" && fields["request_id"] == "req-42"
	})).Once()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/boom", func(*gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errs.CodeInternalServer, resp.Code)
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestLogger_LogsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		wantLevel  string
		wantStatus string
	}{
		{"success", http.StatusOK, "Info", "Success"},
		{"client error", http.StatusNotFound, "Info", "Client Error"},
		{"server error", http.StatusServiceUnavailable, "Warn", "Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger := mcore.NewMockLogger(t)
			logger.On(tc.wantLevel, "Request processed", mock.MatchedBy(func(fields map[string]any) bool {
				return fields["method"] == http.MethodGet &&
					fields["route"] == "/api/v1/things/:id" &&
					fields["status"] == tc.status &&
					fields["status_text"] == tc.wantStatus
			})).Once()

			router := gin.New()
			router.Use(Logger(logger))
			router.GET("/api/v1/things/:id", func(c *gin.Context) { c.Status(tc.status) })

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/things/7", nil))

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	testCases := []struct {
		name        string
		origins     []string
		production  bool
		origin      string
		wantAllowed string
	}{
		{"development allows anyone", nil, false, "http://localhost:5173", "*"},
		{"production allowlist hit", []string{"https://ledger.example.com"}, true, "https://ledger.example.com", "https://ledger.example.com"},
		{"production allowlist miss", []string{"https://ledger.example.com"}, true, "https://evil.example.com", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tc.origins, tc.production))
			router.GET("/api/v1/balance", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestTracing_PropagatesSpanContext(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")

	var seen trace.Span
	router := gin.New()
	router.Use(Tracing(tracer))
	router.GET("/api/v1/balance", func(c *gin.Context) {
		seen = trace.SpanFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, seen)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Informational", statusText(101))
	assert.Equal(t, "Redirect", statusText(http.StatusFound))
	assert.Equal(t, "Server Error", statusText(http.StatusInternalServerError))
}
