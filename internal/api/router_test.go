package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"

	"github.com/nekogravitycat/reservation-service/internal/booking"
	healthHttp "github.com/nekogravitycat/reservation-service/internal/health/http"
)

const validBody = `{"userId":"uid-123","roomId":"rid-123","customerCount":4,"amount":1000,"checkIn":1893436200000,"checkOut":2208969000000}`

type countingService struct{ calls int }

func (s *countingService) Create(context.Context, booking.Request) error {
	s.calls++
	return nil
}

func (s *countingService) GetByID(context.Context, string) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterRoutes(t *testing.T) {
	svc := &countingService{}
	r := NewRouter(Config{BookingService: svc})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, healthHttp.PingMessage, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Successfully added.","data":null}`, w.Body.String())
	assert.Equal(t, 1, svc.calls)
}

func TestRouterCORS(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/booking", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	dev := NewRouter(Config{BookingService: &countingService{}})
	w := preflight(dev, "http://localhost:3000")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	prod := NewRouter(Config{
		IsProduction:   true,
		ProdOrigins:    []string{"https://hilltop.example.com"},
		BookingService: &countingService{},
	})
	w = preflight(prod, "https://hilltop.example.com")
	assert.Equal(t, "https://hilltop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(prod, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfigProductionWithoutOrigins(t *testing.T) {
	_, ok := corsConfig(true, nil)
	assert.False(t, ok)

	c, ok := corsConfig(false, nil)
	require.True(t, ok)
	assert.True(t, c.AllowAllOrigins)
}

func postBooking(r http.Handler, remote, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getRoot(r http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterRateLimit(t *testing.T) {
	svc := &countingService{}
	r := NewRouter(Config{
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
		BookingService: svc,
	})

	assert.Equal(t, http.StatusOK, postBooking(r, "192.0.2.1:1234", "").Code)

	w := postBooking(r, "192.0.2.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many requests.","data":null}`, w.Body.String())
	assert.Equal(t, 1, svc.calls, "rejected requests must not reach the service")

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, postBooking(r, "192.0.2.2:1234", "").Code)
}

func TestRouterRateLimitSkipsLiveness(t *testing.T) {
	r := NewRouter(Config{
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
		BookingService: &countingService{},
	})

	// Use up the bucket for this client.
	require.Equal(t, http.StatusOK, postBooking(r, "192.0.2.9:1234", "").Code)
	require.Equal(t, http.StatusTooManyRequests, postBooking(r, "192.0.2.9:1234", "").Code)

	for i := 0; i < 3; i++ {
		w := getRoot(r, "192.0.2.9:1234")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, healthHttp.PingMessage, w.Body.String())
	}
}

func TestRouterRateLimitIgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	svc := &countingService{}
	r := NewRouter(Config{
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
		BookingService: svc,
	})

	allowed := 0
	for i := 0; i < 50; i++ {
		w := postBooking(r, "192.0.2.9:1234", fmt.Sprintf("203.0.113.%d", i))
		if w.Code == http.StatusOK {
			allowed++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
		}
	}
	assert.Equal(t, 1, allowed, "rotating X-Forwarded-For must not mint new buckets")
	assert.Equal(t, 1, svc.calls)
}

func TestRouterRateLimitHonoursTrustedProxy(t *testing.T) {
	r := NewRouter(Config{
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
		TrustedProxies: []string{"10.0.0.0/8"},
		BookingService: &countingService{},
	})

	// Behind the trusted load balancer each real client gets its own bucket.
	assert.Equal(t, http.StatusOK, postBooking(r, "10.1.2.3:1234", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, postBooking(r, "10.1.2.3:1234", "203.0.113.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, postBooking(r, "10.1.2.3:1234", "203.0.113.1").Code)
}

func TestRouterInvalidTrustedProxiesTrustsNone(t *testing.T) {
	svc := &countingService{}
	r := NewRouter(Config{
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
		TrustedProxies: []string{"not-an-ip"},
		BookingService: svc,
	})

	assert.Equal(t, http.StatusOK, postBooking(r, "192.0.2.9:1234", "203.0.113.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, postBooking(r, "192.0.2.9:1234", "203.0.113.2").Code)
}

func TestRouterLogsRecoveredPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRouter(Config{Logger: zap.New(core), BookingService: &countingService{}})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1, "the panicking request must still be logged")
	fields := entries[0].ContextMap()
	assert.Equal(t, "/panic", fields["path"])
	assert.EqualValues(t, http.StatusInternalServerError, fields["status"])
	assert.Len(t, logs.FilterMessage("Unhandled panic").All(), 1)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error.","data":null}`, w.Body.String())
}

func TestClientLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewClientLimiter(rate.Every(time.Second), 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.Equal(t, 1, l.size())

	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 1, l.size(), "idle client a should be dropped")

	assert.True(t, l.Allow("a"), "a starts with a fresh bucket")
}
