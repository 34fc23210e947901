package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	r := newLimitedRouter(NewRateLimiter(client, 1, time.Minute))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204 while redis is down, got %d", i, w.Code)
		}
	}
}

// REDIS_ADDRESS points at a disposable instance.
func TestRateLimiterRejectsOverLimit(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDRESS"))
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" || addr == "" {
		t.Skip("set INTEGRATION_TESTS=1 and REDIS_ADDRESS to run integration tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	client.Del(req.Context(), rateLimitKeyPrefix+"203.0.113.7")

	r := newLimitedRouter(NewRateLimiter(client, 2, time.Minute))
	for i, want := range []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, w.Code)
		}
		if want == http.StatusTooManyRequests && !strings.Contains(w.Body.String(), "RATE_LIMITED") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	}

	ttl, err := client.TTL(req.Context(), rateLimitKeyPrefix+"203.0.113.7").Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("window not set on key: ttl=%s err=%v", ttl, err)
	}
}
