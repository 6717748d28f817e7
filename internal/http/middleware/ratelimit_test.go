package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limiterRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(false))
	rl := NewRateLimiter(rps, burst, KeyByClientIP())
	r.POST("/login", rl.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BurstThen429(t *testing.T) {
	const burst = 3
	r := limiterRouter(0.0001, burst) // effectively no refill within the test

	for i := 0; i < burst; i++ {
		if w := postFrom(r, "203.0.113.7"); w.Code != http.StatusOK {
			t.Fatalf("request %d within burst: expected 200, got %d", i+1, w.Code)
		}
	}
	w := postFrom(r, "203.0.113.7")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request beyond burst: expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on 429")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	r := limiterRouter(0.0001, 1)

	if w := postFrom(r, "203.0.113.7"); w.Code != http.StatusOK {
		t.Fatalf("first ip: expected 200, got %d", w.Code)
	}
	if w := postFrom(r, "203.0.113.7"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first ip exhausted: expected 429, got %d", w.Code)
	}
	// a different client still has its own bucket
	if w := postFrom(r, "198.51.100.9"); w.Code != http.StatusOK {
		t.Fatalf("second ip: expected 200, got %d", w.Code)
	}
}

func TestRateLimiter_CoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Fatalf("expected burst coerced to 1, got %d", rl.burst)
	}
}
