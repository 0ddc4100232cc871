package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeCounter struct {
	hits map[string]int64
	err  error
}

func (f *fakeCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.hits[key]++
	return f.hits[key], nil
}

func limiterRouter(counter AttemptCounter, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginLimiter(counter, limit, 5*time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})
	return r
}

func TestLoginLimiterBlocksAfterLimit(t *testing.T) {
	r := limiterRouter(&fakeCounter{hits: map[string]int64{}}, 5)

	for i := 1; i <= 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d = %d; want 200", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("attempt 6 = %d; want 429", w.Code)
	}
}

func TestLoginLimiterCountsPerClient(t *testing.T) {
	counter := &fakeCounter{hits: map[string]int64{}}
	r := limiterRouter(counter, 1)

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.RemoteAddr = "10.0.0.1:1234"
	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "10.0.0.2:1234"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first attempt = %d; want 200", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, second)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second attempt from same ip = %d; want 429", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, other)
	if w.Code != http.StatusOK {
		t.Errorf("attempt from other ip = %d; want 200", w.Code)
	}
}

func TestLoginLimiterFailsOpen(t *testing.T) {
	r := limiterRouter(&fakeCounter{err: errors.New("store down")}, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request with broken counter = %d; want 200", w.Code)
		}
	}
}
