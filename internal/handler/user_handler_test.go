package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"SafeCampus/internal/service"
)

func TestSomeRouteCarriesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(&service.UserService{})
	r := gin.New()
	r.GET("/api/user/some/:ids", h.Some)

	// without the ids segment the route does not match at all
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/some", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /api/user/some = %d; want 404", w.Code)
	}

	// malformed ids reach the handler and are rejected there, proving the
	// path parameter is plumbed through
	for _, ids := range []string{"abc", "0", "1,,2", "1,x"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/some/"+ids, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET /api/user/some/%s = %d; want 400", ids, w.Code)
		}
	}
}
