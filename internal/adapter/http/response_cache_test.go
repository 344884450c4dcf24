package http_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"taskapp/internal/adapter/cache"
	adapterhttp "taskapp/internal/adapter/http"
	"taskapp/internal/adapter/http/middleware"
)

// setupCachedRouter serves a counter behind the response cache so
// tests can tell cached replies from fresh ones.
func setupCachedRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hits := 0
	responseCache := adapterhttp.NewResponseCache(cache.NewMemoryRepository(), nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-1")
		c.Next()
	})
	router.Use(responseCache.CacheMiddleware())

	router.GET("/api/:user_id/tasks", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"serve": strconv.Itoa(hits)})
	})
	router.POST("/api/:user_id/tasks", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"created": true})
	})

	return router, &hits
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestResponseCache_ServesSecondReadFromCache(t *testing.T) {
	RegisterTestingT(t)

	router, hits := setupCachedRouter(t)

	first := perform(router, http.MethodGet, "/api/user-1/tasks")
	second := perform(router, http.MethodGet, "/api/user-1/tasks")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	Expect(*hits).To(Equal(1))
	Expect(second.Body.String()).To(Equal(first.Body.String()))
}

func TestResponseCache_QueryStringsCacheSeparately(t *testing.T) {
	RegisterTestingT(t)

	router, hits := setupCachedRouter(t)

	perform(router, http.MethodGet, "/api/user-1/tasks?status=pending")
	perform(router, http.MethodGet, "/api/user-1/tasks?status=completed")

	Expect(*hits).To(Equal(2))
}

func TestResponseCache_MutationInvalidatesUser(t *testing.T) {
	RegisterTestingT(t)

	router, hits := setupCachedRouter(t)

	perform(router, http.MethodGet, "/api/user-1/tasks")
	perform(router, http.MethodPost, "/api/user-1/tasks")
	perform(router, http.MethodGet, "/api/user-1/tasks")

	Expect(*hits).To(Equal(2))
}
