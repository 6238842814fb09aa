package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ringsizer/storefront/internal/repository"
	"github.com/ringsizer/storefront/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRenderServiceErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not signed in", service.ErrNotSignedIn, http.StatusUnauthorized},
		{"remote unauthorized", &repository.APIError{StatusCode: 401, Message: "Unauthenticated."}, http.StatusUnauthorized},
		{"wrong credentials", service.ErrWrongCredentials, http.StatusUnauthorized},
		{"no measurement", service.ErrNoMeasurement, http.StatusBadRequest},
		{"line not found", service.ErrLineNotFound, http.StatusNotFound},
		{"remote not found", fmt.Errorf("wrapped -> %w", &repository.APIError{StatusCode: 404, Message: "No query results"}), http.StatusNotFound},
		{"remote failure", &repository.APIError{StatusCode: 422, Message: "The title field is required."}, http.StatusBadGateway},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)

			renderServiceErr(ctx, "test", tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, ctx.IsAborted())
		})
	}
}

func TestRenderServiceErr_RemoteMessageIsShown(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	renderServiceErr(ctx, "test", &repository.APIError{StatusCode: 422, Message: "The title field is required."})

	assert.Contains(t, rec.Body.String(), `"message":"The title field is required."`)
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 30},
		{"days=7", 7},
		{"days=%207%20", 7},
		{"days=abc", 30},
		{"days=-3", -3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			assert.Equal(t, tt.want, queryInt(ctx, "days", 30))
		})
	}
}
