package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/whitesgr03/local-inventory/internal/service"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        service.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "record not found",
		},
		{
			name:       "name conflict renders inline field error",
			err:        service.ErrNameConflict,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `"name"`,
		},
		{
			name:       "invalid category renders inline field error",
			err:        service.ErrInvalidCategory,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `"category_id"`,
		},
		{
			name:       "invalid image renders inline field error",
			err:        fmt.Errorf("%w: image must be a jpeg", service.ErrInvalidImage),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `"image"`,
		},
		{
			name:       "dependents block is a conflict",
			err:        service.ErrHasDependents,
			wantStatus: http.StatusConflict,
			wantBody:   "category still has products",
		},
		{
			name:       "unknown errors are server failures",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/products/:id/fail", func(c *gin.Context) {
				respondError(c, tt.err, "products", 42)
			})

			req := httptest.NewRequest(http.MethodGet, "/products/42/fail", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRespondErrorDraftRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.PUT("/products/:id", func(c *gin.Context) {
		respondError(c, service.ErrDraft, "products", 42)
	})

	req := httptest.NewRequest(http.MethodPut, "/products/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// A draft rejection bounces the caller back to the record's read
	// view instead of rendering an error.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products/42", w.Header().Get("Location"))
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/categories/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	t.Run("numeric id parses", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/categories/17", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "17")
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/categories/not-a-number", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid record ID")
	})
}
