package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/interfaces/http/dto"
	"github.com/sitekhata/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.Success(c, gin.H{"name": "cement"})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandler_Created(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.Created(c, gin.H{"id": uuid.New()})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBaseHandler_NoContent(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.NoContent(c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBaseHandler_ErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		call     func(h *BaseHandler, c *gin.Context)
		status   int
		wantCode string
	}{
		{"bad request", func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"not found", func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"unauthorized", func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "no token") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"forbidden", func(h *BaseHandler, c *gin.Context) { h.Forbidden(c, "denied") }, http.StatusForbidden, dto.ErrCodeForbidden},
		{"conflict", func(h *BaseHandler, c *gin.Context) { h.Conflict(c, "dup") }, http.StatusConflict, dto.ErrCodeConflict},
		{"internal", func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"rate limited", func(h *BaseHandler, c *gin.Context) { h.TooManyRequests(c, "slow down") }, http.StatusTooManyRequests, dto.ErrCodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, rec := newTestContext()

			tt.call(h, c)

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_ErrorIncludesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()
	c.Set(RequestIDKey, "req-abc-123")

	h.BadRequest(c, "bad")

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-abc-123", resp.Error.RequestID)
}

func TestBaseHandler_ValidationError(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.ValidationError(c, []dto.ValidationDetail{
		{Field: "amount", Message: "must be positive"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "amount", resp.Error.Details[0].Field)
}

func TestHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.HandleError(c, nil)

	assert.Empty(t, rec.Body.String())
}

func TestHandleError_OverAllocation(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	overErr := &billing.OverAllocationError{
		CurrentAllocated: decimal.NewFromInt(700),
		RequestedTotal:   decimal.NewFromInt(500),
		PaymentAmount:    decimal.NewFromInt(1000),
	}
	h.HandleError(c, overErr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Error   *dto.ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeOverAllocation, resp.Error.Code)

	// The response data carries the figures so clients can display them.
	require.NotNil(t, resp.Data)
	assert.Equal(t, "700", resp.Data["currentAllocated"])
	assert.Equal(t, "500", resp.Data["requestedTotal"])
	assert.Equal(t, "1000", resp.Data["paymentAmount"])
}

func TestHandleError_DomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        *shared.DomainError
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.NewDomainError("NOT_FOUND", "Vendor not found"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"entry allocated", shared.NewDomainError("ENTRY_ALLOCATED", "Entry has allocations"), http.StatusUnprocessableEntity, dto.ErrCodeEntryAllocated},
		{"payment allocated", shared.NewDomainError("PAYMENT_ALLOCATED", "Payment has allocations"), http.StatusUnprocessableEntity, dto.ErrCodePaymentAllocated},
		{"validation", shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"already exists", shared.NewDomainError("ALREADY_EXISTS", "Duplicate vendor name"), http.StatusConflict, dto.ErrCodeAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, rec := newTestContext()

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.err.Message, resp.Error.Message)
		})
	}
}

func TestHandleError_UnknownError(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext()

	h.HandleError(c, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	// Internal details must not leak to clients.
	assert.NotContains(t, resp.Error.Message, "database exploded")
}

func TestGetUserID(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		c, _ := newTestContext()
		_, err := getUserID(c)
		assert.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		c, _ := newTestContext()
		want := uuid.New()
		c.Set(middleware.JWTUserIDKey, want.String())

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("malformed", func(t *testing.T) {
		c, _ := newTestContext()
		c.Set(middleware.JWTUserIDKey, "not-a-uuid")

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext()
		c.Set(RequestIDKey, "ctx-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("from header", func(t *testing.T) {
		c, _ := newTestContext()
		c.Request.Header.Set(RequestIDKey, "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("absent", func(t *testing.T) {
		c, _ := newTestContext()
		assert.Empty(t, getRequestID(c))
	})
}
