package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error passes through", Forbidden("not_owner", "nope"), http.StatusForbidden, "not_owner"},
		{"wrapped app error", fmt.Errorf("ctx: %w", NotFound("staff_not_found", "x")), http.StatusNotFound, "staff_not_found"},
		{"business rule", ErrBusiness("staff_limit_reached", "Staff limit reached"), http.StatusBadRequest, "staff_limit_reached"},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, http.StatusBadRequest, "duplicate_value"},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, http.StatusBadRequest, "duplicate_value"},
		{"bad json", &json.SyntaxError{}, http.StatusBadRequest, "invalid_body"},
		{"expired token", fmt.Errorf("parse: %w", jwt.ErrTokenExpired), http.StatusUnauthorized, "token_expired"},
		{"bad signature", jwt.ErrTokenSignatureInvalid, http.StatusUnauthorized, "invalid_token"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Write(c, FromError(errors.New("pq: connection refused")))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Server Error", body.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("generate: %w", ErrBusiness("schedule_limit_reached", "limit"))

	assert.True(t, IsBusiness(err, "schedule_limit_reached"))
	assert.False(t, IsBusiness(err, "staff_limit_reached"))
	assert.False(t, IsBusiness(errors.New("x"), "schedule_limit_reached"))
}
