package httperr

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// FromError maps any error onto the response taxonomy. Unknown errors become 500.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var be BusinessError
	if errors.As(err, &be) {
		return &Error{Status: http.StatusBadRequest, Code: be.Code, Message: be.Error()}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("not_found", "Resource not found")
	}

	if IsDuplicateKey(err) {
		return BadRequest("duplicate_value", "Duplicate field value entered")
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Validation(FieldErrors(ve))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Validation([]FieldError{{
			Field:   typeErr.Field,
			Message: "Invalid value type, expected " + typeErr.Type.String(),
		}})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return BadRequest("invalid_body", "Request body must be valid JSON")
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return Unauthorized("token_expired", "Token expired")
	}
	if isTokenError(err) {
		return Unauthorized("invalid_token", "Invalid token")
	}

	return Internal(err)
}

func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isTokenError(err error) bool {
	return errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenInvalidIssuer) ||
		errors.Is(err, jwt.ErrTokenInvalidAudience) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims)
}
