package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workforce-scheduler/internal/dto"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/account"
)

const dateLayout = "2006-01-02"

// bindJSON decodes the body and hands any failure to the error handler.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Abort(c, err)
		return false
	}
	return true
}

func bindPage(c *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Abort(c, err)
		return q, false
	}
	return q, true
}

func requestMeta(c *gin.Context) account.Meta {
	return account.Meta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// parseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func parseDate(field, raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, httperr.Validation([]httperr.FieldError{{
		Field:   field,
		Message: "Invalid date, expected YYYY-MM-DD",
	}})
}

func optionalDate(c *gin.Context, field string) (*time.Time, error) {
	raw := c.Query(field)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalBool(c *gin.Context, field string, def *bool) (*bool, error) {
	raw := c.Query(field)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, httperr.Validation([]httperr.FieldError{{Field: field, Message: field + " must be true or false"}})
	}
	return &v, nil
}
