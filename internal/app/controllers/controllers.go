// Package controllers contains the HTTP handlers of the dashboard API.
// Controllers bind and translate requests, delegate to services and
// shape the JSON envelope; no business rules live here.
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models/dto"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// bindError writes the standard response for a malformed request body
func bindError(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).
		WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// parseUUIDParam reads a path parameter as a UUID, writing the error
// response itself when the value is malformed.
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier").
			WithField(name).
			WithDetails("Must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID converts an optional string field to a UUID
func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDate parses a yyyy-mm-dd wire date
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// parseOptionalDate converts an optional string field to a date
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
