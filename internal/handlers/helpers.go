package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "ledger/internal/errors"
	"ledger/internal/middleware"
	"ledger/internal/models"
	"ledger/internal/validator"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(uint)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// getUser returns the user resolved by the auth middleware.
func getUser(c *gin.Context) (*models.User, error) {
	user, exists := c.Get(middleware.UserKey)
	if !exists {
		return nil, apperrors.ErrUnauthorized
	}
	u, ok := user.(*models.User)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return u, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parseOptionalDate parses the named query parameter as a calendar date.
// An absent or empty parameter yields nil.
func parseOptionalDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := validator.ParseDate(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+key+": expected YYYY-MM-DD")
	}
	return &d, nil
}

// bindStrictJSON decodes the request body into obj, rejecting unknown keys
// and trailing data, then runs the binding validator on it.
func bindStrictJSON(c *gin.Context, obj interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "request body must contain a single JSON object")
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// respondWithError writes the standard error body for err.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse is returned by the transaction delete endpoint.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Account not found"`
	Code   string `json:"code" example:"ACCOUNT_NOT_FOUND"`
}
