package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type ValidationErr struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool
	Errors []ValidationErr
}

func (v *ValidationResult) AddError(field, message string) {
	v.Valid = false
	v.Errors = append(v.Errors, ValidationErr{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationResult) HasErrors() bool {
	return !v.Valid
}

func (v *ValidationResult) Error() string {
	if !v.Valid {
		messages := make([]string, len(v.Errors))
		for i, e := range v.Errors {
			messages[i] = e.Message
		}
		return strings.Join(messages, "; ")
	}
	return ""
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

func ValidateStringNotEmpty(value, fieldName string) *ValidationResult {
	result := NewValidationResult()
	if strings.TrimSpace(value) == "" {
		result.AddError(fieldName, fieldName+" is required")
	}
	return result
}

func ValidateStringLength(value, fieldName string, min, max int) *ValidationResult {
	result := NewValidationResult()
	length := len(strings.TrimSpace(value))
	if length < min {
		result.AddError(fieldName, fieldName+" must be at least "+strconv.Itoa(min)+" characters")
	}
	if max > 0 && length > max {
		result.AddError(fieldName, fieldName+" must be at most "+strconv.Itoa(max)+" characters")
	}
	return result
}

func ValidateDiscogsReleaseID(value int) *ValidationResult {
	result := NewValidationResult()
	if value < 0 {
		result.AddError("discogs_release_id", "discogs_release_id cannot be negative")
	}
	return result
}

// ValidateRequest checks validators in order and answers 400 with the first
// failure. Returns false when the request has already been answered.
func ValidateRequest(ctx *gin.Context, validators ...*ValidationResult) bool {
	for _, v := range validators {
		if v.HasErrors() {
			ErrorWithDetails(ctx, http.StatusBadRequest, "Validation error", v.Error())
			return false
		}
	}
	return true
}
