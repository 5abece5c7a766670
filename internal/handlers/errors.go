package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondInvalid maps a binding failure to a 400 response, with per-field
// detail when the failure came from the validator.
func respondInvalid(ctx *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	if !errors.As(err, &validationErrs) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	fields := make(map[string]string, len(validationErrs))

	for _, fieldErr := range validationErrs {
		fields[strings.ToLower(fieldErr.Field())] = fieldMessage(fieldErr)
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fields})
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	default:
		return "is invalid"
	}
}
