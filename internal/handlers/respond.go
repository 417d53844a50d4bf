// Package handlers contains HTTP request handlers for the POS backend.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"github.com/jbalums/benta-flow-api/internal/service"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// Report validation failures under the json field names clients sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// models.BusinessTypes is the single list of accepted values.
	_ = v.RegisterValidation("business_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.BusinessTypes, fl.Field().String())
	})
}

// RespondError writes a plain error envelope.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// LogAndRespondError logs the internal error and writes a sanitized
// envelope; internal detail never reaches the client.
func LogAndRespondError(c *gin.Context, status int, err error, message string) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	RespondError(c, status, message)
}

// RespondValidationError writes the 422 envelope with field-keyed messages.
// The top-level message is the first message of the first field in sorted
// order, so the same failure always reads the same way.
func RespondValidationError(c *gin.Context, fields map[string][]string) {
	message := "The given data was invalid."
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msgs := fields[name]; len(msgs) > 0 {
			message = msgs[0]
			break
		}
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"errors":  fields,
	})
}

// BindJSON binds the request body and renders a 422 on failure. Returns
// false when the request has already been answered.
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondValidationError(c, translateBindingError(err))
		return false
	}
	return true
}

// HandleServiceError renders a service failure: validation errors as 422,
// missing records as 404, anything else as a logged 500.
func HandleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		RespondValidationError(c, validationErr.Fields)
	case errors.Is(err, repository.ErrNotFound):
		RespondError(c, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, repository.ErrDuplicate):
		RespondValidationError(c, map[string][]string{
			"base": {"A record with the same unique value already exists."},
		})
	case errors.Is(err, repository.ErrInvalidReference):
		RespondValidationError(c, map[string][]string{
			"base": {"A referenced record does not exist."},
		})
	default:
		LogAndRespondError(c, http.StatusInternalServerError, err, "Something went wrong.")
	}
}

func translateBindingError(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"body": {"The request body is invalid."}}
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		fields[field] = append(fields[field], validationMessage(fe))
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	case "oneof", "business_type":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "dive":
		return fmt.Sprintf("The %s field is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
