package utils

import (
	"errors"
	"fmt"
	"log"

	"github.com/AhmedHajAhmed/Homi/services"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type apiError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func CreateError(statusCode int, title, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, apiError{
		Status: statusCode,
		Title:  title,
		Detail: detail,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "User with this email already exists", ctx)
}

type validationErrorDetail struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Param     string `json:"param"`
}

// HandleValidationErrors renders ReadJSON failures: field details for
// validator errors, a plain 400 for malformed bodies.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]validationErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, validationErrorDetail{
				ActualTag: fieldErr.ActualTag(),
				Namespace: fieldErr.Namespace(),
				Kind:      fieldErr.Kind().String(),
				Type:      fieldErr.Type().String(),
				Value:     fmt.Sprintf("%v", fieldErr.Value()),
				Param:     fieldErr.Param(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"status": iris.StatusBadRequest,
			"title":  "Validation Error",
			"errors": details,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Bad Request", err.Error(), ctx)
}

// HandleServiceError maps the service error taxonomy onto HTTP responses.
// Anything unrecognized is logged and surfaced as a generic 500.
func HandleServiceError(err error, ctx iris.Context) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		CreateError(iris.StatusBadRequest, "Validation Error", validationErr.Error(), ctx)
	case errors.Is(err, services.ErrInvalidCredentials):
		CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email or password.", ctx)
	case errors.Is(err, services.ErrForbidden):
		CreateError(iris.StatusForbidden, "Forbidden", "You are not allowed to perform this action", ctx)
	case errors.Is(err, services.ErrNotFound):
		CreateNotFound(ctx)
	case errors.Is(err, services.ErrEmailTaken):
		CreateEmailAlreadyRegistered(ctx)
	case errors.Is(err, services.ErrBookingResolved):
		CreateError(iris.StatusConflict, "Conflict", "Booking has already been resolved", ctx)
	default:
		log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		CreateInternalServerError(ctx)
	}
}
