package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondDomainError maps a service error chain onto the wire envelope.
func RespondDomainError(c *gin.Context, err error) {
	RespondError(c, apierr.StatusFor(err), apierr.CodeFor(err), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
