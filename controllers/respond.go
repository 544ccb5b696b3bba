package controllers

import (
	"errors"
	"net/http"
	"strings"

	"rent-backend/services"
	"rent-backend/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// validation/conflict/credentials are permanent; upstream (502) is the one
// category a client may retry.
func respondServiceError(c *gin.Context, err error) {
	msg := serviceErrorMessage(err)

	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONFail(c, http.StatusBadRequest, msg)
	case errors.Is(err, services.ErrConflict):
		utils.JSONFail(c, http.StatusConflict, msg)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONFail(c, http.StatusNotFound, msg)
	case errors.Is(err, services.ErrCredentials), errors.Is(err, services.ErrResetToken):
		utils.JSONFail(c, http.StatusUnauthorized, msg)
	case errors.Is(err, services.ErrUpstream):
		utils.JSONError(c, http.StatusBadGateway, msg)
	default:
		log.WithError(err).Error("unhandled service error")
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong")
	}
}

// serviceErrorMessage strips the leading taxonomy code from a wrapped error,
// leaving the human-readable part.
func serviceErrorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
