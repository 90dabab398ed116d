package handlers

import (
	"errors"
	"net/http"

	"invoice-service/internal/logger"
	"invoice-service/internal/services"
	"invoice-service/utils"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, utils.CreateSuccessResponse(data))
}

func respondMessage(c *gin.Context, status int, message string) {
	respondOK(c, status, gin.H{"message": message})
}

// respondError maps a service error kind to its HTTP status. Conflicts are
// reported as 400 like any other rejected write.
func respondError(c *gin.Context, err error) {
	var (
		status int
		code   string
		detail string
	)
	switch services.KindOf(err) {
	case services.KindValidation:
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case services.KindConflict:
		status, code = http.StatusBadRequest, "CONFLICT"
	case services.KindNotFound:
		status, code = http.StatusNotFound, "NOT_FOUND"
	case services.KindUnauthorized:
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case services.KindForbidden:
		status, code = http.StatusForbidden, "FORBIDDEN"
	default:
		status, code = http.StatusInternalServerError, "INTERNAL_ERROR"
		if cause := errors.Unwrap(err); cause != nil {
			detail = cause.Error()
		}
	}

	log := logger.WithComponent("http")
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("request rejected")
	}
	c.AbortWithStatusJSON(status, utils.CreateErrorResponseWithDetail(code, services.MessageOf(err), detail))
}

func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", utils.ValidationMessage(err)))
}
