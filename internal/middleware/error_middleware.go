package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
	"github.com/ejmancilla/sigms/internal/pkg/logger"
)

// HandleAPIError translates a service error into the matching HTTP
// response. Dispatch is on errors.Is over the sentinel taxonomy; the
// wrapped message reaches the client, the full chain only the log.
func HandleAPIError(c *gin.Context, err error) {
	message := apperrors.Message(err)

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(403, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, message))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, message))
	case errors.Is(err, apperrors.ErrDuplicateKey):
		c.JSON(409, dto.NewErrorResponse(dto.ErrorCodeResourceAlreadyExists, message))
	case errors.Is(err, apperrors.ErrInvalidCredential):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(409, dto.NewErrorResponse(dto.ErrorCodeResourceInvalid, message))
	case errors.Is(err, apperrors.ErrDateConflict):
		c.JSON(409, dto.NewErrorResponse(dto.ErrorCodeDateConflict, message))
	case errors.Is(err, apperrors.ErrSlotConflict):
		c.JSON(409, dto.NewErrorResponse(dto.ErrorCodeSlotConflict, message))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrUnknownGroup):
		c.JSON(400, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, message))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrStoreFailure):
		logger.Error().Err(err).Msg("Store failure")
		c.JSON(500, dto.NewErrorResponse(dto.ErrorCodeDatabaseError, "Operation failed and was rolled back"))
	default:
		logger.Error().Err(err).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}
