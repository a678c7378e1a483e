package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/logger"
	"taskboard/internal/service"

	"go.uber.org/zap"
)

const (
	codeBadRequest     = "BAD_REQUEST"
	codeUnsupported    = "UNSUPPORTED_MEDIA_TYPE"
	codeNotImplemented = "NOT_IMPLEMENTED"
	codeUnavailable    = "SERVICE_UNAVAILABLE"
)

// handleBusinessError отвечает по коду бизнес-ошибки, прочие ошибки отдаются как 500
func handleBusinessError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode),
			zap.String("path", r.URL.Path))

		details := businessErr.Details
		if details == nil {
			details = map[string]any{}
		}
		responseWithPayload(w, statusCode,
			toPayload("error", businessErr.Code),
			toPayload("message", businessErr.Message),
			toPayload("details", details),
		)
		return
	}

	logger.Error("HTTP: Ошибка Service", err, zap.String("path", r.URL.Path))
	responseWithError(w, http.StatusInternalServerError, service.CodeOperationFailed, defaultMessage)
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeConflict:
		return http.StatusConflict
	case service.CodeOperationFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
