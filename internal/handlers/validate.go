package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"taskboard/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeJSON проверяет Content-Type и читает тело. При ошибке ответ уже записан
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, codeUnsupported, "Content-Type должен быть application/json")
		return false
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное тело запроса: "+err.Error())
		return false
	}
	return true
}

// parseID читает положительный целый id из пути. При ошибке ответ уже записан
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err == nil && id <= 0 {
		err = fmt.Errorf("id должен быть положительным")
	}
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("id", idParam),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "не удалось получить id: "+idParam)
		return 0, false
	}
	return id, true
}
