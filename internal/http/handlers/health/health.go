// Package health реализует HTTP-обработчик проверки работоспособности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping() error
}

// Handler обрабатывает HTTP-запросы проверки здоровья.
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

// ServeHTTP godoc
// @Summary Проверка работоспособности
// @Description Проверяет доступность сервиса и базы данных.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис работает"
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		h.log.Error("database ping failed", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "service is healthy",
	}))
}
