// Package magazinelist реализует HTTP-обработчик списка журналов каталога.
package magazinelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы списка журналов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога журналов.
type Service interface {
	ListMagazines(ctx context.Context) ([]*models.Magazine, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список журналов
// @Description Возвращает все журналы каталога.
// @Tags Magazines
// @Produce  json
// @Success 200 {array} models.Magazine "Журналы каталога"
// @Router /magazines/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.magazine.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	magazines, err := h.service.ListMagazines(r.Context())
	if err != nil {
		log.Error("failed to list magazines", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list magazines"))
		return
	}

	render.JSON(w, r, response.OKWithData(magazines))
}
