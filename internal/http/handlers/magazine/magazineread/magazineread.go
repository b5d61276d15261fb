// Package magazineread реализует HTTP-обработчик получения журнала по ID.
package magazineread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы чтения журнала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога журналов.
type Service interface {
	GetMagazine(ctx context.Context, id int) (*models.Magazine, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал по ID
// @Description Возвращает один журнал каталога.
// @Tags Magazines
// @Produce  json
// @Param id path int true "ID журнала"
// @Success 200 {object} models.Magazine "Журнал"
// @Failure 404 {object} response.ErrorResponse "Журнал не найден"
// @Router /magazines/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.magazine.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid magazine id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid magazine id"))
		return
	}

	magazine, err := h.service.GetMagazine(r.Context(), id)
	if err != nil {
		log.Error("failed to read magazine", sl.Err(err))
		if errors.Is(err, models.ErrMagazineNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("magazine not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read magazine"))
		return
	}

	render.JSON(w, r, response.OKWithData(magazine))
}
