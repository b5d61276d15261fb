// Package magazineremove реализует HTTP-обработчик удаления журнала.
// Журнал с активными подписками удалить нельзя.
package magazineremove

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

// Handler обрабатывает HTTP-запросы удаления журнала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога журналов.
type Service interface {
	RemoveMagazine(ctx context.Context, id int) error
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление журнала
// @Description Удаляет журнал из каталога. Запрещено при наличии активных подписок.
// @Tags Magazines
// @Produce  json
// @Param id path int true "ID журнала"
// @Success 200 {object} response.Response "Журнал удален"
// @Failure 404 {object} response.ErrorResponse "Журнал не найден"
// @Failure 409 {object} response.ErrorResponse "На журнал есть активные подписки"
// @Router /magazines/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.magazine.remove"

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

	if err := h.service.RemoveMagazine(r.Context(), id); err != nil {
		log.Error("failed to remove magazine", sl.Err(err))
		switch {
		case errors.Is(err, models.ErrMagazineNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("magazine not found"))
		case errors.Is(err, models.ErrCatalogInUse):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("magazine has active subscriptions"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove magazine"))
		}
		return
	}

	log.Info("success to remove magazine", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "magazine removed successfully",
	}))
}
