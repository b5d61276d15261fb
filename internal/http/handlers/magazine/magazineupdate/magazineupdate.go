// Package magazineupdate реализует HTTP-обработчик обновления журнала.
package magazineupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы обновления журнала.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога журналов.
type Service interface {
	UpdateMagazine(ctx context.Context, id int, req models.DummyMagazine) (*models.Magazine, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление журнала
// @Description Перезаписывает название, описание и базовую цену журнала.
// @Tags Magazines
// @Accept  json
// @Produce  json
// @Param id path int true "ID журнала"
// @Param request body models.DummyMagazine true "Новые данные журнала"
// @Success 200 {object} models.Magazine "Обновленный журнал"
// @Failure 404 {object} response.ErrorResponse "Журнал не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /magazines/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.magazine.update"

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

	var req models.DummyMagazine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	magazine, err := h.service.UpdateMagazine(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update magazine", sl.Err(err))
		if errors.Is(err, models.ErrMagazineNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("magazine not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update magazine"))
		return
	}

	log.Info("success to update magazine", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(magazine))
}
