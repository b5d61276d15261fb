// Package planupdate реализует HTTP-обработчик обновления тарифного плана.
package planupdate

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

// Handler обрабатывает HTTP-запросы обновления тарифного плана.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики тарифных планов.
type Service interface {
	UpdatePlan(ctx context.Context, id int, req models.DummyPlan) (*models.Plan, error)
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
// @Summary Обновление тарифного плана
// @Description Перезаписывает данные тарифного плана, включая скидку.
// @Tags Plans
// @Accept  json
// @Produce  json
// @Param id path int true "ID плана"
// @Param request body models.DummyPlan true "Новые данные плана"
// @Success 200 {object} models.Plan "Обновленный план"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /plans/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid plan id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid plan id"))
		return
	}

	var req models.DummyPlan
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

	plan, err := h.service.UpdatePlan(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update plan", sl.Err(err))
		if errors.Is(err, models.ErrPlanNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update plan"))
		return
	}

	log.Info("success to update plan", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(plan))
}
