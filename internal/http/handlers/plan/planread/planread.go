// Package planread реализует HTTP-обработчик получения тарифного плана по ID.
package planread

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

// Handler обрабатывает HTTP-запросы чтения тарифного плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики тарифных планов.
type Service interface {
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Тарифный план по ID
// @Description Возвращает один тарифный план.
// @Tags Plans
// @Produce  json
// @Param id path int true "ID плана"
// @Success 200 {object} models.Plan "План"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Router /plans/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.read"

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

	plan, err := h.service.GetPlan(r.Context(), id)
	if err != nil {
		log.Error("failed to read plan", sl.Err(err))
		if errors.Is(err, models.ErrPlanNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read plan"))
		return
	}

	render.JSON(w, r, response.OKWithData(plan))
}
