// Package create реализует HTTP-обработчик оформления подписки.
//
// Пользователь берется из контекста запроса, цена вычисляется сервисом
// из базовой цены журнала и скидки плана.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы создания подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Create(ctx context.Context, userID int, req models.DummySubscription) (*models.Subscription, error)
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
// @Summary Оформление подписки
// @Description Создает активную подписку на журнал по выбранному плану. Цена = базовая цена × (1 − скидка).
// @Tags Subscriptions
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummySubscription true "Журнал, план и дата продления"
// @Success 200 {object} models.Subscription "Созданная подписка"
// @Failure 404 {object} response.ErrorResponse "Журнал или план не найден"
// @Failure 422 {object} response.ErrorResponse "Дубликат активной подписки или некорректная цена"
// @Router /subscriptions/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummySubscription
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

	sub, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create subscription", sl.Err(err))
		switch {
		case errors.Is(err, models.ErrSubscriptionExists):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("active subscription already exists"))
		case errors.Is(err, models.ErrMagazineNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("magazine not found"))
		case errors.Is(err, models.ErrPlanNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
		case errors.Is(err, models.ErrInvalidPrice):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("calculated price must be positive"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create subscription"))
		}
		return
	}

	log.Info("success to create subscription", slog.Int("id", sub.ID))
	render.JSON(w, r, response.OKWithData(sub))
}
