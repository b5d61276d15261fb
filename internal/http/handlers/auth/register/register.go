// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Handler принимает JSON с username, email и паролем, валидирует их,
// делегирует создание пользователя сервису аутентификации и возвращает
// данные созданного пользователя. Повторная регистрация username или
// email отклоняется со статусом 400.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.UserOut, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает нового пользователя. Возвращает id, username и email.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} models.UserOut "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дубликат"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		if errors.Is(err, models.ErrUserExists) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("username already registered"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("success to register user", slog.Int("id", user.ID))
	render.JSON(w, r, response.OKWithData(user))
}
