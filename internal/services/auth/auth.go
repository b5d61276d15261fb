// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/magazine-subscription/internal/lib/jwt"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/password"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int, error)
	// GetUserByUsername возвращает пользователя по имени или models.ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID или models.ErrUserNotFound.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или models.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// DeactivateUser выставляет is_active = false (мягкое удаление).
	DeactivateUser(ctx context.Context, username string) error
}

// ResetNotifier публикует событие сброса пароля для воркера notification-sender.
type ResetNotifier interface {
	PublishPasswordReset(event models.PasswordResetEvent) error
}

// AuthService отвечает за регистрацию, вход, обновление токенов
// и деактивацию пользователей. Ключ подписи и сроки жизни токенов
// приходят через конструктор, а не из глобального состояния.
type AuthService struct {
	users           UserRepository
	jwtMaker        jwt.Maker
	notifier        ResetNotifier
	log             *slog.Logger
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, notifier ResetNotifier,
	log *slog.Logger, accessTokenTTL, refreshTokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		jwtMaker:        jwtMaker,
		notifier:        notifier,
		log:             log,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Дубликат username или email возвращается как models.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*models.UserOut, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}
	id, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered new user", slog.Int("id", id), slog.String("username", username))
	return &models.UserOut{ID: id, Username: username, Email: email}, nil
}

// Authenticate проверяет пару username/password.
// Возвращает models.ErrInvalidCredentials при неверной паре
// и models.ErrUserDisabled для деактивированной учётной записи.
func (s *AuthService) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, models.ErrUserDisabled
	}
	return user, nil
}

// Login аутентифицирует пользователя и выдает пару access+refresh токенов.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.TokenPair, error) {
	user, err := s.Authenticate(ctx, username, rawPassword)
	if err != nil {
		return nil, err
	}
	return s.issueTokenPair(user.Username, user.ID)
}

// Refresh проверяет refresh-токен, убеждается что пользователь
// существует и активен, и выдает свежую пару токенов.
// Списка отзыва нет: старые токены действуют до естественного истечения.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.jwtMaker.ParseToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidToken, err)
	}
	user, err := s.users.GetUserByUsername(ctx, claims.Username())
	if err != nil || user.ID != claims.UserID {
		return nil, models.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, models.ErrUserDisabled
	}
	return s.issueTokenPair(user.Username, user.ID)
}

// ValidateToken проверяет access-токен и возвращает аутентифицированного
// пользователя, извлеченного из claims. Базу данных не читает:
// токен самодостаточен.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidToken, err)
	}
	return &models.User{
		ID:       claims.UserID,
		Username: claims.Username(),
	}, nil
}

// Deactivate мягко удаляет пользователя: is_active = false, запись остается.
func (s *AuthService) Deactivate(ctx context.Context, username string) error {
	if err := s.users.DeactivateUser(ctx, username); err != nil {
		return err
	}
	s.log.Info("deactivated user", slog.String("username", username))
	return nil
}

// Me возвращает данные текущего пользователя.
func (s *AuthService) Me(ctx context.Context, userID int) (*models.UserOut, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := user.Out()
	return &out, nil
}

// ResetPassword запускает процедуру сброса пароля: генерирует токен
// и публикует событие для отправки письма. Публикация — fire-and-forget,
// ее ошибка логируется, но не возвращается вызывающему.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	event := models.PasswordResetEvent{
		Email:      user.Email,
		Username:   user.Username,
		ResetToken: uuid.NewString(),
	}
	if err := s.notifier.PublishPasswordReset(event); err != nil {
		s.log.Warn("failed to publish password reset event", sl.Err(err))
	}
	return nil
}

func (s *AuthService) issueTokenPair(username string, userID int) (*models.TokenPair, error) {
	access, err := s.jwtMaker.GenerateToken(username, userID, s.accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMaker.GenerateToken(username, userID, s.refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
