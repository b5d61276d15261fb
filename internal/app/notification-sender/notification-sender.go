// Package notificationsender собирает и запускает воркер отправки писем:
// потребляет события из RabbitMQ и отправляет их по SMTP.
package notificationsender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/magazine-subscription/internal/config"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/smtp"
	"github.com/magabrotheeeer/magazine-subscription/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/magazine-subscription/internal/services/sender"
)

// App инкапсулирует подключение к очереди и сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает воркер из конфигурации.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди сброса пароля и блокируется
// до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "notifications.password-reset", a.senderService.SendPasswordReset)
	if err != nil {
		a.logger.Error("failed to start password-reset consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notification-sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
