package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Notifier публикует доменные события в exchange уведомлений.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishPasswordReset публикует событие сброса пароля.
func (n *Notifier) PublishPasswordReset(event models.PasswordResetEvent) error {
	return PublishMessage(n.ch, Exchange, "password-reset", event)
}
