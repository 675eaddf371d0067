// Package activity публикует события активности пользователей в RabbitMQ:
// регистрацию учётной записи и запись на мероприятие.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/denormies-frontend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
)

// Kind — тип события; совпадает с ключом маршрутизации.
type Kind string

const (
	AccountRegistered Kind = "account.registered"
	EventRegistered   Kind = "event.registered"
	EventVolunteered  Kind = "event.volunteered"
)

// Message — тело публикуемого события.
type Message struct {
	Kind    Kind        `json:"kind"`
	Email   string      `json:"email,omitempty"`
	Role    models.Role `json:"role,omitempty"`
	EventID string      `json:"event_id,omitempty"`
	At      time.Time   `json:"at"`
}

// Publisher принимает события. Ошибки публикации не возвращаются вызывающему.
type Publisher interface {
	Publish(ctx context.Context, msg Message)
}

// Nop — издатель, который ничего не делает. Используется, когда брокер не настроен.
type Nop struct{}

// Publish ничего не делает.
func (Nop) Publish(context.Context, Message) {}

// AMQPPublisher публикует события в exchange.
type AMQPPublisher struct {
	log      *slog.Logger
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher подключается к брокеру и объявляет exchange.
func NewAMQPPublisher(log *slog.Logger, url, exchange string, retries int) (*AMQPPublisher, error) {
	const op = "activity.NewAMQPPublisher"
	conn, err := rabbitmq.Connect(url, retries, time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupExchange(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AMQPPublisher{log: log, exchange: exchange, conn: conn, ch: ch}, nil
}

// Publish отправляет событие. Канал amqp не потокобезопасен, поэтому публикации сериализуются.
func (p *AMQPPublisher) Publish(_ context.Context, msg Message) {
	if msg.At.IsZero() {
		msg.At = time.Now().UTC()
	}

	p.mu.Lock()
	err := rabbitmq.PublishJSON(p.ch, p.exchange, string(msg.Kind), msg)
	p.mu.Unlock()

	if err != nil {
		p.log.Error("failed to publish activity", slog.String("kind", string(msg.Kind)), sl.Err(err))
	}
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// Recorder запоминает опубликованные события. Используется в тестах сервисов.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

// Publish сохраняет событие.
func (r *Recorder) Publish(_ context.Context, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages возвращает копию сохранённых событий.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}
