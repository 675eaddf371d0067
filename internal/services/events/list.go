package events

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
)

// Lister отдаёт список мероприятий.
type Lister struct {
	gw Gateway
}

// NewLister создаёт Lister.
func NewLister(gw Gateway) *Lister {
	return &Lister{gw: gw}
}

// List возвращает все мероприятия; пустой ответ даёт пустой список.
func (l *Lister) List(ctx context.Context, creds gateway.Credentials) ([]models.Event, error) {
	const op = "events.List"
	list, err := l.gw.Events(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if list == nil {
		list = []models.Event{}
	}
	return list, nil
}
