package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/denormies-frontend/internal/models"
)

// ScheduleDates возвращает упорядоченный список различных дат мероприятий в формате dd-mm-yyyy.
func (c *Client) ScheduleDates(ctx context.Context, creds Credentials) ([]string, error) {
	const op = "gateway.ScheduleDates"
	var dates []string
	if _, err := c.do(ctx, http.MethodGet, "/schedule/dates", "/schedule/dates", creds, nil, &dates); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return dates, nil
}

// Schedule возвращает мероприятия указанного дня.
func (c *Client) Schedule(ctx context.Context, creds Credentials, date string) ([]models.ScheduleEntry, error) {
	const op = "gateway.Schedule"
	var entries []models.ScheduleEntry
	if _, err := c.do(ctx, http.MethodGet, "/schedule/:date", "/schedule/"+url.PathEscape(date), creds, nil, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}
