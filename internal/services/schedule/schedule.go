// Package schedule постранично показывает расписание: одна страница — один день.
// Номер страницы 1-based и указывает на дату в упорядоченном бэкендом списке.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// ErrDayOutOfRange — номер дня вне диапазона 1..Count.
var ErrDayOutOfRange = errors.New("schedule day out of range")

// Gateway — вызовы бэкенда для расписания.
type Gateway interface {
	ScheduleDates(ctx context.Context, creds gateway.Credentials) ([]string, error)
	Schedule(ctx context.Context, creds gateway.Credentials, date string) ([]models.ScheduleEntry, error)
}

// Links — ссылки пагинации.
type Links struct {
	Prev   int   `json:"prev"`
	Next   int   `json:"next"`
	Active int   `json:"active"`
	Pages  []int `json:"pages"`
}

// Page — страница расписания.
type Page struct {
	Day    int                    `json:"day"`
	Date   string                 `json:"date,omitempty"`
	Count  int                    `json:"count"`
	Events []models.ScheduleEntry `json:"events"`
	Links  Links                  `json:"links"`
}

// Paginate строит ссылки для дня day из count. Ссылки не выходят за 1..count,
// а при пустом расписании указывают на первую страницу.
func Paginate(day, count int) Links {
	pages := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		pages = append(pages, i)
	}
	return Links{
		Prev:   max(min(day-1, count), 1),
		Next:   max(min(day+1, count), 1),
		Active: day,
		Pages:  pages,
	}
}

// Pager загружает страницы расписания.
type Pager struct {
	gw Gateway
}

// NewPager создаёт Pager.
func NewPager(gw Gateway) *Pager {
	return &Pager{gw: gw}
}

// LoadPage загружает день day. Номер вне диапазона возвращает ErrDayOutOfRange
// вместе со страницей, у которой заполнены Count и Links.
func (p *Pager) LoadPage(ctx context.Context, sess *session.Session, day int) (Page, error) {
	const op = "schedule.LoadPage"
	if !sess.Authenticated() {
		return Page{}, fmt.Errorf("%s: %w", op, session.ErrUnauthenticated)
	}

	dates, err := p.gw.ScheduleDates(ctx, sess)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}

	page := Page{
		Day:    day,
		Count:  len(dates),
		Events: []models.ScheduleEntry{},
		Links:  Paginate(day, len(dates)),
	}
	if day < 1 || day > len(dates) {
		return page, fmt.Errorf("%s: day %d of %d: %w", op, day, len(dates), ErrDayOutOfRange)
	}

	page.Date = dates[day-1]
	entries, err := p.gw.Schedule(ctx, sess, page.Date)
	if err != nil {
		return page, fmt.Errorf("%s: %w", op, err)
	}
	if entries != nil {
		page.Events = entries
	}
	return page, nil
}
