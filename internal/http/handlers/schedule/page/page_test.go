package page

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/schedule"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

type PagerMock struct {
	mock.Mock
}

func (m *PagerMock) LoadPage(ctx context.Context, sess *session.Session, day int) (schedule.Page, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(schedule.Page), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(day string) *http.Request {
	path := "/schedule"
	if day != "" {
		path += "/" + day
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rctx := chi.NewRouteContext()
	if day != "" {
		rctx.URLParams.Add("day", day)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type body struct {
	Status   string        `json:"status"`
	Redirect string        `json:"redirect"`
	Data     schedule.Page `json:"data"`
}

func TestPageHandler_ServeHTTP(t *testing.T) {
	second := schedule.Page{
		Day:    2,
		Date:   "2024-03-02",
		Count:  5,
		Events: []models.ScheduleEntry{{Name: "Opening", StartTime: "10:00", Venue: "Hall"}},
		Links:  schedule.Paginate(2, 5),
	}
	outOfRange := schedule.Page{Day: 9, Count: 5, Events: []models.ScheduleEntry{}, Links: schedule.Paginate(9, 5)}

	tests := []struct {
		name       string
		day        string
		wantDay    int
		page       schedule.Page
		err        error
		wantStatus int
		check      func(t *testing.T, got body)
	}{
		{
			name:       "default first day",
			wantDay:    1,
			page:       schedule.Page{Day: 1, Count: 1, Events: []models.ScheduleEntry{}, Links: schedule.Paginate(1, 1)},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, got body) {
				assert.Equal(t, 1, got.Data.Day)
			},
		},
		{
			name:       "second of five",
			day:        "2",
			wantDay:    2,
			page:       second,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, got body) {
				assert.Equal(t, 1, got.Data.Links.Prev)
				assert.Equal(t, 3, got.Data.Links.Next)
				assert.Equal(t, []int{1, 2, 3, 4, 5}, got.Data.Links.Pages)
				assert.Len(t, got.Data.Events, 1)
			},
		},
		{
			name:       "out of range",
			day:        "9",
			wantDay:    9,
			page:       outOfRange,
			err:        fmt.Errorf("schedule.LoadPage: %w", schedule.ErrDayOutOfRange),
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, got body) {
				assert.Equal(t, "Error", got.Status)
				assert.Equal(t, 5, got.Data.Count)
			},
		},
		{
			name:       "no session",
			day:        "1",
			wantDay:    1,
			err:        fmt.Errorf("schedule.LoadPage: %w", session.ErrUnauthenticated),
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, got body) {
				assert.Equal(t, "/auth", got.Redirect)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(PagerMock)
			svc.On("LoadPage", mock.Anything, tt.wantDay).Return(tt.page, tt.err).Once()

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, newRequest(tt.day))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got body
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			tt.check(t, got)
			svc.AssertExpectations(t)
		})
	}
}

func TestPageHandler_NotANumber(t *testing.T) {
	svc := new(PagerMock)
	rec := httptest.NewRecorder()
	New(newNoopLogger(), svc).ServeHTTP(rec, newRequest("abc"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertNotCalled(t, "LoadPage", mock.Anything, mock.Anything)
}
