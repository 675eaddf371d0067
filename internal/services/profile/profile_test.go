package profile_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/profile"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) Me(ctx context.Context, creds gateway.Credentials) (models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *GatewayMock) Student(ctx context.Context, creds gateway.Credentials) (models.StudentProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StudentProfile), args.Error(1)
}

func (m *GatewayMock) Participant(ctx context.Context, creds gateway.Credentials) (models.ParticipantProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ParticipantProfile), args.Error(1)
}

func TestMe(t *testing.T) {
	t.Run("participant", func(t *testing.T) {
		gw := new(GatewayMock)
		gw.On("Me", mock.Anything).Return(models.User{Name: "Jo", Email: "jo@x.io", Role: models.RoleParticipant}, nil).Once()
		gw.On("Participant", mock.Anything).Return(models.ParticipantProfile{University: "MIT", Mess: "M1"}, nil).Once()

		p, view, err := profile.New(gw).Me(context.Background(), session.New("sid", "t1", nil))
		require.NoError(t, err)
		require.NotNil(t, p.Participant)
		assert.Equal(t, "MIT", p.Participant.University)
		assert.Nil(t, p.Student)
		assert.Equal(t, models.RoleParticipant, view.Role())
		gw.AssertNotCalled(t, "Student", mock.Anything)
	})

	t.Run("student", func(t *testing.T) {
		gw := new(GatewayMock)
		gw.On("Me", mock.Anything).Return(models.User{Name: "Al", Role: models.RoleStudent}, nil).Once()
		gw.On("Student", mock.Anything).Return(models.StudentProfile{Roll: "21CS001", Department: "CSE"}, nil).Once()

		p, _, err := profile.New(gw).Me(context.Background(), session.New("sid", "t1", nil))
		require.NoError(t, err)
		require.NotNil(t, p.Student)
		assert.Equal(t, "CSE", p.Student.Department)
	})

	t.Run("organizer has no extension", func(t *testing.T) {
		gw := new(GatewayMock)
		gw.On("Me", mock.Anything).Return(models.User{Name: "Org", Role: models.RoleOrganizer}, nil).Once()

		p, _, err := profile.New(gw).Me(context.Background(), session.New("sid", "t1", nil))
		require.NoError(t, err)
		assert.Nil(t, p.Student)
		assert.Nil(t, p.Participant)
		assert.Len(t, gw.Calls, 1)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		gw := new(GatewayMock)
		_, view, err := profile.New(gw).Me(context.Background(), session.New("sid", "", nil))
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
		assert.False(t, view.Authenticated())
		assert.Empty(t, gw.Calls)
	})

	t.Run("extension failure returns account", func(t *testing.T) {
		gw := new(GatewayMock)
		gw.On("Me", mock.Anything).Return(models.User{Name: "Al", Role: models.RoleStudent}, nil).Once()
		gw.On("Student", mock.Anything).Return(models.StudentProfile{}, &gateway.APIError{Status: http.StatusNotFound, Detail: "Student not found"}).Once()

		p, _, err := profile.New(gw).Me(context.Background(), session.New("sid", "t1", nil))
		require.Error(t, err)
		assert.Equal(t, "Al", p.Name)
	})
}
