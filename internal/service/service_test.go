package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/clock"
	"github.com/iliyamo/lecture-hall-booking/internal/queue"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
)

type notifierMock struct{ mock.Mock }

func (m *notifierMock) Publish(ctx context.Context, n queue.EventNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

var hallCols = []string{"code", "capacity", "projectors", "blackboards", "whiteboards", "edupad"}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, m, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, m
}

func newEventService(t *testing.T) (*EventService, sqlmock.Sqlmock, *notifierMock) {
	t.Helper()
	db, m := newDB(t)
	n := new(notifierMock)
	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := NewEventService(repository.NewEventRepo(db), repository.NewHallRepo(db), n, clk, zap.NewNop())
	return svc, m, n
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
