package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/middleware"
	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
	"github.com/iliyamo/lecture-hall-booking/internal/service"
)

type eventServiceMock struct{ mock.Mock }

func (m *eventServiceMock) CreateEvent(ctx context.Context, a model.Actor, in service.CreateEventInput) (*service.StatusResult, error) {
	args := m.Called(a, in)
	res, _ := args.Get(0).(*service.StatusResult)
	return res, args.Error(1)
}

func (m *eventServiceMock) SetStatus(ctx context.Context, a model.Actor, id uint64, status string) (*service.StatusResult, error) {
	args := m.Called(a, id, status)
	res, _ := args.Get(0).(*service.StatusResult)
	return res, args.Error(1)
}

func (m *eventServiceMock) UserEvents(ctx context.Context, a model.Actor) ([]repository.EventSummary, error) {
	args := m.Called(a)
	res, _ := args.Get(0).([]repository.EventSummary)
	return res, args.Error(1)
}

func (m *eventServiceMock) AllEvents(ctx context.Context, a model.Actor) ([]repository.EventSummary, error) {
	args := m.Called(a)
	res, _ := args.Get(0).([]repository.EventSummary)
	return res, args.Error(1)
}

func (m *eventServiceMock) EventsByStatus(ctx context.Context, a model.Actor, status string) ([]repository.EventSummary, error) {
	args := m.Called(a, status)
	res, _ := args.Get(0).([]repository.EventSummary)
	return res, args.Error(1)
}

func (m *eventServiceMock) EventByID(ctx context.Context, a model.Actor, id uint64) (*repository.EventDetail, error) {
	args := m.Called(a, id)
	res, _ := args.Get(0).(*repository.EventDetail)
	return res, args.Error(1)
}

func (m *eventServiceMock) ConfirmedEvents(ctx context.Context) ([]repository.EventSummary, error) {
	args := m.Called()
	res, _ := args.Get(0).([]repository.EventSummary)
	return res, args.Error(1)
}

var prof = model.Actor{ID: 3, Role: model.RoleProfessor}

// do runs h on a fresh context, passes a returned error through echo's
// error handler and returns the recorder.
func do(t *testing.T, h echo.HandlerFunc, method, target, body string, actor *model.Actor, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names, values := []string{}, []string{}
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if actor != nil {
		middleware.SetActor(c, *actor)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreateEvent(t *testing.T) {
	svc := new(eventServiceMock)
	h := NewEventHandler(svc, zap.NewNop())
	body := `{"type":"Lecture","hallCode":"L1","dateStart":"2025-03-10","dateEnd":"2025-03-10",
        "timeSlots":[{"day":"2025-03-10","start":"09:00","end":"10:00"}]}`
	svc.On("CreateEvent", prof, mock.MatchedBy(func(in service.CreateEventInput) bool {
		return in.HallCode == "L1" && len(in.Slots) == 1 && in.Slots[0].Start == "09:00"
	})).Return(&service.StatusResult{EventID: 11, Status: model.StatusPending}, nil).Once()

	rec := do(t, h.Create, http.MethodPost, "/api/events", body, &prof)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"eventId":11,"status":"PENDING"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestCreateEvent_ValidationBeforeService(t *testing.T) {
	svc := new(eventServiceMock)
	h := NewEventHandler(svc, zap.NewNop())

	rec := do(t, h.Create, http.MethodPost, "/api/events", `{"type":"Lecture","hallCode":"L1","dateStart":"2025-03-10","dateEnd":"2025-03-10","timeSlots":[]}`, &prof)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"validation_failed"`)

	rec = do(t, h.Create, http.MethodPost, "/api/events", `{not json`, &prof)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.Create, http.MethodPost, "/api/events", `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{fmt.Errorf("%w: bad", service.ErrValidation), http.StatusBadRequest, "validation_failed"},
		{fmt.Errorf("%w: no", service.ErrAccessDenied), http.StatusForbidden, "access_denied"},
		{fmt.Errorf("%w: gone", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: CANCELLED to CONFIRMED", service.ErrInvalidTransition), http.StatusConflict, "invalid_transition"},
		{fmt.Errorf("%w: update status: %w", service.ErrStoreFailure, errors.New("deadlock")), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			svc := new(eventServiceMock)
			h := NewEventHandler(svc, zap.NewNop())
			svc.On("SetStatus", prof, uint64(7), "CONFIRMED").Return(nil, tc.err)

			rec := do(t, h.SetStatus, http.MethodPatch, "/api/events/7/status", `{"status":"CONFIRMED"}`, &prof, "id", "7")
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tc.body+`"`)
			assert.NotContains(t, rec.Body.String(), "deadlock")
		})
	}
}

func TestSetStatus_BadID(t *testing.T) {
	h := NewEventHandler(new(eventServiceMock), zap.NewNop())
	rec := do(t, h.SetStatus, http.MethodPatch, "/api/events/x/status", `{"status":"CONFIRMED"}`, &prof, "id", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadEndpoints(t *testing.T) {
	svc := new(eventServiceMock)
	h := NewEventHandler(svc, zap.NewNop())
	d, _ := model.ParseDate("2025-03-10")
	summary := repository.EventSummary{
		Event:         model.Event{ID: 1, Type: "Lecture", HallCode: "L1", Status: model.StatusConfirmed, DateStart: d, DateEnd: d},
		RequesterID:   3,
		RequesterName: "Prof",
		TimeSlots:     "2025-03-10 09:00:00-10:00:00",
	}
	svc.On("ConfirmedEvents").Return([]repository.EventSummary{summary}, nil)
	svc.On("UserEvents", prof).Return([]repository.EventSummary{}, nil)
	svc.On("EventsByStatus", prof, "pending").Return(nil, fmt.Errorf("%w: nope", service.ErrAccessDenied))
	svc.On("EventByID", prof, uint64(1)).Return(&repository.EventDetail{Event: summary.Event, Slots: []model.TimeSlot{}}, nil)

	rec := do(t, h.Confirmed, http.MethodGet, "/api/events/confirmed", "", &prof)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dateStart":"2025-03-10"`)
	assert.Contains(t, rec.Body.String(), `"timeSlots":"2025-03-10 09:00:00-10:00:00"`)

	rec = do(t, h.Mine, http.MethodGet, "/api/events/user", "", &prof)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = do(t, h.ByStatus, http.MethodGet, "/api/events/status/pending", "", &prof, "status", "pending")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h.Get, http.MethodGet, "/api/events/1", "", &prof, "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"eventId":1`)
	svc.AssertExpectations(t)
}
