package certify

import (
	"errors"
	"testing"
	"time"

	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"github.com/stretchr/testify/assert"
)

func TestRunAutoSend_ProcessesEachPendingEventOnce(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "u1@example.com")})

	processed := map[string]int{}
	h.events.ListAutoSendPendingFunc = func(now time.Time) ([]*model.Event, error) {
		return []*model.Event{testEvent()}, nil
	}
	h.events.ClaimForProcessingFunc = func(eventId string, at time.Time) (bool, error) {
		processed[eventId]++
		return true, nil
	}

	RunAutoSend(h.service)

	assert.Equal(t, 1, processed["event-1"])
	assert.Equal(t, 1, h.renderer.Calls)
	assert.Len(t, h.mailer.Sent, 1, "auto-send runs with email delivery on")
	assert.True(t, h.sentMarked)
}

func TestRunAutoSend_SkipsUnclaimedEvent(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "u1@example.com")})

	h.events.ListAutoSendPendingFunc = func(now time.Time) ([]*model.Event, error) {
		return []*model.Event{testEvent()}, nil
	}
	h.events.ClaimForProcessingFunc = func(eventId string, at time.Time) (bool, error) {
		return false, nil
	}

	RunAutoSend(h.service)

	assert.Zero(t, h.renderer.Calls, "an event claimed elsewhere must not be processed")
	assert.Empty(t, h.mailer.Sent)
	assert.False(t, h.sentMarked)
}

func TestRunAutoSend_ContinuesPastFailingEvent(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "u1@example.com")})

	broken := testEvent()
	broken.ID = "event-broken"

	h.events.ListAutoSendPendingFunc = func(now time.Time) ([]*model.Event, error) {
		return []*model.Event{broken, testEvent()}, nil
	}
	h.events.GetByIdFunc = func(eventId string) (*model.Event, error) {
		if eventId == "event-broken" {
			return nil, errors.New("connection reset")
		}
		return testEvent(), nil
	}

	RunAutoSend(h.service)

	assert.Equal(t, 1, h.renderer.Calls, "the healthy event still runs after the broken one")
	assert.Len(t, h.mailer.Sent, 1)
}

func TestRunAutoSend_QueryErrorIsFatalForTheRun(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "u1@example.com")})

	h.events.ListAutoSendPendingFunc = func(now time.Time) ([]*model.Event, error) {
		return nil, errors.New("db down")
	}

	RunAutoSend(h.service)

	assert.Zero(t, h.renderer.Calls)
}
