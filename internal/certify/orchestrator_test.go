package certify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *model.Event {
	return &model.Event{
		ID:            "event-1",
		Title:         "Tech Fest 2026",
		Venue:         "Main Auditorium",
		OrganiserName: "Tech Committee",
		EventDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testAttendee(id string, email string) *model.Attendance {
	return &model.Attendance{
		EventID: "event-1",
		UserID:  id,
		Status:  model.AttendancePresent,
		User: &model.User{
			ID:        id,
			FirstName: "User",
			LastName:  id,
			Email:     email,
		},
	}
}

type testHarness struct {
	service  *Service
	events   *MockEventStore
	certs    *MockCertificateStore
	renderer *MockRenderer
	mailer   *MockMailer

	sentMarked bool
	saved      map[string]*model.Certificate
}

func newTestHarness(t *testing.T, attendances []*model.Attendance) *testHarness {
	t.Helper()

	h := &testHarness{saved: map[string]*model.Certificate{}}

	h.events = &MockEventStore{
		GetByIdFunc: func(eventId string) (*model.Event, error) {
			if eventId == "event-1" {
				return testEvent(), nil
			}
			return nil, nil
		},
		MarkCertificatesSentFunc: func(eventId string, at time.Time) error {
			h.sentMarked = true
			return nil
		},
	}

	h.certs = &MockCertificateStore{
		GetByEventAndUserFunc: func(eventId string, userId string) (*model.Certificate, error) {
			return h.saved[userId], nil
		},
		CreateFunc: func(cert *model.Certificate) error {
			h.saved[cert.UserID] = cert
			return nil
		},
		SaveFunc: func(cert *model.Certificate) error {
			h.saved[cert.UserID] = cert
			return nil
		},
	}

	h.renderer = &MockRenderer{}
	h.mailer = &MockMailer{}

	h.service = &Service{
		Events: h.events,
		Attendance: &MockAttendanceStore{
			ListPresentWithUsersFunc: func(eventId string) ([]*model.Attendance, error) {
				return attendances, nil
			},
		},
		Certificates: h.certs,
		Settings:     &MockSettingsStore{},
		Users:        &MockUserStore{},
		Templates:    NewTemplateStore(writeTemplates(t, 1)),
		Renderer:     h.renderer,
		Mailer:       h.mailer,
		OutputDir:    t.TempDir(),
	}

	return h
}

func TestGenerateForEvent_NoAttendees(t *testing.T) {
	h := newTestHarness(t, nil)

	result, err := h.service.GenerateForEvent(context.Background(), "event-1", Options{})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No present attendees found", result.Message)
	assert.Empty(t, result.Results)
	assert.False(t, h.sentMarked, "empty batch must not flip the sent flag")
}

func TestGenerateForEvent_SkipsAlreadySent(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "u1@example.com")})
	h.saved["u1"] = &model.Certificate{
		CertificateID:  "CERT-20260301-01-1234",
		EventID:        "event-1",
		UserID:         "u1",
		DeliveryStatus: model.DeliverySent,
	}

	result, err := h.service.GenerateForEvent(context.Background(), "event-1", Options{SendEmail: true})

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "skipped", result.Results[0].Status)
	assert.Zero(t, h.renderer.Calls, "skipped attendee must not trigger a PDF render")
	assert.Empty(t, h.mailer.Sent)
}

func TestGenerateForEvent_ForceRegenerateRerenders(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "u1@example.com")})
	h.saved["u1"] = &model.Certificate{
		CertificateID:  "CERT-20260301-01-1234",
		EventID:        "event-1",
		UserID:         "u1",
		DeliveryStatus: model.DeliverySent,
	}

	result, err := h.service.GenerateForEvent(context.Background(), "event-1", Options{SendEmail: true, ForceRegenerate: true})

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "success", result.Results[0].Status)
	assert.Equal(t, 1, h.renderer.Calls)
	assert.Equal(t, "CERT-20260301-01-1234", h.saved["u1"].CertificateID, "existing certificate id is reused")
}

func TestGenerateForEvent_PartialFailure(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{
		testAttendee("u1", "u1@example.com"),
		testAttendee("u2", "u2@example.com"),
		testAttendee("u3", "u3@example.com"),
	})
	h.mailer.SendCertificateFunc = func(req SendRequest) error {
		if req.To == "u2@example.com" {
			return &DeliveryError{Err: errors.New("smtp timeout")}
		}
		return nil
	}

	result, err := h.service.GenerateForEvent(context.Background(), "event-1", Options{SendEmail: true})

	require.NoError(t, err)
	require.Len(t, result.Results, 3)

	var success, failed int
	for _, r := range result.Results {
		switch r.Status {
		case "success":
			success++
		case "failed":
			failed++
		}
	}
	assert.Equal(t, 2, success)
	assert.Equal(t, 1, failed, "one bad record never aborts the batch")

	assert.True(t, h.sentMarked, "sent flag is set even with individual failures")

	failedCert := h.saved["u2"]
	require.NotNil(t, failedCert)
	assert.Equal(t, model.DeliveryFailed, failedCert.DeliveryStatus)
	assert.Equal(t, 1, failedCert.RetryCount)
	assert.NotEmpty(t, failedCert.FailureReason)
	assert.NotNil(t, failedCert.LastAttemptAt)
}

func TestGenerateForEvent_NoEmailAddressStaysPending(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{testAttendee("u1", "")})

	result, err := h.service.GenerateForEvent(context.Background(), "event-1", Options{SendEmail: true})

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "success", result.Results[0].Status)
	assert.Equal(t, model.DeliveryPending, result.Results[0].DeliveryStatus)
	assert.Empty(t, h.mailer.Sent)
}

func TestGenerateForEvent_RenderErrorRecordedAndContinues(t *testing.T) {
	h := newTestHarness(t, []*model.Attendance{
		testAttendee("u1", "u1@example.com"),
		testAttendee("u2", "u2@example.com"),
	})
	h.renderer.RenderPDFFunc = func(ctx context.Context, html string, out string) ([]byte, error) {
		if h.renderer.Calls == 1 {
			return nil, errors.New("chrome crashed")
		}
		return []byte("%PDF"), nil
	}

	result, err := h.service.GenerateForEvent(context.Background(), "event-1", Options{SendEmail: true})

	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "failed", result.Results[0].Status)
	assert.Equal(t, "success", result.Results[1].Status)
	assert.True(t, h.sentMarked)
}

func TestResendFailed_RespectsRetryCeiling(t *testing.T) {
	h := newTestHarness(t, nil)

	var requestedMax int
	h.certs.ListFailedForRetryFunc = func(eventId string, maxRetries int) ([]*model.Certificate, error) {
		requestedMax = maxRetries
		// The store filters on retryCount < maxRetries; only the
		// under-ceiling record comes back.
		return []*model.Certificate{
			{
				CertificateID:  "CERT-20260301-02-2222",
				EventID:        "event-1",
				UserID:         "u1",
				RetryCount:     1,
				DeliveryStatus: model.DeliveryFailed,
				User:           &model.User{ID: "u1", FirstName: "User", Email: "u1@example.com"},
			},
		}, nil
	}

	result, err := h.service.ResendFailed(context.Background(), "event-1")

	require.NoError(t, err)
	assert.Equal(t, 3, requestedMax, "candidate set is bounded by the retry ceiling")
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, model.DeliverySent, h.saved["u1"].DeliveryStatus)
}

func TestResendFailed_FailureIncrementsRetry(t *testing.T) {
	h := newTestHarness(t, nil)
	h.certs.ListFailedForRetryFunc = func(eventId string, maxRetries int) ([]*model.Certificate, error) {
		return []*model.Certificate{
			{
				CertificateID:  "CERT-20260301-03-3333",
				EventID:        "event-1",
				UserID:         "u1",
				RetryCount:     2,
				DeliveryStatus: model.DeliveryFailed,
				User:           &model.User{ID: "u1", FirstName: "User", Email: "u1@example.com"},
			},
		}, nil
	}
	h.mailer.SendCertificateFunc = func(req SendRequest) error {
		return &DeliveryError{Err: errors.New("mailbox full")}
	}

	result, err := h.service.ResendFailed(context.Background(), "event-1")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 3, h.saved["u1"].RetryCount)
	assert.Equal(t, model.DeliveryFailed, h.saved["u1"].DeliveryStatus)
}

func TestResendSingle_RegeneratesMissingPDF(t *testing.T) {
	h := newTestHarness(t, nil)
	h.saved["u1"] = &model.Certificate{
		CertificateID:  "CERT-20260301-04-4444",
		EventID:        "event-1",
		UserID:         "u1",
		DeliveryStatus: model.DeliveryFailed,
		PdfPath:        "/nonexistent/cert.pdf",
	}
	h.service.Users = &MockUserStore{
		GetByIdFunc: func(userId string) (*model.User, error) {
			return &model.User{ID: userId, FirstName: "User", Email: "u1@example.com"}, nil
		},
	}

	err := h.service.ResendSingle(context.Background(), "event-1", "u1")

	require.NoError(t, err)
	assert.Equal(t, 1, h.renderer.Calls, "missing PDF file triggers regeneration")
	require.Len(t, h.mailer.Sent, 1)
	assert.Equal(t, model.DeliverySent, h.saved["u1"].DeliveryStatus)
}

func TestResendSingle_UnknownCertificate(t *testing.T) {
	h := newTestHarness(t, nil)

	err := h.service.ResendSingle(context.Background(), "event-1", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPreview_DummyData(t *testing.T) {
	h := newTestHarness(t, nil)

	html, certificateId, err := h.service.Preview(PreviewRequest{Dummy: true})

	require.NoError(t, err)
	assert.Contains(t, html, "John Doe")
	assert.Regexp(t, certIDFormat, certificateId)
	assert.NotContains(t, html, "{{", "all placeholders must be resolved or blanked")
}
