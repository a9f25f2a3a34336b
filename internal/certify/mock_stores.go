package certify

import (
	"context"
	"time"

	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

// Function-field mocks for the pipeline collaborators, used by tests.

type MockEventStore struct {
	GetByIdFunc              func(eventId string) (*model.Event, error)
	MarkCertificatesSentFunc func(eventId string, at time.Time) error
	ListAutoSendPendingFunc  func(now time.Time) ([]*model.Event, error)
	ClaimForProcessingFunc   func(eventId string, at time.Time) (bool, error)
}

var _ EventStore = (*MockEventStore)(nil)

func (m *MockEventStore) GetById(eventId string) (*model.Event, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(eventId)
	}
	return nil, nil
}

func (m *MockEventStore) MarkCertificatesSent(eventId string, at time.Time) error {
	if m.MarkCertificatesSentFunc != nil {
		return m.MarkCertificatesSentFunc(eventId, at)
	}
	return nil
}

func (m *MockEventStore) ListAutoSendPending(now time.Time) ([]*model.Event, error) {
	if m.ListAutoSendPendingFunc != nil {
		return m.ListAutoSendPendingFunc(now)
	}
	return nil, nil
}

func (m *MockEventStore) ClaimForProcessing(eventId string, at time.Time) (bool, error) {
	if m.ClaimForProcessingFunc != nil {
		return m.ClaimForProcessingFunc(eventId, at)
	}
	return true, nil
}

type MockAttendanceStore struct {
	ListPresentWithUsersFunc func(eventId string) ([]*model.Attendance, error)
}

var _ AttendanceStore = (*MockAttendanceStore)(nil)

func (m *MockAttendanceStore) ListPresentWithUsers(eventId string) ([]*model.Attendance, error) {
	if m.ListPresentWithUsersFunc != nil {
		return m.ListPresentWithUsersFunc(eventId)
	}
	return nil, nil
}

type MockCertificateStore struct {
	GetByEventAndUserFunc      func(eventId string, userId string) (*model.Certificate, error)
	ExistsByCertificateIdFunc  func(certificateId string) (bool, error)
	CreateFunc                 func(cert *model.Certificate) error
	SaveFunc                   func(cert *model.Certificate) error
	ListFailedForRetryFunc     func(eventId string, maxRetries int) ([]*model.Certificate, error)
}

var _ CertificateStore = (*MockCertificateStore)(nil)

func (m *MockCertificateStore) GetByEventAndUser(eventId string, userId string) (*model.Certificate, error) {
	if m.GetByEventAndUserFunc != nil {
		return m.GetByEventAndUserFunc(eventId, userId)
	}
	return nil, nil
}

func (m *MockCertificateStore) ExistsByCertificateId(certificateId string) (bool, error) {
	if m.ExistsByCertificateIdFunc != nil {
		return m.ExistsByCertificateIdFunc(certificateId)
	}
	return false, nil
}

func (m *MockCertificateStore) Create(cert *model.Certificate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(cert)
	}
	return nil
}

func (m *MockCertificateStore) Save(cert *model.Certificate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(cert)
	}
	return nil
}

func (m *MockCertificateStore) ListFailedForRetry(eventId string, maxRetries int) ([]*model.Certificate, error) {
	if m.ListFailedForRetryFunc != nil {
		return m.ListFailedForRetryFunc(eventId, maxRetries)
	}
	return nil, nil
}

type MockSettingsStore struct {
	GetByEventFunc func(eventId string) (*model.CertificateSetting, error)
}

var _ SettingsStore = (*MockSettingsStore)(nil)

func (m *MockSettingsStore) GetByEvent(eventId string) (*model.CertificateSetting, error) {
	if m.GetByEventFunc != nil {
		return m.GetByEventFunc(eventId)
	}
	return nil, nil
}

type MockUserStore struct {
	GetByIdFunc func(userId string) (*model.User, error)
}

var _ UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) GetById(userId string) (*model.User, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(userId)
	}
	return nil, nil
}

type MockRenderer struct {
	RenderPDFFunc func(ctx context.Context, htmlContent string, outputPath string) ([]byte, error)
	Calls         int
}

var _ PDFRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) RenderPDF(ctx context.Context, htmlContent string, outputPath string) ([]byte, error) {
	m.Calls++
	if m.RenderPDFFunc != nil {
		return m.RenderPDFFunc(ctx, htmlContent, outputPath)
	}
	return []byte("%PDF-1.4 mock"), nil
}

type MockMailer struct {
	SendCertificateFunc func(req SendRequest) error
	Sent                []SendRequest
}

var _ Mailer = (*MockMailer)(nil)

func (m *MockMailer) SendCertificate(req SendRequest) error {
	m.Sent = append(m.Sent, req)
	if m.SendCertificateFunc != nil {
		return m.SendCertificateFunc(req)
	}
	return nil
}
