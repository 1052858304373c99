package service

import (
	"context"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

// MockProspectRepository mocks the ProspectRepository interface
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) Create(ctx context.Context, p *domain.Prospect) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProspectRepository) Get(ctx context.Context, id string) (*domain.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prospect), args.Error(1)
}

func (m *MockProspectRepository) Transition(ctx context.Context, id string, t domain.ProspectTransition) (*domain.Prospect, error) {
	args := m.Called(ctx, id, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prospect), args.Error(1)
}

// MockIntakeRepository mocks the IntakeRepository interface
type MockIntakeRepository struct {
	mock.Mock
}

func (m *MockIntakeRepository) CreateStaffRequest(ctx context.Context, r *domain.StaffRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockIntakeRepository) CreateBookingRequest(ctx context.Context, r *domain.BookingRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockIntakeRepository) ListStaffRequests(ctx context.Context, status domain.RequestStatus, limit int) ([]domain.StaffRequest, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]domain.StaffRequest), args.Error(1)
}

// MockDonationRepository mocks the DonationRepository interface
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) CreateDonation(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) ListDonations(ctx context.Context, limit int) ([]domain.Donation, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetCustomer(ctx context.Context, subjectID string) (*domain.CustomerMapping, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerMapping), args.Error(1)
}

func (m *MockDonationRepository) EnsureCustomer(ctx context.Context, c *domain.CustomerMapping) (*domain.CustomerMapping, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerMapping), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) SetRole(ctx context.Context, uid string, role domain.Role) error {
	args := m.Called(ctx, uid, role)
	return args.Error(0)
}

// MockCredentialRepository mocks the CredentialRepository interface
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Upsert(ctx context.Context, c *domain.IntegrationCredential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCredentialRepository) Get(ctx context.Context, provider string) (*domain.IntegrationCredential, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationCredential), args.Error(1)
}

func (m *MockCredentialRepository) List(ctx context.Context) ([]domain.IntegrationCredential, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.IntegrationCredential), args.Error(1)
}

func (m *MockCredentialRepository) Delete(ctx context.Context, provider string) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

// MockRosterRepository mocks the RosterRepository interface
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	args := m.Called(ctx, emails)
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockPaymentGateway mocks the PaymentGateway interface
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCustomer(ctx context.Context, email, subjectID string) (string, error) {
	args := m.Called(ctx, email, subjectID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, customerID, subjectID string) (string, string, error) {
	args := m.Called(ctx, customerID, subjectID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WebhookEvent), args.Error(1)
}

// MockSearchBridge mocks the SearchBridge interface
type MockSearchBridge struct {
	mock.Mock
}

func (m *MockSearchBridge) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSearchBridge) Scopes() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSearchBridge) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockSearchBridge) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockSearchBridge) SearchMail(ctx context.Context, tok *oauth2.Token, query string, maxResults int64) ([]domain.Candidate, error) {
	args := m.Called(ctx, tok, query, maxResults)
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockSearchBridge) SearchDrive(ctx context.Context, tok *oauth2.Token, query string, maxResults int64) ([]domain.Candidate, error) {
	args := m.Called(ctx, tok, query, maxResults)
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

// MockMailer mocks the mail.Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendInvitation(to, name, confirmationURL string) error {
	args := m.Called(to, name, confirmationURL)
	return args.Error(0)
}
