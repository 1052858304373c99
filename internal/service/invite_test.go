package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var tokenPattern = regexp.MustCompile(`token=[0-9a-f]{64}`)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestInviteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockProspectRepository)
		mailer := new(MockMailer)
		svc := NewInviteService(repo, mailer, "https://portal.example.org/")
		svc.now = fixedNow

		var created *domain.Prospect
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Prospect")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Prospect)
			}).
			Return(nil)
		mailer.On("SendInvitation", "jo@example.org", "Jo", mock.AnythingOfType("string")).Return(nil)

		inv, err := svc.Create(ctx, "admin-1", domain.ProspectCreate{
			Name:       "  Jo  ",
			Email:      "jo@example.org",
			Instrument: "viola",
			ProjectID:  "spring-tour-2026",
		})
		assert.NoError(t, err)
		assert.NotNil(t, inv)
		assert.Equal(t, created.ID, inv.ProspectID)
		assert.Regexp(t, tokenPattern, inv.ConfirmationURL)

		assert.Equal(t, "Jo", created.Name)
		assert.Equal(t, domain.ProspectStatusPending, created.Status)
		assert.Len(t, created.Token, 64)
		assert.Equal(t, fixedNow().Add(domain.InvitationTTL), created.ExpiresAt)

		repo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("mail failure does not fail creation", func(t *testing.T) {
		repo := new(MockProspectRepository)
		mailer := new(MockMailer)
		svc := NewInviteService(repo, mailer, "https://portal.example.org")

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Prospect")).Return(nil)
		mailer.On("SendInvitation", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("relay down"))

		inv, err := svc.Create(ctx, "admin-1", domain.ProspectCreate{
			Name:       "Jo",
			Email:      "jo@example.org",
			Instrument: "viola",
			ProjectID:  "spring-tour-2026",
		})
		assert.NoError(t, err)
		assert.NotNil(t, inv)
	})

	t.Run("missing instrument", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "https://portal.example.org")

		_, err := svc.Create(ctx, "admin-1", domain.ProspectCreate{
			Name:      "Jo",
			ProjectID: "spring-tour-2026",
		})
		assert.ErrorIs(t, err, domain.NewValidationError(""))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func pendingProspect(token string) *domain.Prospect {
	return &domain.Prospect{
		ID:         "p-1",
		Name:       "Jo",
		Instrument: "viola",
		ProjectID:  "spring-tour-2026",
		Status:     domain.ProspectStatusPending,
		Token:      token,
		InvitedAt:  fixedNow().Add(-24 * time.Hour),
		ExpiresAt:  fixedNow().Add(29 * 24 * time.Hour),
	}
}

func TestInviteService_Fetch(t *testing.T) {
	ctx := context.Background()
	const token = "a3f1c2d4e5b6a7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f70"

	t.Run("success", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		repo.On("Get", ctx, "p-1").Return(pendingProspect(token), nil)

		p, err := svc.Fetch(ctx, "p-1", token)
		assert.NoError(t, err)
		assert.Equal(t, "p-1", p.ID)
	})

	t.Run("unknown prospect", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		repo.On("Get", ctx, "nope").Return(nil, nil)

		_, err := svc.Fetch(ctx, "nope", token)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		repo.On("Get", ctx, "p-1").Return(pendingProspect(token), nil)

		_, err := svc.Fetch(ctx, "p-1", "0000000000000000000000000000000000000000000000000000000000000000")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expired with correct token", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		p := pendingProspect(token)
		p.ExpiresAt = fixedNow().Add(-time.Hour)
		repo.On("Get", ctx, "p-1").Return(p, nil)

		_, err := svc.Fetch(ctx, "p-1", token)
		assert.ErrorIs(t, err, domain.ErrExpired)
	})

	t.Run("already responded", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		p := pendingProspect(token)
		p.Status = domain.ProspectStatusDeclined
		repo.On("Get", ctx, "p-1").Return(p, nil)

		_, err := svc.Fetch(ctx, "p-1", token)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, domain.ProspectStatusDeclined, conflict.CurrentStatus)
	})
}

func TestInviteService_Confirm(t *testing.T) {
	ctx := context.Background()
	const token = "a3f1c2d4e5b6a7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f70"

	t.Run("confirm stamps responder email", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		confirmed := pendingProspect(token)
		confirmed.Status = domain.ProspectStatusConfirmed

		repo.On("Get", ctx, "p-1").Return(pendingProspect(token), nil)
		repo.On("Transition", ctx, "p-1", domain.ProspectTransition{
			Status:         domain.ProspectStatusConfirmed,
			At:             fixedNow(),
			ResponderEmail: "jo@example.org",
		}).Return(confirmed, nil)

		p, err := svc.Confirm(ctx, domain.ProspectConfirm{
			ProspectID:     "p-1",
			Token:          token,
			Decision:       "confirmed",
			ResponderEmail: "jo@example.org",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ProspectStatusConfirmed, p.Status)
		repo.AssertExpectations(t)
	})

	t.Run("invalid decision", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		repo.On("Get", ctx, "p-1").Return(pendingProspect(token), nil)

		_, err := svc.Confirm(ctx, domain.ProspectConfirm{
			ProspectID: "p-1",
			Token:      token,
			Decision:   "maybe",
		})
		assert.ErrorIs(t, err, domain.NewValidationError(""))
		repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race reports winner's state", func(t *testing.T) {
		repo := new(MockProspectRepository)
		svc := NewInviteService(repo, new(MockMailer), "")
		svc.now = fixedNow

		won := pendingProspect(token)
		won.Status = domain.ProspectStatusConfirmed

		repo.On("Get", ctx, "p-1").Return(pendingProspect(token), nil).Once()
		repo.On("Transition", ctx, "p-1", mock.AnythingOfType("domain.ProspectTransition")).
			Return(nil, nil)
		repo.On("Get", ctx, "p-1").Return(won, nil).Once()

		_, err := svc.Confirm(ctx, domain.ProspectConfirm{
			ProspectID: "p-1",
			Token:      token,
			Decision:   "declined",
		})
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, domain.ProspectStatusConfirmed, conflict.CurrentStatus)
	})
}
