package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/security"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Search kinds accepted by outreach search.
const (
	SearchKindMail  = "mail"
	SearchKindDrive = "drive"
)

const (
	defaultSearchResults = 20
	maxSearchResults     = 50
	searchTimeout        = 30 * time.Second
)

// StateStore holds single-use OAuth state nonces between the connect call
// and the provider callback.
type StateStore interface {
	Put(ctx context.Context, state, subjectID string) error
	Take(ctx context.Context, state string) (string, bool, error)
}

// SearchBridge abstracts the external mailbox/drive provider.
type SearchBridge interface {
	Configured() bool
	Scopes() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	SearchMail(ctx context.Context, tok *oauth2.Token, query string, maxResults int64) ([]domain.Candidate, error)
	SearchDrive(ctx context.Context, tok *oauth2.Token, query string, maxResults int64) ([]domain.Candidate, error)
}

// SearchResult is the outreach search response: every hit tagged against the
// current roster, plus the split counts.
type SearchResult struct {
	Results  []domain.Candidate `json:"results"`
	Total    int                `json:"total"`
	New      int                `json:"new"`
	Existing int                `json:"existing"`
}

// IntegrationService owns the OAuth connect flow, grant storage, and
// roster-aware outreach search.
type IntegrationService struct {
	bridge      SearchBridge
	credentials domain.CredentialRepository
	roster      domain.RosterRepository
	states      StateStore
	encryptor   *security.Encryptor
	now         func() time.Time
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(bridge SearchBridge, credentials domain.CredentialRepository, roster domain.RosterRepository, states StateStore, encryptor *security.Encryptor) *IntegrationService {
	return &IntegrationService{
		bridge:      bridge,
		credentials: credentials,
		roster:      roster,
		states:      states,
		encryptor:   encryptor,
		now:         time.Now,
	}
}

// BeginConnect starts the OAuth consent flow. The returned URL carries a
// single-use state nonce bound to the initiating admin.
func (s *IntegrationService) BeginConnect(ctx context.Context, subjectID string) (string, error) {
	if !s.bridge.Configured() {
		return "", fmt.Errorf("%w: oauth client is not configured", domain.ErrServiceDown)
	}

	state := uuid.NewString()
	if err := s.states.Put(ctx, state, subjectID); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return s.bridge.AuthURL(state), nil
}

// CompleteConnect finishes the OAuth flow: the state nonce is consumed, the
// code is exchanged, and the token pair is stored encrypted. One grant per
// provider; a reconnect replaces the previous grant.
func (s *IntegrationService) CompleteConnect(ctx context.Context, state, code string) error {
	if state == "" || code == "" {
		return domain.NewValidationError("state and code are required")
	}

	ownerID, ok, err := s.states.Take(ctx, state)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewValidationError("unknown or expired oauth state")
	}

	tok, err := s.bridge.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrUpstream, err)
	}

	accessCipher, err := s.encryptor.EncryptString(tok.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refreshCipher := ""
	if tok.RefreshToken != "" {
		refreshCipher, err = s.encryptor.EncryptString(tok.RefreshToken)
		if err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
	}

	now := s.now()
	cred := &domain.IntegrationCredential{
		ID:           uuid.NewString(),
		Provider:     domain.ProviderGoogle,
		OwnerID:      ownerID,
		Scope:        s.bridge.Scopes(),
		AccessToken:  accessCipher,
		RefreshToken: refreshCipher,
		Expiry:       tok.Expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.credentials.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	log.Info().
		Str("provider", cred.Provider).
		Str("owner_id", ownerID).
		Msg("Integration connected")

	return nil
}

// ListIntegrations returns stored grants with token material redacted.
func (s *IntegrationService) ListIntegrations(ctx context.Context) ([]domain.IntegrationCredential, error) {
	return s.credentials.List(ctx)
}

// Disconnect removes a stored grant.
func (s *IntegrationService) Disconnect(ctx context.Context, provider string) error {
	if err := s.credentials.Delete(ctx, provider); err != nil {
		return err
	}
	log.Info().Str("provider", provider).Msg("Integration disconnected")
	return nil
}

// Search runs a keyword search against the connected mailbox or drive and
// cross-references every hit against the roster. Hits whose email already
// appears in the roster are tagged existing, the rest new.
func (s *IntegrationService) Search(ctx context.Context, kind, query string, maxResults int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("query is required")
	}
	if kind != SearchKindMail && kind != SearchKindDrive {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown search kind %q", kind))
	}
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	tok, err := s.loadToken(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	var candidates []domain.Candidate
	switch kind {
	case SearchKindMail:
		candidates, err = s.bridge.SearchMail(ctx, tok, query, int64(maxResults))
	case SearchKindDrive:
		candidates, err = s.bridge.SearchDrive(ctx, tok, query, int64(maxResults))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, err)
	}

	emails := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if !seen[c.Email] {
			seen[c.Email] = true
			emails = append(emails, c.Email)
		}
	}

	existing, err := s.roster.ExistingEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("failed to cross-reference roster: %w", err)
	}

	result := &SearchResult{Results: make([]domain.Candidate, 0, len(candidates))}
	for _, c := range candidates {
		c.IsNew = !existing[c.Email]
		if c.IsNew {
			result.New++
		} else {
			result.Existing++
		}
		result.Results = append(result.Results, c)
	}
	result.Total = len(result.Results)

	return result, nil
}

// loadToken fetches and decrypts the stored grant for the provider.
func (s *IntegrationService) loadToken(ctx context.Context) (*oauth2.Token, error) {
	cred, err := s.credentials.Get(ctx, domain.ProviderGoogle)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: no google integration connected", domain.ErrNotFound)
	}

	access, err := s.encryptor.DecryptString(cred.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	refresh := ""
	if cred.RefreshToken != "" {
		refresh, err = s.encryptor.DecryptString(cred.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
		}
	}

	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		Expiry:       cred.Expiry,
		TokenType:    "Bearer",
	}, nil
}
