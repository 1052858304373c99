package google

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/beamcollective/portal-api/internal/config"
	"github.com/beamcollective/portal-api/internal/domain"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Bridge wraps the Google OAuth flow and keyword search against a connected
// Gmail mailbox and Drive account.
type Bridge struct {
	conf *oauth2.Config
}

// NewBridge creates a bridge from OAuth client configuration.
func NewBridge(cfg config.GoogleConfig) *Bridge {
	return &Bridge{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				gmail.GmailReadonlyScope,
				drive.DriveReadonlyScope,
			},
			Endpoint: googleoauth.Endpoint,
		},
	}
}

// Configured reports whether OAuth client credentials are present.
func (b *Bridge) Configured() bool {
	return b.conf.ClientID != "" && b.conf.ClientSecret != ""
}

// Scopes returns the requested scope string for storage on the grant.
func (b *Bridge) Scopes() string {
	return strings.Join(b.conf.Scopes, " ")
}

// AuthURL builds the consent URL bound to a state nonce. Offline access is
// requested so a refresh token is issued.
func (b *Bridge) AuthURL(state string) string {
	return b.conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token pair.
func (b *Bridge) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := b.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange: %w", err)
	}
	return tok, nil
}

// SearchMail runs a Gmail keyword search and extracts sender contacts from
// the matching messages.
func (b *Bridge) SearchMail(ctx context.Context, tok *oauth2.Token, query string, maxResults int64) ([]domain.Candidate, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(b.conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}

	list, err := svc.Users.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail search: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(list.Messages))
	for _, m := range list.Messages {
		msg, err := svc.Users.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject").
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("gmail message fetch: %w", err)
		}

		c := domain.Candidate{Source: "gmail"}
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "From":
				if addr, err := mail.ParseAddress(h.Value); err == nil {
					c.Name = addr.Name
					c.Email = strings.ToLower(addr.Address)
				}
			case "Subject":
				c.Subject = h.Value
			}
		}
		if c.Email == "" {
			continue
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// SearchDrive runs a full-text Drive search and extracts file owners as
// contacts.
func (b *Bridge) SearchDrive(ctx context.Context, tok *oauth2.Token, query string, maxResults int64) ([]domain.Candidate, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(b.conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}

	escaped := strings.ReplaceAll(query, `'`, `\'`)
	list, err := svc.Files.List().
		Q(fmt.Sprintf("fullText contains '%s' and trashed = false", escaped)).
		PageSize(maxResults).
		Fields("files(id, name, webViewLink, owners(displayName, emailAddress))").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("drive search: %w", err)
	}

	var candidates []domain.Candidate
	for _, f := range list.Files {
		for _, owner := range f.Owners {
			if owner.EmailAddress == "" {
				continue
			}
			candidates = append(candidates, domain.Candidate{
				Name:    owner.DisplayName,
				Email:   strings.ToLower(owner.EmailAddress),
				Subject: f.Name,
				Link:    f.WebViewLink,
				Source:  "drive",
			})
		}
	}

	return candidates, nil
}
