package domain

import (
	"context"
	"time"
)

// Integration providers with stored OAuth grants.
const (
	ProviderGoogle = "google"
)

// IntegrationCredential is a stored OAuth grant for an external provider.
// Token fields hold AES-GCM ciphertext, never plaintext, and the record is
// never exposed to non-admin callers.
type IntegrationCredential struct {
	ID           string    `json:"id" bson:"_id"`
	Provider     string    `json:"provider" bson:"provider"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	Scope        string    `json:"scope" bson:"scope"`
	AccessToken  string    `json:"-" bson:"access_token"`
	RefreshToken string    `json:"-" bson:"refresh_token"`
	Expiry       time.Time `json:"expiry" bson:"expiry"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// CredentialRepository stores one grant per provider.
type CredentialRepository interface {
	Upsert(ctx context.Context, c *IntegrationCredential) error
	Get(ctx context.Context, provider string) (*IntegrationCredential, error)
	List(ctx context.Context) ([]IntegrationCredential, error)
	Delete(ctx context.Context, provider string) error
}

// Candidate is a mailbox/drive search hit, tagged with whether the contact
// already exists in the roster.
type Candidate struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Link    string `json:"link,omitempty"`
	Source  string `json:"source"`
	IsNew   bool   `json:"is_new"`
}

// RosterRepository answers membership questions about the existing roster.
// ExistingEmails must partition its input into store-sized batches before
// issuing membership queries.
type RosterRepository interface {
	ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error)
}
