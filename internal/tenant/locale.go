package tenant

// DefaultLocaleTag is the only locale currently shipped.
const DefaultLocaleTag = "en"

// Locale is a bundle of UI copy for one language.
type Locale struct {
	Tag     string            `json:"tag"`
	Strings map[string]string `json:"strings"`
}

// LocaleResolver resolves a language tag to a copy bundle. A single fixed
// locale exists today; unknown tags fall back to it.
type LocaleResolver struct {
	bundles map[string]*Locale
}

// NewLocaleResolver builds the resolver with the default bundle.
func NewLocaleResolver() *LocaleResolver {
	return &LocaleResolver{
		bundles: map[string]*Locale{
			DefaultLocaleTag: {
				Tag: DefaultLocaleTag,
				Strings: map[string]string{
					"nav.home":            "Home",
					"nav.recordings":      "Recordings",
					"nav.projects":        "Projects",
					"nav.dashboard":       "Dashboard",
					"nav.admin":           "Admin",
					"cta.join":            "Join us",
					"cta.donate":          "Donate",
					"invite.confirm":      "Accept invitation",
					"invite.decline":      "Decline invitation",
					"requests.submitted":  "Your request has been submitted.",
					"requests.in_review":  "Your request is being reviewed.",
					"subscription.thanks": "Thank you for supporting us.",
				},
			},
		},
	}
}

// Resolve returns the bundle for tag, or the default bundle when the tag is
// unknown or empty.
func (r *LocaleResolver) Resolve(tag string) *Locale {
	if b, ok := r.bundles[tag]; ok {
		return b
	}
	return r.bundles[DefaultLocaleTag]
}
