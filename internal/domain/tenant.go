package domain

// MaxSlidesPerSurface caps how many hero slides a single surface renders.
const MaxSlidesPerSurface = 5

// Audience tags a slide with the viewer group it is meant for.
type Audience string

const (
	AudienceAll              Audience = "all"
	AudienceViewer           Audience = "viewer"
	AudienceParticipantAdmin Audience = "participant_admin"
)

// HeroSlide is one entry of a tenant's home or recordings carousel. The CTA
// path is a logical portal path, resolved per tenant by the path scoping
// resolver.
type HeroSlide struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	CTALabel string   `json:"cta_label"`
	CTAPath  string   `json:"cta_path"`
	Image    string   `json:"image"`
	Video    string   `json:"video,omitempty"`
	Audience Audience `json:"audience"`
}

// VisibleTo reports whether the slide should render for the given role.
func (s HeroSlide) VisibleTo(role Role) bool {
	switch s.Audience {
	case AudienceParticipantAdmin:
		return role.Has(CapabilityAdmin)
	default:
		return true
	}
}

// ProjectSummary is a tenant-scoped project listing entry.
type ProjectSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Season      string `json:"season,omitempty"`
	Description string `json:"description,omitempty"`
}

// TenantConfig is one organization's static portal content. Immutable after
// process start; safe for unlimited concurrent readers.
type TenantConfig struct {
	Key             string           `json:"key"`
	Name            string           `json:"name"`
	ShortName       string           `json:"short_name"`
	HomeSlides      []HeroSlide      `json:"home_slides"`
	RecordingSlides []HeroSlide      `json:"recording_slides"`
	Projects        []ProjectSummary `json:"projects"`
}

// SanitizeHomeSlides normalizes a slide list: missing fields become empty
// strings, the audience defaults to "all", and the list is truncated to
// MaxSlidesPerSurface. Applying it twice yields the same result.
func SanitizeHomeSlides(slides []HeroSlide) []HeroSlide {
	out := make([]HeroSlide, 0, MaxSlidesPerSurface)
	for _, s := range slides {
		if len(out) == MaxSlidesPerSurface {
			break
		}
		switch s.Audience {
		case AudienceAll, AudienceViewer, AudienceParticipantAdmin:
		default:
			s.Audience = AudienceAll
		}
		out = append(out, s)
	}
	return out
}
