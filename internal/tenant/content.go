package tenant

import "github.com/beamcollective/portal-api/internal/domain"

// DefaultTenants returns the built-in tenant content. The registry sanitizes
// slide lists on load, so entries here may stay loose.
func DefaultTenants() []domain.TenantConfig {
	return []domain.TenantConfig{
		{
			Key:       "beam",
			Name:      "Beam Collective",
			ShortName: "Beam",
			HomeSlides: []domain.HeroSlide{
				{
					ID:       "welcome",
					Title:    "Music that moves communities",
					Subtitle: "Concerts, education and outreach across the region",
					CTALabel: "Join us",
					CTAPath:  PathProjects,
					Image:    "slides/welcome.jpg",
					Audience: domain.AudienceAll,
				},
				{
					ID:       "season",
					Title:    "Season 2026",
					Subtitle: "Our new concert season is live",
					CTALabel: "See the program",
					CTAPath:  PathProjects,
					Image:    "slides/season.jpg",
					Audience: domain.AudienceViewer,
				},
				{
					ID:       "staff",
					Title:    "Behind the scenes",
					Subtitle: "Planning tools for the organizing team",
					CTALabel: "Open dashboard",
					CTAPath:  PathDashboard,
					Image:    "slides/staff.jpg",
					Audience: domain.AudienceParticipantAdmin,
				},
			},
			RecordingSlides: []domain.HeroSlide{
				{
					ID:       "archive",
					Title:    "Concert archive",
					Subtitle: "Recordings from past seasons",
					CTALabel: "Listen",
					CTAPath:  PathRecordings,
					Image:    "slides/archive.jpg",
					Video:    "recordings/highlights.mp4",
					Audience: domain.AudienceAll,
				},
			},
			Projects: []domain.ProjectSummary{
				{ID: "demo-2025", Title: "Winter Demo Project", Season: "2025/26", Description: "Open rehearsal project for new musicians."},
				{ID: "spring-tour-2026", Title: "Spring Tour", Season: "2026", Description: "Regional tour with community orchestras."},
			},
		},
		{
			Key:       "nordwind",
			Name:      "Nordwind Ensemble",
			ShortName: "Nordwind",
			HomeSlides: []domain.HeroSlide{
				{
					ID:       "welcome",
					Title:    "Nordwind Ensemble",
					Subtitle: "Chamber music in the north",
					CTALabel: "Upcoming projects",
					CTAPath:  PathProjects,
					Image:    "slides/nordwind.jpg",
					Audience: domain.AudienceAll,
				},
			},
			Projects: []domain.ProjectSummary{
				{ID: "nordwind-fall-2026", Title: "Fall Chamber Series", Season: "2026"},
			},
		},
	}
}
