package domain_test

import (
	"reflect"
	"testing"

	"github.com/beamcollective/portal-api/internal/domain"
)

func TestSanitizeHomeSlides(t *testing.T) {
	slides := []domain.HeroSlide{
		{ID: "a", Audience: domain.AudienceAll},
		{ID: "b", Audience: "backstage"},
		{ID: "c"},
		{ID: "d", Audience: domain.AudienceParticipantAdmin},
		{ID: "e", Audience: domain.AudienceViewer},
		{ID: "f", Audience: domain.AudienceAll},
		{ID: "g", Audience: domain.AudienceAll},
	}

	got := domain.SanitizeHomeSlides(slides)

	if len(got) != domain.MaxSlidesPerSurface {
		t.Fatalf("slide count: got %d, want %d", len(got), domain.MaxSlidesPerSurface)
	}
	if got[1].Audience != domain.AudienceAll {
		t.Errorf("unknown audience not defaulted: got %q", got[1].Audience)
	}
	if got[2].Audience != domain.AudienceAll {
		t.Errorf("empty audience not defaulted: got %q", got[2].Audience)
	}
	if got[3].Audience != domain.AudienceParticipantAdmin {
		t.Errorf("valid audience changed: got %q", got[3].Audience)
	}

	// Idempotent: applying twice yields the same result.
	again := domain.SanitizeHomeSlides(got)
	if !reflect.DeepEqual(got, again) {
		t.Error("sanitize is not idempotent")
	}
}

func TestHeroSlide_VisibleTo(t *testing.T) {
	staffSlide := domain.HeroSlide{Audience: domain.AudienceParticipantAdmin}
	publicSlide := domain.HeroSlide{Audience: domain.AudienceAll}

	if staffSlide.VisibleTo(domain.RoleAudience) {
		t.Error("staff slide visible to audience role")
	}
	if staffSlide.VisibleTo(domain.RoleMusician) {
		t.Error("staff slide visible to musician role")
	}
	if !staffSlide.VisibleTo(domain.RoleBeamAdmin) {
		t.Error("staff slide hidden from admin role")
	}
	if !staffSlide.VisibleTo(domain.RolePartnerAdmin) {
		t.Error("staff slide hidden from partner admin role")
	}
	if !publicSlide.VisibleTo(domain.RoleAudience) {
		t.Error("public slide hidden from audience role")
	}
}

func TestRole_Has(t *testing.T) {
	if !domain.RoleBeamAdmin.Has(domain.CapabilitySubscriber) {
		t.Error("admin role should imply subscriber capability")
	}
	if domain.RoleMusician.Has(domain.CapabilityBoard) {
		t.Error("musician role should not grant board capability")
	}
	if !domain.RoleBoard.Has(domain.CapabilityBoard) {
		t.Error("board role should grant board capability")
	}
	if domain.RoleAudience.Has(domain.CapabilityAdmin) {
		t.Error("audience role should not grant admin capability")
	}
}
