package tenant

// Logical portal paths known to the navigation layer.
const (
	PathHome       = "/"
	PathRecordings = "/recordings"
	PathProjects   = "/projects"
	PathDashboard  = "/dashboard"
	PathAdmin      = "/admin"
)

// scopeEligible is the fixed allow-list of logical paths that may be
// tenant-prefixed. Everything else passes through ResolvePath unchanged.
var scopeEligible = map[string]bool{
	PathHome:       true,
	PathRecordings: true,
	PathProjects:   true,
	PathDashboard:  true,
	PathAdmin:      true,
}

// ScopeEligible reports whether the logical path may be tenant-prefixed.
func ScopeEligible(logicalPath string) bool {
	return scopeEligible[logicalPath]
}

// ResolvePath turns a logical portal path into a concrete URL path. When
// scoped is true and the path is scope-eligible, the tenant key is prepended
// as a URL segment so one navigation builder serves both the tenant-prefixed
// portal and the single default deployment. Paths outside the allow-list
// pass through unchanged regardless of the scoped flag, and a scoped request
// with an empty tenant key must not produce an empty segment, so it is
// treated as unscoped.
func ResolvePath(logicalPath, tenantKey string, scoped bool) string {
	if !scoped || tenantKey == "" || !scopeEligible[logicalPath] {
		return logicalPath
	}

	if logicalPath == PathHome {
		return "/" + tenantKey
	}
	return "/" + tenantKey + logicalPath
}

// NavEntry is one navigation menu item with its resolved target.
type NavEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// BuildNav constructs the portal navigation menu for a tenant. Dashboard and
// admin entries are appended only when the caller asks for the private
// surface.
func BuildNav(loc *Locale, tenantKey string, scoped, includePrivate bool) []NavEntry {
	entries := []NavEntry{
		{Label: loc.Strings["nav.home"], Path: ResolvePath(PathHome, tenantKey, scoped)},
		{Label: loc.Strings["nav.recordings"], Path: ResolvePath(PathRecordings, tenantKey, scoped)},
		{Label: loc.Strings["nav.projects"], Path: ResolvePath(PathProjects, tenantKey, scoped)},
	}
	if includePrivate {
		entries = append(entries,
			NavEntry{Label: loc.Strings["nav.dashboard"], Path: ResolvePath(PathDashboard, tenantKey, scoped)},
			NavEntry{Label: loc.Strings["nav.admin"], Path: ResolvePath(PathAdmin, tenantKey, scoped)},
		)
	}
	return entries
}
