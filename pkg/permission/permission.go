package permission

import "slices"

// Well-known permission names. Junction-scoped permissions use the
// same names with a junction table and row id.
const (
	SettingsManage   = "plaza.settings.manage"
	ModerationManage = "plaza.moderation.manage"
	SignInAllow      = "plaza.signin.allow"
	DiscussionsView  = "plaza.discussions.view"
	DiscussionsAdd   = "plaza.discussions.add"
	CommentsAdd      = "plaza.comments.add"
	ProfilesView     = "plaza.profiles.view"
	UploadsAdd       = "plaza.uploads.add"
)

// JunctionCategory scopes permissions to a single category row.
const JunctionCategory = "category"

// banExempt lists permissions that keep working for banned users, so
// operators locked out by a misfired ban can still reach the tools
// that undo it.
var banExempt = map[string]bool{
	SettingsManage:   true,
	ModerationManage: true,
}

// Checker answers permission questions. *Set implements it; sessions
// expose their set through this interface.
type Checker interface {
	Has(name string) bool
	HasAny(names ...string) bool
	HasAll(names ...string) bool
	HasJunction(junction string, id int64, name string) bool
}

// Set holds one user's resolved permissions: global grants plus
// junction-scoped grants (per-category and similar). A Set is built
// once, then read; it is safe for concurrent reads but not concurrent
// mutation. The zero value is a guest with no grants.
//
// Sets round-trip through JSON for session and cache storage.
type Set struct {
	// Admin short-circuits every check to true.
	Admin bool `json:"admin,omitempty"`

	// Banned short-circuits checks to false, except ban-exempt names.
	Banned bool `json:"banned,omitempty"`

	// Global maps permission names to grants.
	Global map[string]bool `json:"global,omitempty"`

	// Junctions maps junction table -> row id -> granted names.
	Junctions map[string]map[int64][]string `json:"junctions,omitempty"`
}

// NewSet returns an empty, grantable Set.
func NewSet() *Set {
	return &Set{
		Global:    make(map[string]bool),
		Junctions: make(map[string]map[int64][]string),
	}
}

// Grant adds global permissions.
func (s *Set) Grant(names ...string) *Set {
	if s.Global == nil {
		s.Global = make(map[string]bool, len(names))
	}
	for _, name := range names {
		if name != "" {
			s.Global[name] = true
		}
	}
	return s
}

// GrantJunction adds permissions scoped to one junction row.
func (s *Set) GrantJunction(junction string, id int64, names ...string) *Set {
	if junction == "" || id <= 0 {
		return s
	}
	if s.Junctions == nil {
		s.Junctions = make(map[string]map[int64][]string)
	}
	rows := s.Junctions[junction]
	if rows == nil {
		rows = make(map[int64][]string)
		s.Junctions[junction] = rows
	}
	for _, name := range names {
		if name != "" && !slices.Contains(rows[id], name) {
			rows[id] = append(rows[id], name)
		}
	}
	return s
}

// Has reports whether a global permission is granted. Admins pass
// every check; banned users fail every check except ban-exempt names.
func (s *Set) Has(name string) bool {
	if s == nil || name == "" {
		return false
	}
	if s.Banned && !banExempt[name] {
		return false
	}
	if s.Admin {
		return true
	}
	return s.Global[name]
}

// HasAny reports whether any of the names is granted.
func (s *Set) HasAny(names ...string) bool {
	for _, name := range names {
		if s.Has(name) {
			return true
		}
	}
	return false
}

// HasAll reports whether every name is granted. An empty list is
// false: callers must name what they are checking.
func (s *Set) HasAll(names ...string) bool {
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if !s.Has(name) {
			return false
		}
	}
	return true
}

// HasJunction reports whether a permission is granted for one junction
// row. Rows the set knows nothing about, and non-positive ids, fall
// back to the global permission: rows without specific grants inherit
// the default.
func (s *Set) HasJunction(junction string, id int64, name string) bool {
	if s == nil || name == "" {
		return false
	}
	if s.Banned && !banExempt[name] {
		return false
	}
	if s.Admin {
		return true
	}

	if junction == "" || id <= 0 {
		return s.Global[name]
	}

	rows, ok := s.Junctions[junction]
	if !ok {
		return s.Global[name]
	}
	names, ok := rows[id]
	if !ok {
		return s.Global[name]
	}
	return slices.Contains(names, name)
}

// Merge unions another set into this one. Admin and Banned flags are
// sticky once set on either side.
func (s *Set) Merge(other *Set) *Set {
	if other == nil {
		return s
	}

	s.Admin = s.Admin || other.Admin
	s.Banned = s.Banned || other.Banned

	if len(other.Global) > 0 && s.Global == nil {
		s.Global = make(map[string]bool, len(other.Global))
	}
	for name, granted := range other.Global {
		if granted {
			s.Global[name] = true
		}
	}

	for junction, rows := range other.Junctions {
		for id, names := range rows {
			s.GrantJunction(junction, id, names...)
		}
	}

	return s
}

// JunctionIDs returns the row ids a permission is granted for within a
// junction. Useful for building SQL filters ("which categories can
// this user see").
func (s *Set) JunctionIDs(junction, name string) []int64 {
	if s == nil {
		return nil
	}
	rows, ok := s.Junctions[junction]
	if !ok {
		return nil
	}
	var ids []int64
	for id, names := range rows {
		if slices.Contains(names, name) {
			ids = append(ids, id)
		}
	}
	return ids
}
