package models

import "time"

// Profile is one tracked account: identity, credentials, per-profile
// settings and the last cached snapshot. Profiles are owned by the
// profile store; the ID is opaque and stable for the profile's lifetime.
type Profile struct {
	ID             string         `json:"id"`
	DisplayName    string         `json:"displayName,omitempty"`
	SessionToken   string         `json:"sessionToken,omitempty"`
	OrgID          string         `json:"orgId,omitempty"`
	APIToken       string         `json:"apiToken,omitempty"`
	APIOrgID       string         `json:"apiOrgId,omitempty"`
	Settings       Settings       `json:"settings"`
	CachedSnapshot *UsageSnapshot `json:"cachedSnapshot,omitempty"`
	AddedAt        time.Time      `json:"addedAt"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	c.CachedSnapshot = p.CachedSnapshot.Clone()
	return c
}

// HasCredentials reports whether the profile carries enough credential
// material for the remote poller to act on it.
func (p Profile) HasCredentials() bool {
	return p.SessionToken != "" || p.APIToken != ""
}
