package domain

import "strings"

type ProfileKind string

const (
	BusinessProfile ProfileKind = "business"
	CustomerProfile ProfileKind = "customer"
)

// Profile is the read-only part of a business or customer account the core needs.
type Profile struct {
	ID           Identity
	Kind         ProfileKind
	BusinessName string
	FirstName    string
	LastName     string
	Location     string
	PhoneNumber  string
	Email        string
	Bio          string
}

// DisplayName falls back to the identity when no name was provided.
func (p Profile) DisplayName() string {
	if p.Kind == BusinessProfile && strings.TrimSpace(p.BusinessName) != "" {
		return strings.TrimSpace(p.BusinessName)
	}
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	if name := strings.TrimSpace(p.BusinessName); name != "" {
		return name
	}
	return string(p.ID)
}
