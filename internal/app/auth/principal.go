package auth

import "strings"

// RoleAdmin grants the administrative capability: approving, rejecting
// and cancelling bookings regardless of ownership.
const RoleAdmin = "admin"

// Principal is the already-verified caller identity handed to the engine
// by the authentication layer. The engine never inspects credentials; it
// only checks ownership and roles.
type Principal struct {
	UserID string
	Roles  []string
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

func (p Principal) HasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	for _, r := range p.Roles {
		if strings.ToLower(r) == role {
			return true
		}
	}
	return false
}

func (p Principal) Is(userID string) bool {
	return userID != "" && p.UserID == userID
}
