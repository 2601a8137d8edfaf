// Package authz decides whether an acting user may perform a mutating
// operation. Capabilities are derived from the role stored on the user row,
// not from any external group lookup, and ownership is always the comparison
// of the actor against the entity's author.
package authz

import "github.com/google/uuid"

type Capability string

const (
	CapAddAd          Capability = "add_ad"
	CapChangeAd       Capability = "change_ad"
	CapDeleteAd       Capability = "delete_ad"
	CapViewResponse   Capability = "view_response"
	CapSendNewsletter Capability = "send_newsletter"
)

const (
	RoleMember = "member"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

var roleCapabilities = map[string][]Capability{
	RoleMember: {},
	RoleAuthor: {CapAddAd, CapChangeAd, CapDeleteAd, CapViewResponse},
	RoleAdmin:  {CapAddAd, CapChangeAd, CapDeleteAd, CapViewResponse, CapSendNewsletter},
}

// CapabilitiesForRole returns the capability set granted by a role. Unknown
// roles get no capabilities.
func CapabilitiesForRole(role string) []Capability {
	return roleCapabilities[role]
}

func HasCapability(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

func CanCreateAd(role string) bool {
	return HasCapability(role, CapAddAd)
}

// CanModifyAd gates ad updates and deletes: the actor needs the capability
// matching the operation and must be the ad's author.
func CanModifyAd(role string, cap Capability, actorID, adAuthorID uuid.UUID) bool {
	return HasCapability(role, cap) && actorID == adAuthorID
}

// CanViewResponses only checks the capability. The response list is always
// row-filtered to ads authored by the actor inside the repository query.
func CanViewResponses(role string) bool {
	return HasCapability(role, CapViewResponse)
}

// CanMutateResponse gates accept and delete on a response: parent ad's
// author only, regardless of role.
func CanMutateResponse(actorID, adAuthorID uuid.UUID) bool {
	return actorID == adAuthorID
}
