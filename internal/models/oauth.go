package models

// NoEmail is substituted when an OAuth provider exposes no email attribute.
const NoEmail = "NO_EMAIL"

// OAuthIdentity is the canonical view of a provider's raw attribute map.
// Transient only; account linking happens elsewhere.
type OAuthIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
