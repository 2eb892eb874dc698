package auth

// Identity is the provider-agnostic form of an external account.
// It contains facts extracted from one provider payload, no decisions.
type Identity struct {
	Provider     string // "naver", "google" or "kakao"
	ProviderID   string // provider-scoped unique user identifier
	Name         string // display name, may be empty
	Email        string // may be empty, provider-dependent
	ProfileImage string // profile image URL, may be empty
}
