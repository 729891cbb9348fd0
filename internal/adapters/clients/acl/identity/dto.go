// Package identity holds the wire formats of the Identity Toolkit and
// Secure Token APIs and their translation to user types.
package identity

// PasswordRequest is the body of accounts:signUp and
// accounts:signInWithPassword.
type PasswordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// AuthResponse is returned by accounts:signUp and
// accounts:signInWithPassword. ExpiresIn is a count of seconds, sent as a
// string.
type AuthResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// LookupRequest is the body of accounts:lookup.
type LookupRequest struct {
	IDToken string `json:"idToken"`
}

// LookupResponse is returned by accounts:lookup.
type LookupResponse struct {
	Users []AccountDTO `json:"users"`
}

// AccountDTO is one account in a lookup response.
type AccountDTO struct {
	LocalID  string `json:"localId"`
	Email    string `json:"email"`
	Disabled bool   `json:"disabled,omitempty"`
}

// RefreshRequest is the body of the Secure Token token exchange.
type RefreshRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse is returned by the Secure Token token exchange. Unlike
// the Identity Toolkit responses its keys are snake_case.
type RefreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}
