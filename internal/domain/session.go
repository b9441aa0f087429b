package domain

import "encoding/json"

// User is the signed-in customer as the backend describes them.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// SessionSnapshot is what survives a restart: the user and their access credential.
type SessionSnapshot struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// AuthResult is a login or register answer. Older backend versions send the
// credential as "token" and the user fields at top level instead of under "user".
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// UnmarshalJSON accepts both response shapes.
func (a *AuthResult) UnmarshalJSON(b []byte) error {
	var wire struct {
		AccessToken  string          `json:"accessToken"`
		Token        string          `json:"token"`
		RefreshToken string          `json:"refreshToken"`
		User         json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	a.AccessToken = wire.AccessToken
	if a.AccessToken == "" {
		a.AccessToken = wire.Token
	}
	a.RefreshToken = wire.RefreshToken

	userJSON := b
	if len(wire.User) > 0 && string(wire.User) != "null" {
		userJSON = wire.User
	}
	return json.Unmarshal(userJSON, &a.User)
}
