package raw

// UserEnvelope is GET /user-details; the user is either wrapped or bare.
type UserEnvelope struct {
	Wrapped *User `json:"user"`
	User
}

// Unwrap returns the wrapped user when present, else the bare one.
func (e UserEnvelope) Unwrap() User {
	if e.Wrapped != nil {
		return *e.Wrapped
	}
	return e.User
}

// User is the profile the backend holds for the token owner.
type User struct {
	ID      Text   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   Text   `json:"phone"`
	Contact Text   `json:"contact"`
	Address string `json:"address"`
	Image   string `json:"image"`
}
