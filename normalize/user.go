package normalize

import (
	"bookvenue/models/raw"
	"bookvenue/models/user"
)

// User normalizes the profile payload; phone falls back to contact.
func User(u raw.User, opts Options) user.User {
	out := user.User{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   raw.FirstText(u.Phone, u.Contact).String(),
		Address: u.Address,
	}
	if u.Image != "" {
		out.Image = opts.AssetURL(slashes(u.Image))
	}
	return out
}
