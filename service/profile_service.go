package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"bookvenue/api/bookvenue"
	"bookvenue/models/user"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrContactRequired = errors.New("contact is required")
	ErrAddressRequired = errors.New("address is required")
)

type ProfileService struct {
	userApi bookvenue.UserAPI
}

func NewProfileService(userApi bookvenue.UserAPI) *ProfileService {
	return &ProfileService{userApi: userApi}
}

// Me returns the signed-in user.
func (ps *ProfileService) Me(ctx context.Context) (*user.User, error) {
	return ps.userApi.GetUserDetails(ctx)
}

// UpdateProfile validates and submits the profile form.
func (ps *ProfileService) UpdateProfile(ctx context.Context, update user.ProfileUpdate) (*user.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	update.Email = strings.TrimSpace(update.Email)
	update.Contact = strings.TrimSpace(update.Contact)
	update.Address = strings.TrimSpace(update.Address)
	if err := ValidateProfile(update); err != nil {
		return nil, err
	}
	return ps.userApi.UpdateUserProfile(ctx, update)
}

// ValidateProfile requires every text field and a well-formed email address.
func ValidateProfile(u user.ProfileUpdate) error {
	var errs []error
	if u.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	switch {
	case u.Email == "":
		errs = append(errs, ErrEmailRequired)
	case !validEmail(u.Email):
		errs = append(errs, ErrInvalidEmail)
	}
	if u.Contact == "" {
		errs = append(errs, ErrContactRequired)
	}
	if u.Address == "" {
		errs = append(errs, ErrAddressRequired)
	}
	return errors.Join(errs...)
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}
