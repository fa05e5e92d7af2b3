package handlers

import (
	"io"
	"mime"
	"net/http"

	"bookvenue/models/user"
	services "bookvenue/service"
)

const (
	maxProfileUpload  = 10 << 20
	PROFILE_IMAGE_KEY = "image"
)

// profileForm is the JSON form of a profile update; the image can only be sent as multipart.
type profileForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetMe handles GET /v1/me
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.profileService.Me(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateMe handles POST /v1/me with a JSON body or a multipart form carrying an optional image.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	update, err := readProfileUpdate(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.profileService.UpdateProfile(r.Context(), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func readProfileUpdate(r *http.Request) (user.ProfileUpdate, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var form profileForm
		if err := decodeJSON(r, &form); err != nil {
			return user.ProfileUpdate{}, err
		}
		return user.ProfileUpdate{Name: form.Name, Email: form.Email, Contact: form.Contact, Address: form.Address}, nil
	}

	if err := r.ParseMultipartForm(maxProfileUpload); err != nil {
		return user.ProfileUpdate{}, err
	}
	update := user.ProfileUpdate{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Contact: r.FormValue("contact"),
		Address: r.FormValue("address"),
	}
	file, _, err := r.FormFile(PROFILE_IMAGE_KEY)
	if err == http.ErrMissingFile {
		return update, nil
	}
	if err != nil {
		return user.ProfileUpdate{}, err
	}
	defer file.Close()
	if update.Image, err = io.ReadAll(file); err != nil {
		return user.ProfileUpdate{}, err
	}
	return update, nil
}
