package user

// User is the signed-in customer.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Image   string `json:"image,omitempty"`
}

// ProfileUpdate is the multipart form sent to POST /update-profile.
type ProfileUpdate struct {
	Name    string
	Email   string
	Contact string
	Address string

	// Image is optional; when set it is uploaded as profile.jpg.
	Image []byte
}
