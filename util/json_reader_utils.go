package util

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"bookvenue/models/raw"
)

// ReadJSONFile decodes the JSON file at filePath into v.
func ReadJSONFile(filePath string, v interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return json.Unmarshal(data, v)
}

// ReadFacilityListFromFS loads a get-all-facility payload.
func ReadFacilityListFromFS(fsys fs.FS, name string) (*raw.FacilityListResponse, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", name, err)
	}
	var resp raw.FacilityListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal FacilityListResponse: %w", err)
	}
	return &resp, nil
}

// ReadSlotsByDateFromFS loads get-slots-by-date payloads keyed by facility slug.
func ReadSlotsByDateFromFS(fsys fs.FS, name string) (map[string]raw.SlotsByDateResponse, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", name, err)
	}
	var resp map[string]raw.SlotsByDateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SlotsByDateResponse: %w", err)
	}
	return resp, nil
}

// ReadMyBookingsFromFS loads a my-bookings payload.
func ReadMyBookingsFromFS(fsys fs.FS, name string) (*raw.MyBookingsResponse, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", name, err)
	}
	var resp raw.MyBookingsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal MyBookingsResponse: %w", err)
	}
	return &resp, nil
}

// ReadBookingDetailsFromFS loads booking payloads keyed by booking id.
func ReadBookingDetailsFromFS(fsys fs.FS, name string) (map[string]raw.BookingEnvelope, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", name, err)
	}
	var resp map[string]raw.BookingEnvelope
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal BookingEnvelope: %w", err)
	}
	return resp, nil
}

// ReadUserFromFS loads a user-details payload.
func ReadUserFromFS(fsys fs.FS, name string) (*raw.User, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", name, err)
	}
	var resp raw.UserEnvelope
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal User: %w", err)
	}
	u := resp.Unwrap()
	return &u, nil
}
