// Package normalize reshapes backend facility, court and booking payloads into the view models.
//
// Every fallback chain runs from the most specific value to the broadest default. Malformed
// optional fields degrade to their default and never fail the record.
package normalize

import (
	"strings"

	"bookvenue/config"
	"bookvenue/models/raw"
)

// Options carries the asset host and the stock photo.
type Options struct {
	AssetBaseURL  string
	FallbackImage string
}

// DefaultOptions returns the production asset host and stock photo.
func DefaultOptions() Options {
	return Options{
		AssetBaseURL:  config.BOOKVENUE_ASSET_BASE_URL,
		FallbackImage: config.FALLBACK_IMAGE_URL,
	}
}

func (o Options) withDefaults() Options {
	if o.AssetBaseURL == "" {
		o.AssetBaseURL = config.BOOKVENUE_ASSET_BASE_URL
	}
	if !strings.HasSuffix(o.AssetBaseURL, "/") {
		o.AssetBaseURL += "/"
	}
	if o.FallbackImage == "" {
		o.FallbackImage = config.FALLBACK_IMAGE_URL
	}
	return o
}

// AssetURL prefixes a relative backend path with the asset host.
func (o Options) AssetURL(path string) string {
	return o.withDefaults().AssetBaseURL + path
}

// slashes turns Windows-style separators from the upload store into URL separators.
func slashes(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// firstPrice returns the first supplied, parseable number, else fallback.
func firstPrice(fallback float64, candidates ...raw.Number) float64 {
	for _, c := range candidates {
		if c.Usable() {
			return c.Value
		}
	}
	return fallback
}

// orNumber returns n when it is truthy, else fallback.
func orNumber(n raw.Number, fallback float64) float64 {
	if n.Truthy && n.Valid {
		return n.Value
	}
	return fallback
}

func orString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
