package raw

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a backend scalar that may arrive as a JSON number, a numeric string, or be absent.
//
// Truthy mirrors how the storefront chose between alternate price keys: a non-empty string or a
// non-zero number counts as supplied, even when it does not parse.
type Number struct {
	Value  float64
	Valid  bool
	Truthy bool
	Raw    string
}

// UnmarshalJSON accepts numbers, strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch typed := v.(type) {
	case float64:
		n.Value = typed
		n.Valid = true
		n.Truthy = typed != 0
		n.Raw = strconv.FormatFloat(typed, 'f', -1, 64)
	case string:
		n.Raw = typed
		n.Truthy = typed != ""
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64); err == nil {
			n.Value = parsed
			n.Valid = true
		}
	case bool:
		n.Truthy = typed
	}
	return nil
}

// MarshalJSON writes the parsed value, or null when there is none.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// Usable reports whether the value was supplied and parsed.
func (n Number) Usable() bool {
	return n.Truthy && n.Valid
}

// Int returns the value truncated to an int, or 0 when it did not parse.
func (n Number) Int() int {
	if !n.Valid {
		return 0
	}
	return int(n.Value)
}

// Num builds a Number from a float, for fixtures and tests.
func Num(v float64) Number {
	return Number{Value: v, Valid: true, Truthy: v != 0, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// NumString builds a Number the way a numeric string from the backend decodes.
func NumString(s string) Number {
	var n Number
	_ = n.UnmarshalJSON([]byte(strconv.Quote(s)))
	return n
}

// Text is a backend identifier or label that may arrive as a string or a number.
type Text string

// UnmarshalJSON accepts strings, numbers and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch typed := v.(type) {
	case string:
		*t = Text(typed)
	case float64:
		*t = Text(strconv.FormatFloat(typed, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(typed))
	}
	return nil
}

// String returns the text value.
func (t Text) String() string {
	return string(t)
}

// Or returns t, or fallback when t is empty.
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}

// FirstText returns the first non-empty value.
func FirstText(values ...Text) Text {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
