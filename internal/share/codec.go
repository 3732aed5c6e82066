// Package share encodes a single appointment to a compact URL-safe token for
// point-to-point sharing, and decodes such tokens back.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/example/cruze-calendar/internal/model"
)

// DefaultParam is the query parameter carrying a share token.
const DefaultParam = "share"

// Encode serializes the appointment to JSON and wraps it in a URL-safe
// base64 token.
func Encode(a model.Appointment) (string, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("share: encode appointment: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode reverses Encode. Malformed tokens and invalid JSON both fail; the
// caller decides whether the failure is fatal (at startup it never is).
func Decode(token string) (model.Appointment, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("share: decode token: %w", err)
	}
	var appointment model.Appointment
	if err := json.Unmarshal(payload, &appointment); err != nil {
		return model.Appointment{}, fmt.Errorf("share: decode token payload: %w", err)
	}
	return appointment, nil
}

// FromURL inspects rawURL for a share token under the named query parameter.
// On success it returns the decoded appointment, the URL with the parameter
// stripped, and true. When the parameter is absent or the token does not
// decode it returns the original URL and false; decode failures are reported
// through err so callers can log and move on.
func FromURL(rawURL, param string) (appointment model.Appointment, cleaned string, ok bool, err error) {
	if param == "" {
		param = DefaultParam
	}
	parsed, parseErr := url.Parse(rawURL)
	if parseErr != nil {
		return model.Appointment{}, rawURL, false, fmt.Errorf("share: parse url: %w", parseErr)
	}

	values := parsed.Query()
	token := values.Get(param)
	if token == "" {
		return model.Appointment{}, rawURL, false, nil
	}

	appointment, decodeErr := Decode(token)
	if decodeErr != nil {
		return model.Appointment{}, rawURL, false, decodeErr
	}

	values.Del(param)
	parsed.RawQuery = values.Encode()
	return appointment, parsed.String(), true, nil
}
