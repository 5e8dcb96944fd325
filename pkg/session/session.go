// Package session extracts TrueCoach API credentials from the browser
// session cookie. The cookie value is URL-encoded JSON carrying the
// access token and account id of the signed-in user.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultCookieName is the cookie TrueCoach stores session data under.
const DefaultCookieName = "_session_data"

// Common errors returned during credential extraction.
var (
	// ErrCredentialMissing is returned when the session cookie is absent.
	ErrCredentialMissing = errors.New("session cookie not found")

	// ErrCredentialMalformed is returned when the cookie value cannot be
	// decoded or parsed.
	ErrCredentialMalformed = errors.New("session cookie malformed")

	// ErrCredentialIncomplete is returned when the parsed session data is
	// missing the access token or user id.
	ErrCredentialIncomplete = errors.New("session data incomplete")
)

// Credentials holds the values needed to call the TrueCoach API.
type Credentials struct {
	// AccessToken is the bearer token for the Authorization header.
	AccessToken string

	// AccountID identifies the client whose workouts are exported.
	// TrueCoach serves it as either a JSON string or number; it is
	// normalized to its decimal string form here.
	AccountID string
}

// sessionData mirrors the decoded cookie payload. Only the fields the
// exporter needs are declared; everything else in the cookie is ignored.
type sessionData struct {
	Authenticated struct {
		AccessToken string     `json:"access_token"`
		UserID      flexibleID `json:"user_id"`
	} `json:"authenticated"`
}

// flexibleID accepts a JSON string or number and keeps the decimal string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// Extract parses a raw Cookie header string and returns the credentials
// stored in the default session cookie. It is a pure function: no network
// access, no logging, no state.
func Extract(rawCookies string) (Credentials, error) {
	return ExtractFrom(rawCookies, DefaultCookieName)
}

// ExtractFrom is Extract with an explicit cookie name.
func ExtractFrom(rawCookies, cookieName string) (Credentials, error) {
	value, ok := findCookie(rawCookies, cookieName)
	if !ok {
		return Credentials{}, fmt.Errorf("%w: %q", ErrCredentialMissing, cookieName)
	}

	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: url decode: %v", ErrCredentialMalformed, err)
	}

	var data sessionData
	if err := json.Unmarshal([]byte(decoded), &data); err != nil {
		return Credentials{}, fmt.Errorf("%w: parse: %v", ErrCredentialMalformed, err)
	}

	token := data.Authenticated.AccessToken
	accountID := string(data.Authenticated.UserID)
	if token == "" {
		return Credentials{}, fmt.Errorf("%w: access_token absent", ErrCredentialIncomplete)
	}
	if accountID == "" {
		return Credentials{}, fmt.Errorf("%w: user_id absent", ErrCredentialIncomplete)
	}

	return Credentials{AccessToken: token, AccountID: accountID}, nil
}

// findCookie locates a cookie by exact name in a Cookie header string.
// Parsing is delegated to net/http so quoting and separators behave the
// same way they do in a real request.
func findCookie(rawCookies, name string) (string, bool) {
	header := http.Header{}
	header.Add("Cookie", strings.TrimSpace(rawCookies))
	req := http.Request{Header: header}

	for _, c := range req.Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
