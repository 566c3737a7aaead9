package api

import (
	"context"
	"net/http"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// profilePayload is the birth-data shape the backend expects.
// Dates travel as "YYYY-MM-DD" strings because the backend treats the
// birth date as a calendar day, not an instant.
type profilePayload struct {
	Name      string  `json:"name"`
	BirthDate string  `json:"birth_date"`
	BirthTime string  `json:"birth_time,omitempty"`
	Place     string  `json:"place,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// newProfilePayload converts a saved profile to its wire shape.
func newProfilePayload(p *model.SavedProfile) profilePayload {
	return profilePayload{
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(model.BirthDateLayout),
		BirthTime: p.BirthTime,
		Place:     p.Place,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

// forecastRequest is the payload for forecast requests.
type forecastRequest struct {
	Profile profilePayload `json:"profile"`
	Scope   string         `json:"scope"`
	Locale  string         `json:"locale,omitempty"`
}

// Forecast requests a forecast for the profile at the given scope.
// The locale may be empty, in which case the account default applies.
func (c *Client) Forecast(ctx context.Context, profile *model.SavedProfile, scope model.Scope, locale string) (*model.Forecast, error) {
	req := forecastRequest{
		Profile: newProfilePayload(profile),
		Scope:   scope.String(),
		Locale:  locale,
	}

	var forecast model.Forecast
	if err := c.do(ctx, http.MethodPost, "/v1/forecast", req, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// numerologyRequest is the payload for numerology requests.
type numerologyRequest struct {
	Profile profilePayload `json:"profile"`
	Locale  string         `json:"locale,omitempty"`
}

// Numerology requests the numerology profile for the given birth data.
func (c *Client) Numerology(ctx context.Context, profile *model.SavedProfile, locale string) (*model.NumerologyProfile, error) {
	req := numerologyRequest{
		Profile: newProfilePayload(profile),
		Locale:  locale,
	}

	var numerology model.NumerologyProfile
	if err := c.do(ctx, http.MethodPost, "/v1/numerology", req, &numerology); err != nil {
		return nil, err
	}
	return &numerology, nil
}

// compatibilityRequest is the payload for compatibility requests.
type compatibilityRequest struct {
	ProfileA profilePayload `json:"profile_a"`
	ProfileB profilePayload `json:"profile_b"`
}

// Compatibility requests a compatibility reading for two profiles.
func (c *Client) Compatibility(ctx context.Context, a, b *model.SavedProfile) (*model.CompatibilityResult, error) {
	req := compatibilityRequest{
		ProfileA: newProfilePayload(a),
		ProfileB: newProfilePayload(b),
	}

	var result model.CompatibilityResult
	if err := c.do(ctx, http.MethodPost, "/v1/compatibility", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// loginRequest is the payload for credential login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := loginRequest{Email: email, Password: password}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
