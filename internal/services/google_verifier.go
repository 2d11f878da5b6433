package services

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google ID tokens against the configured
// OAuth client id.
type GoogleVerifier struct {
	ClientID string
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, token, g.ClientID)
	if err != nil {
		return "", "", err
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return "", "", errors.New("token has no verified email")
	}
	return email, name, nil
}
