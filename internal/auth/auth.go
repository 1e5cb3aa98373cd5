package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	guestPrefix = "guest:"
	guestName   = "Guest"

	claimName = "name"
)

var ErrGuestsNotAllowed = errors.New("a token is required")

// Verifier turns a find-match request into an identity.
// Without a secret every request is treated as a guest named by the client.
type Verifier struct {
	secret      []byte
	allowGuests bool
}

func NewVerifier(secret string, allowGuests bool) *Verifier {
	return &Verifier{
		secret:      []byte(secret),
		allowGuests: allowGuests || secret == "",
	}
}

// Verify - resolves the identity carried by token, or a guest identity for username.
func (that *Verifier) Verify(_ context.Context, token, username string) (entity.Identity, error) {
	if token != "" && len(that.secret) > 0 {
		return that.parse(token)
	}

	if !that.allowGuests {
		return entity.Identity{}, fmt.Errorf("%w: %w", apperror.ErrUnauthorized, ErrGuestsNotAllowed)
	}

	name := strings.TrimSpace(username)
	if name == "" {
		name = guestName
	}

	return entity.Identity{ID: guestPrefix + name, Name: name}, nil
}

func (that *Verifier) parse(token string) (entity.Identity, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return that.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return entity.Identity{}, fmt.Errorf("%w: token has no subject", apperror.ErrUnauthorized)
	}

	name, _ := claims[claimName].(string)
	if name == "" {
		name = subject
	}

	return entity.Identity{ID: subject, Name: name}, nil
}

// Issue - signs a token for identity valid for ttl.
func (that *Verifier) Issue(identity entity.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     identity.ID,
		claimName: identity.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(that.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
