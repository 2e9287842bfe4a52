// Package auth resolves bearer credentials to a user identity and role.
// The same authenticator serves WebSocket handshakes and every HTTP
// request; a failure is terminal for the handshake and per-request for
// HTTP, never retried.
package auth

import (
	"errors"
	"time"

	"tutorlink/messaging/internal/config"
	"tutorlink/messaging/internal/storage"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrUnauthenticated = errors.New("invalid or expired credential")

// Identity is the resolved caller: the profile id and its current role as
// stored in the datastore (the token alone is never trusted for the role).
type Identity struct {
	UserID string
	Role   string
}

type Authenticator struct {
	Secret  []byte
	Storage storage.Storage
}

func NewAuthenticator(secret string, s storage.Storage) *Authenticator {
	return &Authenticator{Secret: []byte(secret), Storage: s}
}

// IssueToken signs a token for the user. The auth service issues tokens in
// production; this is used by tests and local tooling.
func (a *Authenticator) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(config.TokenTTL).Unix(),
		"iss": config.TokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

// Authenticate verifies the token and loads the profile behind it. One
// datastore read per call: the role always reflects the stored profile.
func (a *Authenticator) Authenticate(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthenticated
		}
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrUnauthenticated
	}

	user, err := a.Storage.GetUserByID(sub)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	return &Identity{UserID: user.ID, Role: user.Role}, nil
}
