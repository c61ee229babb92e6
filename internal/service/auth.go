package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService signs and verifies HS256 bearer tokens. The subject claim is
// the integer id of the actor stamped on every write.
type AuthService struct {
	secret []byte
	now    func() time.Time
}

func NewAuthService(secretKey string) *AuthService {
	return &AuthService{secret: []byte(secretKey), now: time.Now}
}

// IssueToken returns a token for actorID valid for ttl.
func (s *AuthService) IssueToken(actorID int64, ttl time.Duration) (string, error) {
	if actorID <= 0 {
		return "", fmt.Errorf("actor id must be positive, got %d", actorID)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(actorID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ActorID verifies tokenString and returns the actor id it carries.
func (s *AuthService) ActorID(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	actorID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || actorID <= 0 {
		return 0, fmt.Errorf("%w: subject %q is not an actor id", ErrInvalidToken, claims.Subject)
	}
	return actorID, nil
}
