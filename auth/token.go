package auth

import (
	"barber-lab/domain"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuerName = "barber-lab"

var ErrInvalidToken = errors.New("invalid or expired token")

// CustomClaims defines the data stored inside the JWT.
type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer signs and checks HS256 tokens carrying the caller identity.
type Issuer struct {
	key      []byte
	duration time.Duration
	now      func() time.Time
}

func NewIssuer(key string, duration time.Duration) *Issuer {
	return &Issuer{key: []byte(key), duration: duration, now: time.Now}
}

// GenerateToken creates a signed JWT for one identity.
func (i *Issuer) GenerateToken(id domain.Identity) (string, error) {
	if !id.Valid() {
		return "", ErrInvalidToken
	}
	now := i.now()
	claims := &CustomClaims{
		UserID: string(id),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuerName,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// ValidateToken checks signature, expiration and issuer, then returns the identity.
func (i *Issuer) ValidateToken(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	id := domain.Identity(claims.UserID)
	if !id.Valid() {
		return "", ErrInvalidToken
	}
	return id, nil
}
