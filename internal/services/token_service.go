package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure uniformly: structural
// corruption, wrong signature and natural expiry all look the same to the
// caller. The distinction is only ever logged.
var ErrInvalidToken = errors.New("token is not valid")

// TokenUser is the identity claim block embedded in every token.
type TokenUser struct {
	ID string `json:"id"`
}

// TokenClaims is the JWT payload: {"user":{"id":...}} plus registered claims.
type TokenClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 bearer tokens. Nothing is
// persisted: validity is signature plus expiry, there is no revocation list,
// so a token outlives the account it names until its ttl runs out.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token embedding the user identity with an absolute expiry
// derived from ttl.
func (s *TokenService) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		User: TokenUser{ID: userID.String()},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature integrity, then expiry, and returns the embedded
// user id. Every failure comes back as ErrInvalidToken.
//
// middleware.Protected verifies requests through jwtware with the same HS256
// secret and the default claim validation; a token must be accepted or
// rejected identically by both paths. The claim-shape check lives here and in
// middleware.UserID.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		slog.Debug("token verification failed", "error", err)
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.User.ID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
