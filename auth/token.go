package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	PurposeAccess  = "access"
	PurposeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Purpose string `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService signs and verifies the access/refresh token pair. The secret
// and both lifetimes are injected at construction, never read from globals.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessMinutes, refreshDays int) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
	}
}

func (s *TokenService) Secret() []byte {
	return s.secret
}

func (s *TokenService) IssueAccessToken(subjectID uuid.UUID) (string, error) {
	return s.issue(subjectID, PurposeAccess, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(subjectID uuid.UUID) (string, error) {
	return s.issue(subjectID, PurposeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(subjectID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify fails closed: a bad signature, an expired token and a purpose
// mismatch all come back as ErrInvalidToken.
func (s *TokenService) Verify(tokenString, purpose string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
