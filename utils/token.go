package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type JwtCustomClaim struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
	jwt.StandardClaims
}

// ExpiresAtTime returns the expiry as time.Time (zero if unset).
func (c *JwtCustomClaim) ExpiresAtTime() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

type JwtManager struct {
	secret   []byte
	lifespan time.Duration
}

func NewJwtManager(secret string, lifespan time.Duration) *JwtManager {
	if secret == "" {
		secret = "DailyReport-Secret"
	}
	if lifespan <= 0 {
		lifespan = 30 * time.Minute
	}
	return &JwtManager{secret: []byte(secret), lifespan: lifespan}
}

func (m *JwtManager) Lifespan() time.Duration {
	return m.lifespan
}

// JwtGenerate signs a token for the user. The jti is a fresh uuid so the token can be revoked on logout.
func (m *JwtManager) JwtGenerate(userID int, role string, now time.Time) (string, *JwtCustomClaim, error) {
	claims := &JwtCustomClaim{
		ID:   userID,
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   strconv.Itoa(userID),
			ExpiresAt: now.Add(m.lifespan).Unix(),
			IssuedAt:  now.Unix(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	token, err := t.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}

	return token, claims, nil
}

func (m *JwtManager) JwtValidate(token string) (*JwtCustomClaim, error) {
	parsed, err := jwt.ParseWithClaims(token, &JwtCustomClaim{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("there's a problem with the signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	// sub wins over the id claim
	if claims.Subject != "" {
		id, err := strconv.Atoi(claims.Subject)
		if err != nil {
			return nil, errors.New("invalid token subject")
		}
		claims.ID = id
	}
	if claims.ID <= 0 {
		return nil, errors.New("invalid token subject")
	}
	return claims, nil
}
