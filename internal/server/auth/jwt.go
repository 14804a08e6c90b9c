// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"time"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload embedded in every token. No expiry is set:
// a token is minted once at registration and returned verbatim at login.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	RoleID    string `json:"roleId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Issuer signs Claims with a process-wide HMAC secret.
type Issuer struct {
	secretKey []byte
	now       func() time.Time
}

func NewIssuer(secretKey string) (*Issuer, error) {
	if secretKey == "" {
		return nil, common.ErrMissingSecret
	}
	return &Issuer{secretKey: []byte(secretKey), now: time.Now}, nil
}

func (i *Issuer) GenerateToken(email, roleID, firstName, lastName string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
		Email:     email,
		RoleID:    roleID,
		FirstName: firstName,
		LastName:  lastName,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (i *Issuer) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
