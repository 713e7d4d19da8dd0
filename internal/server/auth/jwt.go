// Package auth mints and parses the signed bearer tokens handed out by Login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims (jti, exp, iat) and the account and
// client the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	ClientID  string `json:"client_id"`
}

// GenerateToken signs an HS256 token with the given jti. The caller persists
// the jti so the token can be resolved later.
func GenerateToken(tokenID, accountID, clientID string, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
		AccountID: accountID,
		ClientID:  clientID,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates signature and expiry and returns the claims.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// validation yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" || claims.AccountID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
