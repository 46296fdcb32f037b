package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// signingMethod is the only accepted token algorithm, on both the issuing
// and validating side.
var signingMethod = jwt.SigningMethodHS256

// SigningCredential holds the symmetric signing key. It is constructed once
// at startup from the configured secret and shared read-only afterwards.
type SigningCredential struct {
	key []byte
}

// NewSigningCredential builds the credential from the configured secret
// (ASCII bytes). An empty secret is a configuration error.
func NewSigningCredential(securityKey string) (SigningCredential, error) {
	if securityKey == "" {
		return SigningCredential{}, errors.New("security key configuration needed")
	}
	return SigningCredential{key: []byte(securityKey)}, nil
}
