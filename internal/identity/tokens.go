package identity

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simpleapi/simpleapi/internal/models"
)

// Signer issues and validates compact signed tokens. Tokens are
// self-contained: a validator needs only the shared key, issuer and
// audience, no server-side state.
type Signer struct {
	cred     SigningCredential
	issuer   string
	audience string
}

func NewSigner(cred SigningCredential, issuer, audience string) *Signer {
	return &Signer{cred: cred, issuer: issuer, audience: audience}
}

// Issue signs the given claim set with the configured issuer and audience.
// Not-before is fixed to the call time regardless of what the claim set
// carries; expiry is the given timestamp.
func (s *Signer) Issue(claims []models.Claim, expiry time.Time) (string, error) {
	mc := claimsToMap(claims)
	mc["iss"] = s.issuer
	mc["aud"] = s.audience
	mc["nbf"] = jwt.NewNumericDate(time.Now())
	mc["exp"] = jwt.NewNumericDate(expiry)
	return jwt.NewWithClaims(signingMethod, mc).SignedString(s.cred.key)
}

// Verify validates signature, algorithm, issuer, audience and expiry (which
// must be present) and returns the embedded claims.
func (s *Signer) Verify(ctx context.Context, raw string) (map[string]interface{}, error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return s.cred.key, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	return parsed.Claims.(jwt.MapClaims), nil
}

// claimsToMap flattens the claim list into a JWT payload. Duplicate types
// collapse into arrays; not-before/issued-at stamps become numeric dates so
// validators treat them as registered claims.
func claimsToMap(claims []models.Claim) jwt.MapClaims {
	mc := jwt.MapClaims{}
	for _, c := range claims {
		var value interface{} = c.Value
		if c.Type == "nbf" || c.Type == "iat" {
			if ts, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
				value = jwt.NewNumericDate(time.Unix(ts, 0))
			}
		}
		existing, ok := mc[c.Type]
		if !ok {
			mc[c.Type] = value
			continue
		}
		if list, isList := existing.([]interface{}); isList {
			mc[c.Type] = append(list, value)
		} else {
			mc[c.Type] = []interface{}{existing, value}
		}
	}
	return mc
}
