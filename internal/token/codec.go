package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tbessonov/shopauth/internal/model"
)

// minKeyLen is the minimum HMAC key size accepted at startup.
const minKeyLen = 32

// Claims is the fixed access-token payload: subject and time bounds come from
// the registered claims, the role label is the only custom claim.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec produces and parses HS256-signed access tokens. It holds the
// process-wide symmetric key and is safe for concurrent use.
//
// The codec deliberately does not check expiry: Parse verifies the signature
// and structure only, so that a reissue can recover the subject from an
// already-expired token. Expiry is the Validator's concern.
type Codec struct {
	key []byte
}

// NewCodec validates the signing key material. A missing or short key is a
// startup error; there is no degraded mode.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", minKeyLen, len(key))
	}
	return &Codec{key: key}, nil
}

// Issue signs a token with claims {sub, role, iat, exp} under the codec key.
func (c *Codec) Issue(subject string, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature over the full token body and returns the
// claims. Structurally invalid input fails with ErrMalformedToken before any
// signature check; a signature that does not recompute under the codec key
// fails with ErrInvalidSignature. Expired tokens parse successfully.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, model.ErrMalformedToken
		}
		return nil, model.ErrInvalidSignature
	}
	if !token.Valid {
		return nil, model.ErrInvalidSignature
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, model.ErrMalformedToken
	}

	return claims, nil
}
