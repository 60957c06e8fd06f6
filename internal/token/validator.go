package token

import "time"

// Validator answers whether a presented access token is currently usable.
type Validator struct {
	codec *Codec
	now   func() time.Time
}

// NewValidator creates a Validator backed by the codec.
func NewValidator(codec *Codec) *Validator {
	return &Validator{codec: codec, now: time.Now}
}

// Valid reports whether the token has a good signature and has not expired.
// Any parse failure means false; parse detail never reaches the caller.
// A token presented at the exact expiry instant is already expired.
func (v *Validator) Valid(tokenString string) bool {
	claims, err := v.codec.Parse(tokenString)
	if err != nil {
		return false
	}
	return v.now().Before(claims.ExpiresAt.Time)
}

// Subject returns the subject claim of a signature-valid token. Expiry is not
// re-checked here; callers gate on Valid first when freshness matters.
func (v *Validator) Subject(tokenString string) (string, error) {
	claims, err := v.codec.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
