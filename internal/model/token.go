package model

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "Bearer"

// TokenPair is the response shape of login and reissue: a signed short-lived
// access token plus an opaque long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"` // access token lifetime in milliseconds
}
