// Package auth contains the credential hasher and the session token issuer
// used by the registration and login flows.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medvault/medvault/internal/common"
)

// ErrMissingSecretKey indicates the issuer was constructed without a signing
// secret. This is a startup-time misconfiguration, not a per-request error.
var ErrMissingSecretKey = errors.New("auth: signing secret is required")

// DefaultTokenValidity is used when no validity is configured.
const DefaultTokenValidity = 24 * time.Hour

// Claims is the set of assertions embedded in a session token: the
// registered claims plus the user's email and full name. The FullName key
// is capitalized on the wire; verifying layers look it up by that name.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	FullName string `json:"FullName,omitempty"`
}

// TokenIssuer builds and signs session tokens with a symmetric key (HS256).
// Issuer and audience are embedded in every token and must match what the
// verifier checks.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	audience  string
	validity  time.Duration
	parser    *jwt.Parser
}

// NewTokenIssuer constructs a TokenIssuer from explicit configuration
// values. It fails when the secret is empty; a validity of zero or less
// falls back to DefaultTokenValidity.
func NewTokenIssuer(secretKey, issuer, audience string, validity time.Duration) (*TokenIssuer, error) {
	if secretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)

	return &TokenIssuer{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		validity:  validity,
		parser:    parser,
	}, nil
}

// Issue creates a signed token for the given user. The expiry is computed
// from the supplied now so callers stay in control of the clock. Each token
// carries a fresh random jti, so two tokens for the same login are distinct.
func (i *TokenIssuer) Issue(userID, email, fullName string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:    email,
		FullName: fullName,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseClaims verifies a token's signature, issuer, audience, and expiry,
// and returns its claims. Expired tokens yield common.ErrTokenExpired; any
// other verification failure yields common.ErrInvalidToken.
func (i *TokenIssuer) ParseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := i.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
