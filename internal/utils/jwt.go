package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // errors reports malformed claims
	"strconv" // strconv renders the subject claim
	"time"    // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned when a token cannot be verified or its
// claims are malformed.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.
type AccessToken struct {
	Token string    `json:"token"`     // the serialized JWT string
	Exp   time.Time `json:"expiresAt"` // the UTC expiration time
}

// Claims are the identity fields carried by an access token.
type Claims struct {
	AccountID uint64
	Role      string
}

// NewAccessToken builds and signs an HS256 JWT for an account.  The JWT
// carries the standard subject (sub), expiration (exp) and issued at (iat)
// claims plus the account role.  sub is the decimal account id.
func NewAccessToken(secret string, accountID uint64, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(accountID, 10),
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw with secret and extracts its claims.  Only
// HMAC signed tokens are accepted; expiry is enforced by the jwt library.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var id uint64
	// sub may arrive as a string or, from older clients, as a JSON number
	switch v := mc["sub"].(type) {
	case string:
		id, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Claims{}, ErrInvalidToken
		}
	case float64:
		id = uint64(v)
	default:
		return Claims{}, ErrInvalidToken
	}
	role, _ := mc["role"].(string)
	if id == 0 || role == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{AccountID: id, Role: role}, nil
}
