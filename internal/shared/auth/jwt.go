package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Claims is the identity payload carried inside an issued token.
type Claims struct {
	Sub     string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Exp     int64  `json:"exp,omitempty"`
	Iat     int64  `json:"iat,omitempty"`
}

// ErrInvalidToken covers every verification failure so callers cannot
// distinguish a forged signature from an expired token.
var ErrInvalidToken = errors.New("invalid token")

var errMissingSecret = errors.New("jwt secret not configured")

const tokenLifetime = 24 * time.Hour

var encoding = base64.RawURLEncoding

// SignJWT issues an HS256 token for the claims. Iat and Exp default to
// now and now+24h when unset.
func SignJWT(claims Claims) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	if claims.Sub == "" {
		return "", errors.New("sub is required")
	}

	now := time.Now().UTC().Unix()
	if claims.Iat == 0 {
		claims.Iat = now
	}
	if claims.Exp == 0 {
		claims.Exp = now + int64(tokenLifetime/time.Second)
	}

	headerSeg := encoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payloadSeg := encoding.EncodeToString(payload)

	unsigned := headerSeg + "." + payloadSeg
	return unsigned + "." + hmacSegment(unsigned, key), nil
}

// VerifyJWT checks the signature, shape, and expiry of a token and
// returns its claims.
func VerifyJWT(token string) (Claims, error) {
	key, err := secretKey()
	if err != nil {
		return Claims{}, err
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	unsigned := parts[0] + "." + parts[1]
	want := hmacSegment(unsigned, key)
	if !hmac.Equal([]byte(parts[2]), []byte(want)) {
		return Claims{}, ErrInvalidToken
	}

	raw, err := encoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Sub == "" {
		return Claims{}, ErrInvalidToken
	}
	if claims.Exp > 0 && time.Now().UTC().Unix() > claims.Exp {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func hmacSegment(input string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(input))
	return encoding.EncodeToString(mac.Sum(nil))
}

// secretKey reads JWT_SECRET. Production requires an explicit secret;
// everywhere else an empty value falls back to a fixed dev key.
func secretKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "prod", "production":
		if secret == "" {
			return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
		}
	}
	if secret == "" {
		secret = "dev-secret"
	}
	return []byte(secret), nil
}
