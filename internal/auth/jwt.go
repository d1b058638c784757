package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// VerdictKind is the outcome of access-token verification. The four kinds
// are checked in fixed precedence: absent, malformed, expired, valid.
type VerdictKind int

const (
	VerdictAbsent VerdictKind = iota
	VerdictMalformed
	VerdictExpired
	VerdictValid
)

type Verdict struct {
	Kind   VerdictKind
	UserID string // set only for VerdictValid
}

type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

func (m *Manager) GenerateAccessToken(userID string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// NewRefreshToken returns an opaque random credential. Only its HMAC hash
// is ever stored server-side.
func (m *Manager) NewRefreshToken() (string, error) {
	buf := make([]byte, 32)

	_, err := rand.Read(buf)

	if err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

// HashRefreshToken is a deterministic HMAC hash (server-side pepper = JWT
// secret bytes). Store this, never the raw refresh token.
func (m *Manager) HashRefreshToken(raw string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHeader classifies a raw Authorization header value. The token is
// taken to be the second space-separated field; a header without one counts
// as absent, which is why "asdasdadad" is unauthorised while
// "i'm not a token" parses (and fails) as a JWT.
func (m *Manager) VerifyHeader(header string) Verdict {
	parts := strings.Split(header, " ")

	if len(parts) < 2 || parts[1] == "" {
		return Verdict{Kind: VerdictAbsent}
	}

	return m.verifyToken(parts[1])
}

func (m *Manager) verifyToken(raw string) Verdict {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Verdict{Kind: VerdictExpired}
		}

		return Verdict{Kind: VerdictMalformed}
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return Verdict{Kind: VerdictMalformed}
	}

	id := claims.UserID

	if id == "" {
		id = claims.Subject
	}

	if id == "" {
		return Verdict{Kind: VerdictMalformed}
	}

	return Verdict{Kind: VerdictValid, UserID: id}
}
