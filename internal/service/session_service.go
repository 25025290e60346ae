package service

import (
	"fmt"
	"time"

	"personal_diary/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the resolved authorization level of a request. Modelling it as a
// tagged value keeps "admin with no backing user" unrepresentable.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

// Identity is the per-request view of who is acting. The zero value is
// anonymous.
type Identity struct {
	UserID   int
	Username string
	Role     Role
}

func (i Identity) IsAnonymous() bool { return i.Role == RoleAnonymous }
func (i Identity) IsAdmin() bool     { return i.Role == RoleAdmin }

// sessionClaims is the signed cookie payload.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// SessionService issues and parses HS256 session tokens. The token plays the
// role of a server-signed client-held session: identity swaps (impersonation)
// and logout are done by replacing or dropping the cookie, never by mutating
// server state.
type SessionService struct {
	signingKey    []byte
	ttl           time.Duration
	adminUsername string
}

func NewSessionService(signingKey string, ttl time.Duration, adminUsername string) *SessionService {
	return &SessionService{
		signingKey:    []byte(signingKey),
		ttl:           ttl,
		adminUsername: adminUsername,
	}
}

// Issue creates a session token for a fresh login. The admin claim is set
// only for the reserved admin username.
func (s *SessionService) Issue(user *models.User) (string, error) {
	return s.issue(user, user.Username == s.adminUsername)
}

// Impersonated creates a session token for an impersonation target. The admin
// claim is always false, which makes the transition one-way: the original
// admin session is gone once the new cookie is set.
func (s *SessionService) Impersonated(user *models.User) (string, error) {
	return s.issue(user, false)
}

func (s *SessionService) issue(user *models.User, admin bool) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   user.ID,
		Username: user.Username,
		Admin:    admin,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse resolves a token into an Identity. Any failure (bad signature,
// expiry, malformed input) yields the anonymous identity; there is nothing
// for a caller to act on besides treating the request as logged out.
func (s *SessionService) Parse(tokenStr string) Identity {
	if tokenStr == "" {
		return Identity{}
	}

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return Identity{}
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return Identity{}
	}

	role := RoleUser
	if claims.Admin {
		role = RoleAdmin
	}
	return Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role,
	}
}

// TTL is the session lifetime, used for the cookie max-age.
func (s *SessionService) TTL() time.Duration { return s.ttl }
