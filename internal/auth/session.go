package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// Session is the read-only request context every role-gated flow receives.
// It is carried explicitly on the request, never through package globals.
type Session struct {
	UserID       string
	RestaurantID string
	Role         string
}

// RoleManager marks staff allowed into menu and inventory management.
const RoleManager = "manager"

const sessionKey = "chowhub.session"

var errInvalidToken = errors.New("invalid session token")

// Tokens issues and verifies the bearer tokens the dashboard sends.
type Tokens struct {
	secret []byte
}

// NewTokens requires a non-empty signing secret.
func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Tokens{secret: []byte(secret)}, nil
}

// Issue signs a session token valid for 24 hours.
func (t *Tokens) Issue(s Session) (string, error) {
	claims := jwt.MapClaims{
		"userId":       s.UserID,
		"restaurantId": s.RestaurantID,
		"role":         s.Role,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses a token back into a session.
func (t *Tokens) Verify(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	session := &Session{
		UserID:       stringClaim(claims, "userId"),
		RestaurantID: stringClaim(claims, "restaurantId"),
		Role:         stringClaim(claims, "role"),
	}
	if session.UserID == "" {
		return nil, errInvalidToken
	}
	return session, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// Middleware authenticates the bearer token and attaches the session to the
// request context.
func Middleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "use 'Bearer <token>' authorization"})
			c.Abort()
			return
		}
		session, err := tokens.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// ManagerOnly rejects sessions without the manager role. Must run after
// Middleware.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := FromContext(c)
		if session == nil || session.Role != RoleManager {
			c.JSON(http.StatusForbidden, gin.H{"error": "manager role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// FromContext returns the authenticated session, or nil outside the
// middleware chain.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}
