package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logistics/internal/pkg/actor"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	headerDevUser  = "X-Dev-User"
	headerDevRoles = "X-Dev-Roles"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authenticator resolves the caller of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (actor.Actor, error)
}

// DevAuthenticator trusts the X-Dev-User and X-Dev-Roles headers. A request
// without them acts as an admin named "dev". Only for local runs.
type DevAuthenticator struct{}

func (DevAuthenticator) Authenticate(r *http.Request) (actor.Actor, error) {
	subject := strings.TrimSpace(r.Header.Get(headerDevUser))
	if subject == "" {
		subject = "dev"
	}

	raw := r.Header.Get(headerDevRoles)
	if strings.TrimSpace(raw) == "" {
		return actor.Actor{Subject: subject, Roles: []actor.Role{actor.RoleAdmin}}, nil
	}

	roles, err := parseRoles(strings.Split(raw, ","))
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.Actor{Subject: subject, Roles: roles}, nil
}

// tokenClaims is the payload of an access token: the registered claims plus
// the caller's roles.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// JWTAuthenticator verifies HS256 bearer tokens signed with a shared secret.
type JWTAuthenticator struct {
	secret []byte
	now    func() time.Time
}

func NewJWTAuthenticator(secret string) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTAuthenticator{secret: []byte(secret), now: time.Now}, nil
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) (actor.Actor, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return actor.Actor{}, ErrMissingCredentials
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if claims.Subject == "" {
		return actor.Actor{}, fmt.Errorf("%w: token has no subject", ErrInvalidCredentials)
	}

	roles, err := parseRoles(claims.Roles)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.Actor{Subject: claims.Subject, Roles: roles}, nil
}

// Issue signs a token for subject valid for ttl. Used by tooling and tests.
func (a *JWTAuthenticator) Issue(subject string, roles []actor.Role, ttl time.Duration) (string, error) {
	now := a.now()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Roles: names,
	})
	return token.SignedString(a.secret)
}

func parseRoles(raw []string) ([]actor.Role, error) {
	roles := make([]actor.Role, 0, len(raw))
	for _, r := range raw {
		role, err := actor.ParseRole(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// authenticate puts the resolved actor into the request context.
func authenticate(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who, err := a.Authenticate(c.Request())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required").SetInternal(err)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(actor.WithActor(req.Context(), who)))
			return next(c)
		}
	}
}

// requireRoles lets the request through when the actor holds one of roles.
func requireRoles(roles ...actor.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who, ok := actor.FromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !who.HasAnyRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
