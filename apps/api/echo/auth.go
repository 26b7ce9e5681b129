package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/session"
)

const (
	contextTokenKey   = "sessionToken"
	contextSessionKey = "session"
	tokenAudience     = "SchoolAgenda"
)

// Claims represents the authorization claims transmitted via a JWT.
// The subject is the ID of the session handle the token was issued for.
type Claims struct {
	jwt.StandardClaims
	DisplayName string `json:"display_name,omitempty"`
	IsStudent   bool   `json:"is_student,omitempty"` // -> STUDENT AREA
	IsTeacher   bool   `json:"is_teacher,omitempty"` // -> TEACHER AREA
}

type tokenAuth struct {
	appName  string
	expDelta time.Duration
	config   middleware.JWTConfig
}

func newTokenAuth(conf *core.Config) *tokenAuth {
	return &tokenAuth{
		appName:  conf.AppName,
		expDelta: conf.Server.JWTExpirationDelta,
		config: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

// required returns the JWT auth middleware.
func (a *tokenAuth) required() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(a.config)
}

// optional returns a JWT auth middleware letting requests without an Authorization header through.
func (a *tokenAuth) optional() echo.MiddlewareFunc {
	config := a.config
	config.Skipper = func(ctx echo.Context) bool {
		return ctx.Request().Header.Get(echo.HeaderAuthorization) == ""
	}
	return middleware.JWTWithConfig(config)
}

func (a *tokenAuth) GetSessionClaims(h *session.Handle, ident session.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.appName,
			Subject:   h.ID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(a.expDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		DisplayName: ident.DisplayName,
		IsStudent:   ident.IsStudent(),
		IsTeacher:   ident.IsTeacher(),
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func (a *tokenAuth) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.config.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.config.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (*session.Handle, bool) {
	h, ok := ctx.Get(contextSessionKey).(*session.Handle)
	return h, ok
}

// ctxSessionMiddleware loads the session handle the token was issued for.
// With optional set, requests without a token go through without a session.
func ctxSessionMiddleware(store *session.Store, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				if optional {
					return next(ctx)
				}
				return errors.Wrap(err, "getting context claims")
			}

			h, err := store.Get(claims.Subject)
			if err != nil {
				if errors.Cause(err) == session.ErrSessionNotFound {
					return errSessionExpired
				}
				return errors.Wrap(err, "finding session by ID")
			}
			ctx.Set(contextSessionKey, h)
			return next(ctx)
		}
	}
}
