package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/route"
	"github.com/trezcool/agenda/core/session"
)

var errSessionNotInCtx = errors.New("session handle not found in echo.Context")

type sessionApi struct {
	store      *session.Store
	auth       *tokenAuth
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
}

func registerSessionAPI(g *echo.Group, auth *tokenAuth, deps ServerDeps) {
	api := sessionApi{
		store:      deps.Sessions,
		auth:       auth,
		logger:     deps.Logger,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	jwt := auth.required()
	ctxSession := ctxSessionMiddleware(api.store, false)

	// un-authed endpoints
	g.POST("/session", api.create)
	g.POST("/session/login", api.login)
	g.GET("/session/events", api.events)

	// authed endpoints
	g.GET("/session", api.retrieve, jwt, ctxSession)
	g.DELETE("/session", api.destroy, jwt, ctxSession)
	g.POST("/session/logout", api.logout, jwt, ctxSession)

	// a missing token routes to the login screens
	g.GET("/route", api.route, auth.optional(), ctxSessionMiddleware(api.store, true))
}

// Handlers

func (api *sessionApi) create(ctx echo.Context) error {
	h := api.store.New()
	return ctx.JSON(http.StatusCreated, CreateSessionResponse{
		ID:          h.ID,
		Destination: route.Select(h.Current()),
	})
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	h, err := api.store.Get(data.SessionID)
	if err != nil {
		return errors.Wrap(err, "finding session by ID")
	}

	ident, err := h.Login(ctx.Request().Context(), data.Name, data.Password)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}

	token, err := api.auth.GenerateToken(api.auth.GetSessionClaims(h, ident))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:       token,
		Identity:    ident,
		Destination: route.Select(&ident),
	})
}

func (api *sessionApi) logout(ctx echo.Context) error {
	h, ok := getContextSession(ctx)
	if !ok {
		return errSessionNotInCtx
	}
	h.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	h, ok := getContextSession(ctx)
	if !ok {
		return errSessionNotInCtx
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(h))
}

func (api *sessionApi) destroy(ctx echo.Context) error {
	h, ok := getContextSession(ctx)
	if !ok {
		return errSessionNotInCtx
	}
	if err := api.store.Drop(h.ID); err != nil {
		return errors.Wrap(err, "dropping session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) route(ctx echo.Context) error {
	var ident *session.Identity
	if h, ok := getContextSession(ctx); ok {
		ident = h.Current()
	}
	return ctx.JSON(http.StatusOK, newRouteResponse(route.Select(ident)))
}

// Request / Response

type (
	LoginRequest struct {
		SessionID string `json:"session_id" validate:"required,uuid"`
		Name      string `json:"name" validate:"max=128"`
		Password  string `json:"password" validate:"max=128"`
	}

	LoginResponse struct {
		Token       string            `json:"token"`
		Identity    session.Identity  `json:"identity"`
		Destination route.Destination `json:"destination"`
	}

	CreateSessionResponse struct {
		ID          string            `json:"id"`
		Destination route.Destination `json:"destination"`
	}

	RouteResponse struct {
		Destination route.Destination `json:"destination"`
		Title       string            `json:"title"`
		Screens     []route.Screen    `json:"screens"`
	}

	SessionResponse struct {
		ID       string            `json:"id"`
		Identity *session.Identity `json:"identity"`
		RouteResponse
	}
)

// Validate trims the session ID; name and password are checked as typed by the session Manager.
func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.SessionID = core.CleanString(lr.SessionID, false)
	return validate.Struct(lr)
}

func newRouteResponse(d route.Destination) RouteResponse {
	return RouteResponse{
		Destination: d,
		Title:       route.Title(d),
		Screens:     route.Screens(d),
	}
}

func newSessionResponse(h *session.Handle) SessionResponse {
	ident := h.Current()
	return SessionResponse{
		ID:            h.ID,
		Identity:      ident,
		RouteResponse: newRouteResponse(route.Select(ident)),
	}
}
