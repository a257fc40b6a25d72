package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// unauthorizedBody is written for a missing or invalid bearer token.
var unauthorizedBody = errs.Response{Success: false, Code: "UNAUTHORIZED", Error: "Unauthorized"}

// RequireAuth verifies the Clerk session token in the Authorization header.
// On success the Clerk subject becomes the user id that scopes every query,
// and the request logger is enriched with it.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(auth.authorizationOptions()...))(
		func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok || claims.Subject == "" {
				GetLogger(c).Warn().
					Str("function", "RequireAuth").
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", true)
			}

			c.Set(UserIDKey, claims.Subject)
			SetLogger(c, GetLogger(c).With().Str("user_id", claims.Subject).Logger())

			GetLogger(c).Debug().
				Str("function", "RequireAuth").
				Msg("user authenticated successfully")

			return next(c)
		})
}

func (auth *AuthMiddleware) authorizationOptions() []clerkhttp.AuthorizationOption {
	cfg := auth.server.Config.Auth

	opts := []clerkhttp.AuthorizationOption{
		clerkhttp.Leeway(cfg.Leeway),
		clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
	}
	if cfg.AuthorizedParty != "" {
		opts = append(opts, clerkhttp.AuthorizedPartyMatches(cfg.AuthorizedParty))
	}
	return opts
}

func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(unauthorizedBody); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "RequireAuth").
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Msg("rejected request without valid session token")
}
