package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"wslider/internal/domain/models"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	SessionName = "session"

	userIDKey = "user_id"
	postKey   = "post"
)

// CurrentUser returns the user set by RequireUser.
func CurrentUser(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// CurrentPost returns the post set by RequirePostEditor.
func CurrentPost(c echo.Context) (models.Post, bool) {
	post, ok := c.Get(postKey).(models.Post)
	return post, ok
}

// HasBearerToken reports whether the request authenticates with a token instead of the session cookie.
func HasBearerToken(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
}

// RequireUser authenticates by bearer token or by the login session. Pages redirect
// to the login form, the JSON API answers 401.
func (r *Routers) RequireUser(redirect bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const op = "http.middleware.RequireUser"

			id, err := r.authenticate(c)
			if err != nil {
				r.log.Debug("authentication failed", slog.String("op", op), sl.Err(err))
			}
			if id == uuid.Nil {
				if redirect {
					return c.Redirect(http.StatusSeeOther, "/admin/login?next="+url.QueryEscape(c.Request().URL.RequestURI()))
				}
				return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
			}

			c.Set(userIDKey, id)

			return next(c)
		}
	}
}

func (r *Routers) authenticate(c echo.Context) (uuid.UUID, error) {
	if HasBearerToken(c) {
		token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		return r.UserService.Authenticate(token)
	}

	sess, err := session.Get(SessionName, c)
	if err != nil {
		return uuid.Nil, err
	}

	raw, ok := sess.Values[userIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, nil
	}

	return uuid.Parse(raw)
}

// RequirePostEditor loads the :post_id post and checks that the current user may edit it.
func (r *Routers) RequirePostEditor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.middleware.RequirePostEditor"

		log := r.log.With(
			slog.String("op", op),
			slog.String("post_id", c.Param("post_id")),
		)

		postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
		if err != nil || postID <= 0 {
			return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
		}

		post, err := r.SliderService.Post(c.Request().Context(), postID)
		if err != nil {
			return r.fail(c, log, err)
		}

		userID, _ := CurrentUser(c)
		allowed, err := r.UserService.CanEditPost(c.Request().Context(), userID, post)
		if err != nil {
			return r.fail(c, log, err)
		}
		if !allowed {
			log.Warn("edit not allowed", slog.String("user_id", userID.String()))

			return c.JSON(http.StatusForbidden, response.ErrForbidden)
		}

		c.Set(postKey, post)

		return next(c)
	}
}
