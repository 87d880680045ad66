package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"wslider/internal/lib/logger/sl"
	usersvc "wslider/internal/services/user_service"
	"wslider/internal/transport/http/dto/request"
	"wslider/internal/transport/http/dto/response"
	"wslider/internal/web"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по email и паролю. Возвращает JWT-токен и открывает сессию для админки.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.Response{data=models.TokenPair} "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return r.invalidRequest(c, err)
	}

	token, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.startSession(c, token.UserID); err != nil {
		log.Warn("failed to start session", sl.Err(err))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(token))
}

func (r *Routers) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageLogin, web.LoginPage{
		CSRF: csrfToken(c),
		Next: c.QueryParam("next"),
	})
}

// LoginForm handles the admin login form and redirects back to the requested page.
func (r *Routers) LoginForm(c echo.Context) error {
	const op = "http.routers.LoginForm"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest
	page := web.LoginPage{
		CSRF: csrfToken(c),
		Next: c.FormValue("next"),
	}

	if err := c.Bind(&req); err != nil {
		page.Error = "Invalid request"
		return c.Render(http.StatusBadRequest, web.PageLogin, page)
	}
	page.Email = req.Email

	if err := c.Validate(req); err != nil {
		page.Error = "Email and password are required"
		return c.Render(http.StatusBadRequest, web.PageLogin, page)
	}

	token, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, usersvc.ErrInvalidCredentials) {
			log.Error("login failed", sl.Err(err))
		}
		page.Error = "Invalid email or password"
		return c.Render(http.StatusUnauthorized, web.PageLogin, page)
	}

	if err := r.startSession(c, token.UserID); err != nil {
		log.Error("failed to start session", sl.Err(err))
		return c.Render(http.StatusInternalServerError, web.PageLogin, page)
	}

	return c.Redirect(http.StatusSeeOther, safeNext(page.Next))
}

func (r *Routers) Logout(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
		delete(sess.Values, userIDKey)
		_ = sess.Save(c.Request(), c.Response())
	}

	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (r *Routers) startSession(c echo.Context, userID string) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}

	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[userIDKey] = userID

	return sess.Save(c.Request(), c.Response())
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

// safeNext keeps redirects inside the admin.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/admin/cars"
}
