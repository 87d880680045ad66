package httpapp_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpapp "wslider/internal/app/http"
	"wslider/internal/domain/models"
	usersvc "wslider/internal/services/user_service"
	"wslider/internal/storage"
	httprouters "wslider/internal/transport/http"
	"wslider/internal/web"
	"wslider/internal/widget"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var userID = uuid.MustParse("9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d")

type fakeUsers struct {
	httprouters.UserService
}

func (fakeUsers) Login(_ context.Context, email, password string) (models.TokenPair, error) {
	if email != "editor@example.com" || password != "secret-password" {
		return models.TokenPair{}, usersvc.ErrInvalidCredentials
	}
	return models.TokenPair{UserID: userID.String(), AccessToken: "jwt"}, nil
}

func (fakeUsers) CanEditPost(_ context.Context, id uuid.UUID, post models.Post) (bool, error) {
	return id == post.AuthorID, nil
}

var coupe = models.Post{ID: 3, PostType: models.PostTypeCar, Title: "Coupe", AuthorID: userID}

type fakeSlider struct {
	httprouters.SliderService
	saved *[]string
}

func (fakeSlider) Cars(context.Context, int, int) ([]models.Post, int, error) {
	return []models.Post{coupe}, 1, nil
}

func (fakeSlider) Post(_ context.Context, id int64) (models.Post, error) {
	if id != coupe.ID {
		return models.Post{}, storage.ErrPostNotFound
	}
	return coupe, nil
}

func (f fakeSlider) SaveSerialized(_ context.Context, _ int64, raw string) error {
	if f.saved != nil {
		*f.saved = append(*f.saved, raw)
	}
	return nil
}

type ServerSuite struct {
	suite.Suite
	handler http.Handler
	cookies map[string]*http.Cookie
	saved   []string
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	renderer, err := web.NewTemplateRenderer(log, nil)
	s.Require().NoError(err)

	s.saved = nil
	routers := httprouters.NewRouter(log, fakeUsers{}, fakeSlider{saved: &s.saved}, nil, nil, widget.NewRegistry(nil))
	srv := httpapp.New(log, httpapp.Options{SessionSecret: "suite-session-secret"}, routers, renderer)
	srv.BuildRouters()

	s.handler = srv.Handler()
	s.cookies = make(map[string]*http.Cookie)
}

func (s *ServerSuite) login() string {
	token := s.csrfToken()

	rec := s.postForm("/admin/login", url.Values{
		"_csrf":    {token},
		"email":    {"editor@example.com"},
		"password": {"secret-password"},
	})
	s.Require().Equal(http.StatusSeeOther, rec.Code)

	return token
}

// do sends req with the cookies collected so far and keeps the new ones.
func (s *ServerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *ServerSuite) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req)
}

func (s *ServerSuite) csrfToken() string {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	c, ok := s.cookies["_csrf"]
	s.Require().True(ok, "csrf cookie is set")
	s.Require().Contains(rec.Body.String(), `name="_csrf" value="`+c.Value+`"`)
	return c.Value
}

func (s *ServerSuite) TestHealthAndStatic() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/static/js/w-slider.js", nil))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "http_requests_total")
}

func (s *ServerSuite) TestLoginRequiresCSRF() {
	rec := s.postForm("/admin/login", url.Values{
		"email":    {"editor@example.com"},
		"password": {"secret-password"},
	})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.NotContains(s.cookies, httprouters.SessionName)
}

func (s *ServerSuite) TestSaveRequiresNonce() {
	token := s.login()
	const hash = `{"Red":{"color":"#ff0000","images":"1"}}`

	rec := s.postForm("/admin/cars/3/edit", url.Values{"wslider-hash": {hash}})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.saved)

	rec = s.postForm("/admin/cars/3/edit", url.Values{
		"wslider-hash":           {hash},
		"wslider_meta_box_nonce": {"forged"},
	})
	s.Equal(http.StatusForbidden, rec.Code)
	s.Empty(s.saved)

	rec = s.postForm("/admin/cars/3/edit", url.Values{
		"wslider-hash":           {hash},
		"wslider_meta_box_nonce": {token},
	})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal([]string{hash}, s.saved)
}

func (s *ServerSuite) TestLoginSessionFlow() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin/cars", nil))
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/login?next=%2Fadmin%2Fcars", rec.Header().Get(echo.HeaderLocation))

	token := s.csrfToken()

	rec = s.postForm("/admin/login", url.Values{
		"_csrf":    {token},
		"email":    {"editor@example.com"},
		"password": {"secret-password"},
		"next":     {"/admin/cars"},
	})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/cars", rec.Header().Get(echo.HeaderLocation))
	s.Contains(s.cookies, httprouters.SessionName)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin/cars", nil))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Coupe")

	rec = s.postForm("/admin/logout", url.Values{"_csrf": {token}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin/cars", nil))
	s.Equal(http.StatusSeeOther, rec.Code)
}

func (s *ServerSuite) TestLoginWrongPassword() {
	token := s.csrfToken()

	rec := s.postForm("/admin/login", url.Values{
		"_csrf":    {token},
		"email":    {"editor@example.com"},
		"password": {"not-the-password"},
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Invalid email or password")
	s.Contains(rec.Body.String(), `value="editor@example.com"`)
}

func (s *ServerSuite) TestUnsafeNextIsIgnored() {
	token := s.csrfToken()

	rec := s.postForm("/admin/login", url.Values{
		"_csrf":    {token},
		"email":    {"editor@example.com"},
		"password": {"secret-password"},
		"next":     {"//evil.example/admin/"},
	})

	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/cars", rec.Header().Get(echo.HeaderLocation))
}

func TestServer_APIAnonymous(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := web.NewTemplateRenderer(log, nil)
	require.NoError(t, err)

	srv := httpapp.New(log, httpapp.Options{SessionSecret: "x"}, httprouters.NewRouter(log, fakeUsers{}, fakeSlider{}, nil, nil, widget.NewRegistry(nil)), renderer)
	srv.BuildRouters()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/attachments", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_DebugCharts(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := web.NewTemplateRenderer(log, nil)
	require.NoError(t, err)

	for _, debug := range []bool{true, false} {
		srv := httpapp.New(log, httpapp.Options{SessionSecret: "x", Debug: debug}, httprouters.NewRouter(log, fakeUsers{}, fakeSlider{}, nil, nil, widget.NewRegistry(nil)), renderer)
		srv.BuildRouters()

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/statsviz/", nil))

		if debug {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}
	}
}
