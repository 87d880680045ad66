package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"wslider/internal/lib/validate"
	appmiddleware "wslider/internal/middleware"
	httprouters "wslider/internal/transport/http"
	"wslider/internal/web"

	"github.com/arl/statsviz"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type Options struct {
	Host          string
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	SessionSecret string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
	Secure     bool
	// Debug mounts runtime charts under /debug/statsviz/.
	Debug bool
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	opts    Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, renderer echo.Renderer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = validate.New()
	e.Renderer = renderer

	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(opts.SessionSecret))))

	mux := http.NewServeMux()
	if opts.Debug {
		if err := statsviz.Register(mux); err != nil {
			log.Warn("statsviz is not available", slog.String("error", err.Error()))
		}
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		opts:    opts,
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "http.Server.Stop"

	s.log.Info("stopping http server", slog.String("op", op))

	optCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.opts.Host, s.opts.Port)
}

func (s *Server) csrf() echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:wslider_meta_box_nonce,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   s.opts.Secure,
		CookieSameSite: http.SameSiteLaxMode,
		// token clients do not carry the session cookie
		Skipper: httprouters.HasBearerToken,
	})
}

func (s *Server) BuildRouters() {
	r := s.routers

	s.e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.e.StaticFS("/static", web.Static())
	if s.opts.UploadsDir != "" {
		s.e.Static("/uploads", s.opts.UploadsDir)
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	s.e.GET("/cars/:post_id/slider", r.SliderPage)

	if s.opts.Debug {
		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}
	}

	api := s.e.Group("/api/v1", middleware.CORS())
	{
		api.POST("/login", r.Login)
		api.GET("/widgets", r.ListWidgets)
		api.GET("/cars/:post_id/slider", r.GetSlider)

		adminAPI := api.Group("/admin", s.csrf(), r.RequireUser(false))
		{
			adminAPI.POST("/attachments", r.UploadAttachment)
			adminAPI.GET("/attachments", r.ListAttachments)

			drafts := adminAPI.Group("/cars/:post_id/drafts", r.RequirePostEditor)
			{
				drafts.POST("", r.OpenDraft)
				drafts.GET("/:draft_id", r.GetDraft)
				drafts.DELETE("/:draft_id", r.DiscardDraft)
				drafts.POST("/:draft_id/colors", r.AddColor)
				drafts.DELETE("/:draft_id/colors/:name", r.RemoveColor)
				drafts.PUT("/:draft_id/colors/:name/gallery", r.SetGallery)
				drafts.DELETE("/:draft_id/colors/:name/gallery", r.ClearGallery)
				drafts.PUT("/:draft_id/colors/:name/color", r.SetColorValue)
			}
		}
	}

	admin := s.e.Group("/admin", s.csrf())
	{
		admin.GET("/login", r.LoginPage)
		admin.POST("/login", r.LoginForm)
		admin.POST("/logout", r.Logout)

		requireUser := r.RequireUser(true)

		admin.GET("/cars", r.CarsPage, requireUser)
		admin.GET("/widgets/:name/preview", r.WidgetPreview, requireUser)
		admin.GET("/cars/:post_id/edit", r.EditorPage, requireUser, r.RequirePostEditor)
		admin.POST("/cars/:post_id/edit", r.SubmitEditor, requireUser, r.RequirePostEditor)
	}
}
