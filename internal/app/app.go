package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "wslider/internal/app/http"
	"wslider/internal/config"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/repository"
	assetsvc "wslider/internal/services/asset_service"
	editorsvc "wslider/internal/services/editor_service"
	slidersvc "wslider/internal/services/slider_service"
	usersvc "wslider/internal/services/user_service"
	filestorage "wslider/internal/storage/filestorage"
	"wslider/internal/storage/postgresql"
	redisapp "wslider/internal/storage/redis"
	httprouters "wslider/internal/transport/http"
	"wslider/internal/web"
	"wslider/internal/widget"
	"wslider/internal/widget/wslider"
)

type App struct {
	HTTPServer *httpapp.Server

	log     *slog.Logger
	storage *postgresql.Storage
	redis   *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	if cfg.AutoMigrate {
		if err := postgresql.Migrate(cfg.DSN); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("migrations applied")
	}

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := rdb.HealthCheck(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: redis: %w", op, err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		storage.Stop()
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool(), rdb)

	userService := usersvc.NewUserService(log, repo.User, cfg.TokenTTL, cfg.TokenSecret)
	assetService := assetsvc.NewAssetService(log, repo.Attachment, fileStorage, cfg.Assets.CacheTTL, cfg.Assets.CleanupInterval)
	sliderService := slidersvc.NewSliderService(log, repo.Post, assetService)
	editorService := editorsvc.NewEditorService(log, sliderService, repo.Draft, assetService, cfg.Editor.DraftTTL)

	widgets := widget.NewRegistry(cfg.Widget.Settings)
	err = widgets.Register(wslider.New(wslider.Assets{
		StyleURL:  "/static/css/w-slider.css",
		ScriptURL: "/static/js/w-slider.js",
		SwiperCSS: cfg.Widget.SwiperCSS,
		SwiperJS:  cfg.Widget.SwiperJS,
	}, cfg.Widget.PreviewSlides))
	if err != nil {
		storage.Stop()
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	renderer, err := web.NewTemplateRenderer(log, nil)
	if err != nil {
		storage.Stop()
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	routers := httprouters.NewRouter(log, userService, sliderService, editorService, assetService, widgets)

	server := httpapp.New(log, httpapp.Options{
		Host:          cfg.HTTP.Host,
		Port:          cfg.HTTP.Port,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		SessionSecret: cfg.SessionSecret,
		UploadsDir:    fileStorage.GetBaseDir(),
		Secure:        cfg.Env == "prod",
		Debug:         cfg.Env != "prod",
	}, routers, renderer)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		log:        log,
		storage:    storage,
		redis:      rdb,
	}, nil
}

func (a *App) Stop(ctx context.Context) {
	const op = "app.Stop"

	log := a.log.With(slog.String("op", op))

	if err := a.HTTPServer.Stop(ctx); err != nil {
		log.Error("failed to stop http server", sl.Err(err))
	}
	if err := a.redis.Close(); err != nil {
		log.Error("failed to close redis", sl.Err(err))
	}
	a.storage.Stop()
}
