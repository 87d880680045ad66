package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env           string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN           string            `yaml:"dsn" env:"DSN" env-required:"true"`
	TokenTTL      time.Duration     `yaml:"token_ttl" env-default:"1h"`
	TokenSecret   string            `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	SessionSecret string            `yaml:"session_secret" env:"SESSION_SECRET" env-required:"true"`
	AutoMigrate   bool              `yaml:"auto_migrate" env-default:"true"`
	HTTP          HTTPConfig        `yaml:"http"`
	FileStorage   FileStorageConfig `yaml:"file_storage"`
	Redis         RedisConf         `yaml:"redis"`
	Assets        AssetsConfig      `yaml:"assets"`
	Editor        EditorConfig      `yaml:"editor"`
	Widget        WidgetConfig      `yaml:"widget"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type AssetsConfig struct {
	CacheTTL        time.Duration `yaml:"cache_ttl" env-default:"5m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env-default:"10m"`
}

type EditorConfig struct {
	DraftTTL time.Duration `yaml:"draft_ttl" env-default:"2h"`
}

type WidgetConfig struct {
	// Settings override control defaults per widget name.
	Settings      map[string]map[string]string `yaml:"settings"`
	PreviewSlides []string                     `yaml:"preview_slides"`
	SwiperCSS     string                       `yaml:"swiper_css" env-default:"https://unpkg.com/swiper@8/swiper-bundle.min.css"`
	SwiperJS      string                       `yaml:"swiper_js" env-default:"https://unpkg.com/swiper@8/swiper-bundle.min.js"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &PathError{Path: configPath}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &ReadError{Err: err}
	}

	return &cfg, nil
}

type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "config file does not exist: " + e.Path
}

type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "cannot read config: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
