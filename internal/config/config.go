package config

import (
	"log"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting. It is built once in main
// and passed by reference to the components that need it.
type Config struct {
	Env  string `env:"APP_ENV,default=development"`
	Port string `env:"PORT,default=5000"`

	MongoURI string `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB,default=camp_directory"`

	JWTSecret       string        `env:"JWT_SECRET,required"`
	JWTExpire       time.Duration `env:"JWT_EXPIRE,default=720h"`
	JWTCookieExpire time.Duration `env:"JWT_COOKIE_EXPIRE,default=720h"`

	StorageDriver  string `env:"STORAGE_DRIVER,default=disk"`
	FileUploadPath string `env:"FILE_UPLOAD_PATH,default=./public/uploads"`
	MaxFileUpload  int64  `env:"MAX_FILE_UPLOAD,default=1000000"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT,default=localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY,default=minioadmin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY,default=minioadmin"`
	MinioBucket    string `env:"MINIO_BUCKET,default=bootcamp-photos"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL,default=false"`

	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=10m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX,default=100"`
}

// Load reads .env if present and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
