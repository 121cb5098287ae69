package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env             string
		Build           string
		Debug           bool
		TestMode        bool
		AppName         string `validate:"required"`
		SecretKey       string `validate:"required"`
		DefaultFromAddr string `validate:"required"`
		DefaultFromName string
		FrontendBaseURL string
		SendgridApiKey  string
		RollbarToken    string
		Server          ServerConfig
		Auth            AuthConfig
		Checkout        CheckoutConfig
		Visitor         VisitorConfig
		Storage         StorageConfig
		Assets          AssetsConfig
		Certificate     CertificateConfig
		workDir         string
	}

	ServerConfig struct {
		Addr            string `validate:"required"`
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	AuthConfig struct {
		// Latency emulates the network round trip of sign-in and sign-up.
		Latency time.Duration `validate:"gte=0"`
	}

	CheckoutConfig struct {
		Latency time.Duration `validate:"gte=0"`
	}

	VisitorConfig struct {
		CookieName string        `validate:"required"`
		TTL        time.Duration `validate:"gt=0"`
		IdleTTL    time.Duration `validate:"gt=0"` // in-memory visitors are dropped after this long without a request
		CacheSize  int           `validate:"gt=0"`
	}

	StorageConfig struct {
		Backend       string `validate:"oneof=memory redis"`
		RedisAddr     string `validate:"required_if=Backend redis"`
		RedisPassword string
		RedisDB       int `validate:"gte=0"`
	}

	AssetsConfig struct {
		Backend            string `validate:"oneof=fs gcs"`
		Dir                string `validate:"required_if=Backend fs"`
		GCSBucket          string `validate:"required_if=Backend gcs"`
		GCSCredentialsFile string
	}

	CertificateConfig struct {
		VerifyBaseURL string `validate:"required,url"`
		QRSize        int    `validate:"gte=64"`
	}
)

// NewConfig loads the configuration from defaults, the `config/.env.<env>` file (if any) and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "develop")
	conf.SetDefault("appName", "EduVerse")
	conf.SetDefault("secretKey", "w5i1$kz=eduverse-dev-only-)q9#x2m!t7")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("defaultFromName", "EduVerse")
	conf.SetDefault("frontendBaseURL", "http://localhost:8080")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.addr", ":8080")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.debugHost", "localhost:6060")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableReqLogs", false)
	conf.SetDefault("auth.latency", 500*time.Millisecond)
	conf.SetDefault("checkout.latency", 2*time.Second)
	conf.SetDefault("visitor.cookieName", "eduverse_visitor")
	conf.SetDefault("visitor.ttl", 365*24*time.Hour)
	conf.SetDefault("visitor.idleTTL", 30*time.Minute)
	conf.SetDefault("visitor.cacheSize", 10000)
	conf.SetDefault("storage.backend", "memory")
	conf.SetDefault("redis.addr", "")
	conf.SetDefault("redis.password", "")
	conf.SetDefault("redis.db", 0)
	conf.SetDefault("assets.backend", "fs")
	conf.SetDefault("assets.dir", "public")
	conf.SetDefault("assets.gcsBucket", "")
	conf.SetDefault("assets.gcsCredentialsFile", "")
	conf.SetDefault("certificate.verifyBaseURL", "https://eduverse.com/verify/")
	conf.SetDefault("certificate.qrSize", 150)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	wd := projectRoot()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	return &Config{
		Env:             env,
		Build:           conf.GetString("build"),
		Debug:           conf.GetBool("debug"),
		TestMode:        conf.GetBool("testMode"),
		AppName:         conf.GetString("appName"),
		SecretKey:       conf.GetString("secretKey"),
		DefaultFromAddr: conf.GetString("defaultFromEmail"),
		DefaultFromName: conf.GetString("defaultFromName"),
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		SendgridApiKey:  conf.GetString("sendgridApiKey"),
		RollbarToken:    conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Addr:            conf.GetString("server.addr"),
			Host:            conf.GetString("server.host"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		Auth:     AuthConfig{Latency: conf.GetDuration("auth.latency")},
		Checkout: CheckoutConfig{Latency: conf.GetDuration("checkout.latency")},
		Visitor: VisitorConfig{
			CookieName: conf.GetString("visitor.cookieName"),
			TTL:        conf.GetDuration("visitor.ttl"),
			IdleTTL:    conf.GetDuration("visitor.idleTTL"),
			CacheSize:  conf.GetInt("visitor.cacheSize"),
		},
		Storage: StorageConfig{
			Backend:       conf.GetString("storage.backend"),
			RedisAddr:     conf.GetString("redis.addr"),
			RedisPassword: conf.GetString("redis.password"),
			RedisDB:       conf.GetInt("redis.db"),
		},
		Assets: AssetsConfig{
			Backend:            conf.GetString("assets.backend"),
			Dir:                conf.GetString("assets.dir"),
			GCSBucket:          conf.GetString("assets.gcsBucket"),
			GCSCredentialsFile: conf.GetString("assets.gcsCredentialsFile"),
		},
		Certificate: CertificateConfig{
			VerifyBaseURL: conf.GetString("certificate.verifyBaseURL"),
			QRSize:        conf.GetInt("certificate.qrSize"),
		},
		workDir: wd,
	}
}

// Validate checks the loaded configuration with the given validator.
func (c *Config) Validate(validate *validator.Validate) error {
	return validate.Struct(c)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

// WorkDir is the project root the configuration was loaded from.
func (c *Config) WorkDir() string {
	return c.workDir
}

// projectRoot walks up from the working directory until it finds go.mod.
// go test runs from the package directory, so the cwd alone is not enough.
func projectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
