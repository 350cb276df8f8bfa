package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	// FrontendBaseURL is the address the rendering layer is served from;
	// share links are built against it.
	FrontendBaseURL string

	Server struct {
		Host            string
		Port            string
		ShutdownTimeout time.Duration
	}

	Storage struct {
		// Engine is one of "sqlite" or "memory".
		Engine string
		// Dir holds the sqlite database file.
		Dir string
	}

	Upload struct {
		MaxBytes     int64
		AllowedTypes []string
	}

	DefaultFromName string
	DefaultFromAddr string
	SendgridApiKey  string
	RollbarToken    string
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

func (c *Config) StoragePath() string {
	return filepath.Join(c.Storage.Dir, "darasa.db")
}

// NewConfig builds the app configuration from defaults, an optional
// config/.env.<env> file and environment variables.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("build", "dev")
	v.SetDefault("frontendBaseURL", "http://localhost:8000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("storage.engine", "sqlite")
	v.SetDefault("storage.dir", ".")
	v.SetDefault("upload.maxBytes", int64(10*1024*1024))
	v.SetDefault("upload.allowedTypes", []string{"image/jpeg", "image/png", "image/gif", "application/pdf"})
	v.SetDefault("defaultFromName", "Darasa")
	v.SetDefault("defaultFromAddr", "noreply@localhost")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("storage.engine", "memory")
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		log.Fatalf("config.Unmarshal: %v", err)
	}
	conf.Env = env
	return conf
}
