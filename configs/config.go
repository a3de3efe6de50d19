package configs

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"devclub.community/configs/configslog"
)

// CommunityLinks holds the public links of the community shown on the site.
type CommunityLinks struct {
	WhatsApp  string `envconfig:"WHATSAPP_GROUP_URL" default:"https://chat.whatsapp.com/devclubcommunity"`
	Discord   string `envconfig:"DISCORD_INVITE_URL" default:"https://discord.gg/devclub"`
	Instagram string `envconfig:"INSTAGRAM_URL" default:"https://www.instagram.com/devclub"`
	LinkedIn  string `envconfig:"LINKEDIN_URL" default:"https://www.linkedin.com/company/devclub"`
	Email     string `envconfig:"CONTACT_EMAIL" default:"hello@devclub.community"`
}

// Mailchimp holds newsletter list credentials.
type Mailchimp struct {
	APIKey       string `envconfig:"MAILCHIMP_API_KEY"`
	AudienceID   string `envconfig:"MAILCHIMP_AUDIENCE_ID"`
	ServerPrefix string `envconfig:"MAILCHIMP_SERVER_PREFIX" default:"us12"`
}

// Brevo holds transactional email credentials.
type Brevo struct {
	APIKey      string `envconfig:"BREVO_API_KEY"`
	SenderName  string `envconfig:"BREVO_SENDER_NAME" default:"Dev Club"`
	SenderEmail string `envconfig:"BREVO_SENDER_EMAIL" default:"hello@devclub.community"`
}

// AppConfig is the full process configuration. It is built exactly once in
// main and handed to collaborators; business logic never reads the
// environment on its own.
type AppConfig struct {
	Env        string `envconfig:"APP_ENV" default:"development"`
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":5000"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=devclub password=devclub dbname=devclub port=5432 sslmode=disable TimeZone=UTC"`

	JWTSecret    string `envconfig:"JWT_SECRET" default:"change-me"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173,http://127.0.0.1:3000"`

	Links     CommunityLinks
	Mailchimp Mailchimp
	Brevo     Brevo
}

// IsProduction reports whether the process runs with production settings.
func (c *AppConfig) IsProduction() bool { return c.Env == "production" }

// LoadConfig reads .env (when present) and the environment into an AppConfig.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info("no .env file found, using process environment")
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
