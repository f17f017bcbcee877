package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names accepted in DM_ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvPreview     = "preview"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Feature flag names.
const (
	FeatureEditSections = "EDIT_SECTIONS"
)

// Buckets names the object storage buckets the front end reads and writes.
type Buckets struct {
	Agreements     string
	Communications string
	Documents      string
	Submissions    string
}

// EmailSender is a from-address/name pair with a subject line.
type EmailSender struct {
	Name    string
	From    string
	Subject string
}

// Session captures cookie session configuration.
type Session struct {
	CookieName string
	CookiePath string
	Secure     bool
	Lifetime   time.Duration
}

// RedisConfig configures the optional redis session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit configures per-key request throttling for sensitive POSTs.
type RateLimit struct {
	PerMinute int
	Burst     int
}

// Config is the full front-end configuration for one environment.
type Config struct {
	Environment string
	Addr        string
	Debug       bool
	HTTPProto   string

	DataAPIURL       string
	DataAPIAuthToken string

	Buckets    Buckets
	AssetsURL  string
	S3Region   string
	S3Endpoint string

	ClarificationQuestionEmail string
	FrameworkAgreementsEmail   string
	FollowUpEmailTo            string
	GenericNoReplyEmail        string
	MandrillAPIKey             string

	ResetPasswordEmail EmailSender
	InviteEmail        EmailSender
	ClarificationEmail EmailSender
	CreateUserSubject  string

	SecretKey         string
	SharedEmailKey    string
	ResetPasswordSalt string
	InviteEmailSalt   string
	CSRFEnabled       bool

	Session Session
	Redis   RedisConfig

	StaticURLPath string
	AssetPath     string

	ContentFrameworks []string

	// Features maps a flag name to the date it was enabled ("" = off).
	Features                   map[string]string
	RaiseErrorOnMissingFeature bool

	LogLevel                  string
	AppName                   string
	LogPath                   string
	DownstreamRequestIDHeader string
	// TrustedProxyHops counts the reverse proxies in front of the service.
	// Client addresses for throttling are read from X-Forwarded-For only
	// when it is non-zero.
	TrustedProxyHops int

	LoginRateLimit         RateLimit
	ClarificationRateLimit RateLimit
}

// base mirrors the defaults every environment shares.
func base() Config {
	return Config{
		Environment: EnvDevelopment,
		Addr:        ":5003",
		HTTPProto:   "http",

		ClarificationQuestionEmail: "digitalmarketplace@mailinator.com",
		FrameworkAgreementsEmail:   "enquiries@example.com",
		FollowUpEmailTo:            "digitalmarketplace@mailinator.com",
		GenericNoReplyEmail:        "do-not-reply@cirrus.pebblecode.com",

		ResetPasswordEmail: EmailSender{
			Name:    "Cirrus Admin",
			From:    "enquiries@cirrus.pebblecode.com",
			Subject: "Reset your Cirrus password",
		},
		InviteEmail: EmailSender{
			Name:    "Cirrus Admin",
			From:    "enquiries@cirrus.pebblecode.com",
			Subject: "Your Cirrus invitation",
		},
		ClarificationEmail: EmailSender{
			Name:    "Cirrus Admin",
			From:    "do-not-reply@cirrus.pebblecode.com",
			Subject: "Thanks for your clarification question",
		},
		CreateUserSubject: "Create your Cirrus account",

		ResetPasswordSalt: "ResetPasswordSalt",
		InviteEmailSalt:   "InviteEmailSalt",
		CSRFEnabled:       true,

		Session: Session{
			CookieName: "dm_session",
			CookiePath: "/",
			Secure:     true,
			Lifetime:   4 * time.Hour,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},

		StaticURLPath: "/suppliers/static",
		AssetPath:     "/suppliers/static/",

		ContentFrameworks: []string{"g-cloud-7"},

		Features:                   map[string]string{FeatureEditSections: ""},
		RaiseErrorOnMissingFeature: true,

		LogLevel:                  "DEBUG",
		AppName:                   "supplier-frontend",
		DownstreamRequestIDHeader: "X-Amz-Cf-Id",

		LoginRateLimit:         RateLimit{PerMinute: 10, Burst: 5},
		ClarificationRateLimit: RateLimit{PerMinute: 5, Burst: 3},
	}
}

// ForEnvironment returns the defaults for a named environment without reading
// any process environment variables.
func ForEnvironment(env string) (Config, error) {
	cfg := base()
	cfg.Environment = env
	switch env {
	case EnvTest:
		cfg.Debug = true
		cfg.LogLevel = "CRITICAL"
		cfg.CSRFEnabled = false
		cfg.SharedEmailKey = "KEY"
		cfg.Features[FeatureEditSections] = "2015-06-03"
		cfg.DataAPIAuthToken = "myToken"
		cfg.SecretKey = "not_very_secret"
		cfg.Buckets.Submissions = "cirrus-submissions-dev-dev"
		cfg.Buckets.Communications = "cirrus-communications-dev-dev"
		cfg.AssetsURL = "http://asset-host"
	case EnvDevelopment:
		cfg.Session.Secure = false
		cfg.Features[FeatureEditSections] = "2015-06-03"
		cfg.DataAPIURL = "http://localhost:5000"
		cfg.DataAPIAuthToken = "myToken"
		cfg.Buckets = Buckets{
			Submissions:    "cirrus-submissions-dev-dev",
			Communications: "cirrus-communications-dev-dev",
			Agreements:     "cirrus-agreements-dev-dev",
			Documents:      "cirrus-documents-dev-dev",
		}
		cfg.AssetsURL = fmt.Sprintf("https://%s.s3-eu-west-1.amazonaws.com", cfg.Buckets.Submissions)
		cfg.SharedEmailKey = "very_secret"
		cfg.SecretKey = "verySecretKey"
	case EnvPreview, EnvStaging, EnvProduction:
		cfg.HTTPProto = "https"
		cfg.TrustedProxyHops = 1
		cfg.FrameworkAgreementsEmail = "enquiries@cirrus.pebblecode.com"
	default:
		return Config{}, fmt.Errorf("unknown environment %q", env)
	}
	return cfg, nil
}

// FromEnv builds the Config for DM_ENVIRONMENT and applies overrides from
// environment variables so main stays lean.
func FromEnv() (Config, error) {
	env := os.Getenv("DM_ENVIRONMENT")
	if env == "" {
		env = EnvDevelopment
	}
	if env == EnvDevelopment {
		// A missing .env is fine; only malformed files are errors.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg, err := ForEnvironment(env)
	if err != nil {
		return Config{}, err
	}

	setString(&cfg.Addr, "DM_ADDR")
	setString(&cfg.DataAPIURL, "DM_DATA_API_URL")
	setString(&cfg.DataAPIAuthToken, "DM_DATA_API_AUTH_TOKEN")
	setString(&cfg.Buckets.Agreements, "DM_AGREEMENTS_BUCKET")
	setString(&cfg.Buckets.Communications, "DM_COMMUNICATIONS_BUCKET")
	setString(&cfg.Buckets.Documents, "DM_DOCUMENTS_BUCKET")
	setString(&cfg.Buckets.Submissions, "DM_SUBMISSIONS_BUCKET")
	setString(&cfg.AssetsURL, "DM_ASSETS_URL")
	setString(&cfg.S3Region, "DM_S3_REGION")
	setString(&cfg.S3Endpoint, "DM_S3_ENDPOINT")
	setString(&cfg.MandrillAPIKey, "DM_MANDRILL_API_KEY")
	setString(&cfg.ClarificationQuestionEmail, "DM_CLARIFICATION_QUESTION_EMAIL")
	setString(&cfg.FrameworkAgreementsEmail, "DM_FRAMEWORK_AGREEMENTS_EMAIL")
	setString(&cfg.FollowUpEmailTo, "DM_FOLLOW_UP_EMAIL_TO")
	setString(&cfg.SecretKey, "DM_SECRET_KEY")
	setString(&cfg.SharedEmailKey, "DM_SHARED_EMAIL_KEY")
	setString(&cfg.Redis.URL, "DM_REDIS_URL")
	setString(&cfg.LogLevel, "DM_LOG_LEVEL")
	setString(&cfg.LogPath, "DM_LOG_PATH")
	if v := os.Getenv("DM_FEATURE_FLAGS_EDIT_SECTIONS"); v != "" {
		cfg.Features[FeatureEditSections] = v
	}

	if v := os.Getenv("DM_CONTENT_FRAMEWORKS"); v != "" {
		cfg.ContentFrameworks = splitList(v)
	}
	if v := os.Getenv("DM_TRUSTED_PROXY_HOPS"); v != "" {
		hops, err := strconv.Atoi(v)
		if err != nil || hops < 0 {
			return Config{}, fmt.Errorf("DM_TRUSTED_PROXY_HOPS: must be a non-negative integer, got %q", v)
		}
		cfg.TrustedProxyHops = hops
	}
	if v := os.Getenv("DM_SESSION_COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("DM_SESSION_COOKIE_SECURE: %w", err)
		}
		cfg.Session.Secure = secure
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every deployed environment needs.
func (c Config) Validate() error {
	var missing []string
	if c.DataAPIURL == "" {
		missing = append(missing, "DM_DATA_API_URL")
	}
	if c.DataAPIAuthToken == "" {
		missing = append(missing, "DM_DATA_API_AUTH_TOKEN")
	}
	if c.SecretKey == "" {
		missing = append(missing, "DM_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// FeatureEnabled reports whether a flag is on at now. Flags hold the
// YYYY-MM-DD date they were switched on; unknown flags are off.
func (c Config) FeatureEnabled(name string, now time.Time) bool {
	since, ok := c.Features[name]
	if !ok || since == "" {
		return false
	}
	enabledAt, err := time.Parse(time.DateOnly, since)
	if err != nil {
		return false
	}
	return !now.Before(enabledAt)
}

// BaseTemplateData is merged into every rendered page.
func (c Config) BaseTemplateData() map[string]any {
	return map[string]any{
		"header_class": "with-proposition",
		"asset_path":   c.AssetPath,
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
