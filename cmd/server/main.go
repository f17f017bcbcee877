package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"supplierfront/assets"
	"supplierfront/internal/apiclient"
	"supplierfront/internal/audit"
	"supplierfront/internal/auth"
	"supplierfront/internal/blob"
	"supplierfront/internal/content"
	"supplierfront/internal/email"
	frameworkshandler "supplierfront/internal/frameworks/handler"
	jwttoken "supplierfront/internal/jwt_token"
	"supplierfront/internal/platform/config"
	"supplierfront/internal/platform/httpserver"
	"supplierfront/internal/platform/logger"
	"supplierfront/internal/platform/metrics"
	"supplierfront/internal/platform/redis"
	"supplierfront/internal/ratelimit"
	serviceshandler "supplierfront/internal/services/handler"
	"supplierfront/internal/session"
	suppliershandler "supplierfront/internal/suppliers/handler"
	httptransport "supplierfront/internal/transport/http"
	"supplierfront/internal/web"
)

const (
	limiterSweepInterval = time.Minute
	shutdownTimeout      = 10 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Page logic lives in the internal handler packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "supplier-frontend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log, logCloser, err := logger.New(logger.Options{Level: cfg.LogLevel, AppName: cfg.AppName, Path: cfg.LogPath})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	api := apiclient.New(cfg.DataAPIURL, cfg.DataAPIAuthToken)

	buckets, err := newBuckets(ctx, cfg, log)
	if err != nil {
		return err
	}

	checks := map[string]httptransport.HealthCheck{}
	var store session.Store = session.NewMemoryStore()
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient.Client)
		checks["redis"] = redisClient.Health
	} else {
		log.Warn("DM_REDIS_URL not set, sessions are kept in memory")
	}
	sessions := session.NewManager(store, cfg.Session, cfg.SecretKey, log)

	renderer, err := web.NewRenderer(assets.Templates(), cfg.BaseTemplateData(), sessions, log)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	loader, err := loadContent(cfg.ContentFrameworks)
	if err != nil {
		return err
	}

	var mailer email.Sender
	if cfg.MandrillAPIKey != "" {
		mailer = email.NewMandrill(cfg.MandrillAPIKey, "")
	} else {
		log.Warn("DM_MANDRILL_API_KEY not set, emails are logged instead of sent")
		mailer = email.NewLogSender(log)
	}
	auditor := audit.NewPublisher(api)

	loginLimiter := ratelimit.NewLimiter(cfg.LoginRateLimit)
	clarificationLimiter := ratelimit.NewLimiter(cfg.ClarificationRateLimit)
	go loginLimiter.Run(ctx, limiterSweepInterval)
	go clarificationLimiter.Run(ctx, limiterSweepInterval)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:           log,
		Metrics:          m,
		Gatherer:         reg,
		Sessions:         sessions.Middleware,
		Render:           renderer,
		RequestIDHeader:  cfg.DownstreamRequestIDHeader,
		TrustedProxyHops: cfg.TrustedProxyHops,
		Checks:           checks,
	},
		auth.New(api, sessions, renderer, mailer, auditor,
			auth.Tokens{
				ResetPassword: jwttoken.NewService(cfg.SecretKey, cfg.ResetPasswordSalt, jwttoken.ResetPasswordMaxAge),
				Invite:        jwttoken.NewService(cfg.SecretKey, cfg.InviteEmailSalt, jwttoken.InviteMaxAge),
			},
			auth.Settings{
				HTTPProto:          cfg.HTTPProto,
				ResetPasswordEmail: cfg.ResetPasswordEmail,
				InviteEmail:        cfg.InviteEmail,
			},
			log, m,
			auth.WithThrottle(ratelimit.NewMiddleware("login", loginLimiter, ratelimit.ByClientIP, renderer, log, m).Handler),
		),
		frameworkshandler.New(api, loader, buckets, renderer, sessions, mailer, auditor,
			frameworkshandler.Settings{
				AssetsURL:                  cfg.AssetsURL,
				ClarificationQuestionEmail: cfg.ClarificationQuestionEmail,
				FollowUpEmailTo:            cfg.FollowUpEmailTo,
				FrameworkAgreementsEmail:   cfg.FrameworkAgreementsEmail,
				ClarificationEmail:         cfg.ClarificationEmail,
			},
			log, m,
			frameworkshandler.WithThrottle(ratelimit.NewMiddleware("clarification", clarificationLimiter, ratelimit.BySupplier, renderer, log, m).Handler),
		),
		serviceshandler.New(api, loader, buckets.Submissions, cfg.AssetsURL, renderer, log),
		suppliershandler.New(api, renderer, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting supplier front end", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newBuckets uses S3 unless running locally without an endpoint, where the
// buckets live in memory.
func newBuckets(ctx context.Context, cfg config.Config, log *slog.Logger) (blob.Buckets, error) {
	if cfg.Environment == config.EnvDevelopment && cfg.S3Endpoint == "" {
		log.Warn("DM_S3_ENDPOINT not set, documents are kept in memory")
		return blob.Buckets{
			Agreements:     blob.NewMemory(cfg.Buckets.Agreements),
			Communications: blob.NewMemory(cfg.Buckets.Communications),
			Documents:      blob.NewMemory(cfg.Buckets.Documents),
			Submissions:    blob.NewMemory(cfg.Buckets.Submissions),
		}, nil
	}

	open := func(bucket string) (blob.Store, error) {
		store, err := blob.NewS3(ctx, blob.S3Config{
			Region:    cfg.S3Region,
			Bucket:    bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3Endpoint != "",
		})
		if err != nil {
			return nil, fmt.Errorf("bucket %q: %w", bucket, err)
		}
		return store, nil
	}
	var (
		buckets blob.Buckets
		err     error
	)
	if buckets.Agreements, err = open(cfg.Buckets.Agreements); err != nil {
		return blob.Buckets{}, err
	}
	if buckets.Communications, err = open(cfg.Buckets.Communications); err != nil {
		return blob.Buckets{}, err
	}
	if buckets.Documents, err = open(cfg.Buckets.Documents); err != nil {
		return blob.Buckets{}, err
	}
	if buckets.Submissions, err = open(cfg.Buckets.Submissions); err != nil {
		return blob.Buckets{}, err
	}
	return buckets, nil
}

// loadContent reads the question content of every framework the front end
// serves. A broken manifest stops start-up.
func loadContent(frameworks []string) (*content.Loader, error) {
	loader := content.NewLoader(assets.Content())
	for _, fw := range frameworks {
		if err := loader.LoadManifest(fw, "declaration", "declaration"); err != nil {
			return nil, err
		}
		if err := loader.LoadManifest(fw, "services", "edit_submission"); err != nil {
			return nil, err
		}
		if err := loader.LoadMessages(fw, "dates"); err != nil {
			return nil, err
		}
	}
	return loader, nil
}
