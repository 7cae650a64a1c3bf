package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/plazakit/plaza"
	"github.com/plazakit/plaza/middlewares"
	"github.com/plazakit/plaza/pkg/cache"
	"github.com/plazakit/plaza/pkg/config"
	"github.com/plazakit/plaza/pkg/cookie"
	"github.com/plazakit/plaza/pkg/db"
	"github.com/plazakit/plaza/pkg/health"
	"github.com/plazakit/plaza/pkg/proxy"
	"github.com/plazakit/plaza/pkg/records"
	"github.com/plazakit/plaza/pkg/redis"
	"github.com/plazakit/plaza/pkg/session"
	"github.com/plazakit/plaza/pkg/theme"
	"github.com/plazakit/plaza/pkg/translate"
	"github.com/plazakit/plaza/pkg/uploads"
	"github.com/plazakit/plaza/pkg/weburl"
)

// app holds the wired toolkit for the daemon's lifetime.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	timeout  time.Duration
	site     *weburl.Builder
	sessions *session.Manager
	catalog  *translate.Catalog
	joiner   *records.Joiner

	pool *pgxpool.Pool
	rdb  goredis.UniversalClient
	cron *cron.Cron

	checks        health.Checks
	shutdownHooks []func(context.Context) error
}

func newApp(ctx context.Context, cfg *config.Config, infra infraConfig, log *slog.Logger, localesDir string) (*app, error) {
	a := &app{
		cfg:     cfg,
		log:     log,
		timeout: infra.RequestTimeout,
		checks:  health.Checks{},
	}

	store, err := newUploadStore(cfg)
	if err != nil {
		return nil, err
	}

	site, err := newSiteBuilder(cfg, store)
	if err != nil {
		return nil, err
	}
	a.site = site

	if infra.DatabaseURL != "" {
		pool, err := db.Connect(ctx, db.Config{
			ConnectionString: infra.DatabaseURL,
			RetryAttempts:    3,
			RetryInterval:    5 * time.Second,
			MaxOpenConns:     10,
			MinConns:         2,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.pool = pool
		a.checks["postgres"] = db.Healthcheck(pool)
		a.shutdownHooks = append(a.shutdownHooks, db.Shutdown(pool))

		if err := db.Migrate(ctx, pool, plaza.Migrations(), "schema_migrations", log); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	if infra.RedisURL != "" {
		client, err := redis.Open(ctx, infra.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.rdb = client
		a.checks["redis"] = redis.Healthcheck(client)
		a.shutdownHooks = append(a.shutdownHooks, redis.Shutdown(client))
	}

	a.sessions = newSessionManager(cfg, log, a.pool)
	a.catalog, err = newCatalog(cfg, localesDir)
	if err != nil {
		return nil, err
	}

	if a.pool != nil {
		a.joiner = records.New(a.pool,
			records.WithSite(site),
			records.WithCache(newRecordCache(a.rdb)),
			records.WithLogger(log),
		)
	}

	a.startCron()
	return a, nil
}

// newUploadStore builds the S3-backed upload store when the
// garden.upload.* block is configured.
func newUploadStore(cfg *config.Config) (uploads.Store, error) {
	ucfg := uploads.FromConfig(cfg)
	if ucfg.Bucket == "" {
		return nil, nil
	}
	store, err := uploads.New(ucfg)
	if err != nil {
		return nil, fmt.Errorf("upload store: %w", err)
	}
	return store, nil
}

func newSiteBuilder(cfg *config.Config, store uploads.Store) (*weburl.Builder, error) {
	version := cfg.String("garden.version", "")
	opts := []weburl.Option{
		weburl.WithExternalFormat(cfg.String("garden.externalurlformat", "")),
		weburl.WithTrustedDomains(cfg.Strings("garden.trusteddomains", nil)...),
	}

	var manifest *weburl.Manifest
	if path := cfg.String("garden.assets.manifest", ""); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open asset manifest: %w", err)
		}
		manifest, err = weburl.LoadManifest(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		if version == "" {
			version = manifest.Version
		}
	}
	if manifest != nil || store != nil {
		opts = append(opts, weburl.WithAssetResolver(assetResolver(manifest, store)))
	}
	opts = append(opts, weburl.WithVersion(version))

	site, err := weburl.New(cfg.String("garden.url", "http://localhost:8080"), opts...)
	if err != nil {
		return nil, fmt.Errorf("site url: %w", err)
	}
	return site, nil
}

// assetResolver routes "uploads/..." asset paths (banner backgrounds,
// logos, avatars) to the upload store's public URLs and everything
// else through the build manifest.
func assetResolver(manifest *weburl.Manifest, store uploads.Store) weburl.AssetResolver {
	var fromManifest weburl.AssetResolver
	if manifest != nil {
		fromManifest = manifest.Resolver()
	}
	return func(path string) (string, bool) {
		if store != nil {
			if key, ok := strings.CutPrefix(path, "uploads/"); ok && key != "" {
				if u, err := store.URL(context.Background(), key, uploads.WithPublic()); err == nil {
					return u, true
				}
			}
		}
		if fromManifest != nil {
			return fromManifest(path)
		}
		return "", false
	}
}

func newSessionManager(cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool) *session.Manager {
	var store session.Store = session.NewMemoryStore()
	if pool != nil {
		store = session.NewPGStore(pool)
	}
	cookies := cookie.FromConfig(cfg)
	return session.NewManager(store, cookies,
		session.WithCookieName(cfg.String("garden.cookie.name", cookie.DefaultPrefix)+"-session"),
		session.WithTTL(cfg.Duration("garden.session.ttl", session.DefaultTTL)),
		session.WithLogger(log),
	)
}

func newCatalog(cfg *config.Config, localesDir string) (*translate.Catalog, error) {
	opts := []translate.Option{
		translate.WithDefaultLanguage(cfg.String("garden.locale", "en")),
	}
	if localesDir != "" {
		opts = append(opts, translate.WithYAMLDir(os.DirFS(localesDir)))
	}
	catalog, err := translate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return catalog, nil
}

// newRecordCache picks the joiner's record cache backend: Redis when
// configured, in-process otherwise.
func newRecordCache(rdb goredis.UniversalClient) cache.Cache[*records.Record] {
	if rdb != nil {
		return cache.NewRedis[*records.Record](rdb, nil, cache.WithPrefix("plaza"))
	}
	return cache.NewMemory[*records.Record](cache.WithMaxEntries(10_000))
}

// startCron schedules the expired-session purge.
func (a *app) startCron() {
	schedule := a.cfg.String("garden.session.purgeschedule", "@every 15m")
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		n, err := a.sessions.Purge(context.Background())
		if err != nil {
			a.log.Error("session purge failed", slog.String("error", err.Error()))
			return
		}
		if n > 0 {
			a.log.Info("purged expired sessions", slog.Int64("count", n))
		}
	}); err != nil {
		a.log.Error("invalid purge schedule, purge disabled",
			slog.String("schedule", schedule), slog.String("error", err.Error()))
		return
	}
	c.Start()
	a.cron = c
}

func (a *app) close() {
	if a.cron != nil {
		a.cron.Stop()
	}
}

func (a *app) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middlewares.RealIP())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Recover(middlewares.WithRecoverLogger(a.log)))
	r.Use(middlewares.Timeout(a.timeout))
	r.Use(middlewares.Locale(a.catalog,
		middlewares.WithLocaleResolvers(
			middlewares.FromCookie(a.sessions.CookieName()+"-locale"),
			middlewares.FromAcceptLanguage(a.catalog.Languages()),
		),
	))
	r.Use(middlewares.Session(a.sessions, middlewares.WithSessionLogger(a.log)))

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(a.checks, health.WithLogger(a.log)))

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(a.cfg.Strings("garden.allowedorigins", []string{"*"})...),
		))
		r.Method("GET", "/themes/banner.json", theme.Handler(a.cfg, theme.WithAssets(a.site)))
		r.Method("GET", "/themes/content-banner.json", theme.ContentHandler(a.cfg, theme.WithAssets(a.site)))
		if a.joiner != nil {
			r.Get("/records.json", a.handleRecord)
		}
	})

	a.mountLegacyProxy(r)
	return r
}

// mountLegacyProxy forwards configured legacy paths to the old
// platform while it is still being migrated off.
func (a *app) mountLegacyProxy(r *chi.Mux) {
	target := a.cfg.String("garden.proxy.target", "")
	if target == "" {
		return
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		a.log.Error("invalid legacy proxy target", slog.String("target", target))
		return
	}
	path := a.cfg.String("garden.proxy.path", "/legacy")
	r.Mount(path, proxy.Handler(u,
		proxy.WithHandlerLogger(a.log),
		proxy.WithTrustedHosts(a.site.IsTrustedDomain),
	))
}
