package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/cache"
	"github.com/dropDatabas3/bookwookie/internal/config"
	"github.com/dropDatabas3/bookwookie/internal/files"
	httpserver "github.com/dropDatabas3/bookwookie/internal/http"
	"github.com/dropDatabas3/bookwookie/internal/http/controllers"
	"github.com/dropDatabas3/bookwookie/internal/http/router"
	"github.com/dropDatabas3/bookwookie/internal/http/services"
	"github.com/dropDatabas3/bookwookie/internal/metrics"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
	"github.com/dropDatabas3/bookwookie/internal/rate"
	"github.com/dropDatabas3/bookwookie/internal/security/password"
	"github.com/dropDatabas3/bookwookie/internal/store"
	"github.com/dropDatabas3/bookwookie/internal/store/pg"
	"github.com/dropDatabas3/bookwookie/internal/token"
	migrations "github.com/dropDatabas3/bookwookie/migrations/postgres"
)

func main() {
	// .env opcional para desarrollo local; en deploy van env vars reales
	_ = godotenv.Load()

	var cfgPath string

	root := &cobra.Command{
		Use:   "bookwookie",
		Short: "API de publicación de libros",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", envOr("CONFIG_PATH", ""), "path a config.yaml (opcional)")

	root.AddCommand(serveCmd(&cfgPath), migrateCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return config.Load(path)
}

func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
			defer logger.Sync()
			log := logger.L()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// ---- Persistencia ----
			st, err := store.New(ctx, store.Config{
				Driver:          cfg.Storage.Driver,
				DSN:             cfg.Storage.DSN,
				MaxOpenConns:    cfg.Storage.Postgres.MaxConns,
				ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
			})
			if err != nil {
				return err
			}
			defer st.Close()
			log.Info("store ready", logger.Driver(cfg.Storage.Driver))

			// ---- Cache + rate limiting de login ----
			memTTL, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
			cacheClient, err := cache.New(cache.Config{
				Kind:             cfg.Cache.Kind,
				RedisAddr:        cfg.Cache.Redis.Addr,
				RedisDB:          cfg.Cache.Redis.DB,
				RedisPrefix:      cfg.Cache.Redis.Prefix,
				MemoryDefaultTTL: memTTL,
			})
			if err != nil {
				return err
			}
			defer cacheClient.Close()

			var loginLimiter rate.Limiter
			globalLimit := 0
			if cfg.Rate.Enabled {
				loginWindow, _ := time.ParseDuration(cfg.Rate.Login.Window)
				loginLimiter = rate.NewWindowLimiter(cacheClient, "login:", cfg.Rate.Login.Limit, loginWindow)
				globalLimit = cfg.Rate.MaxRequests
			}

			// ---- Seguridad ----
			hasher, err := password.NewHasher(password.Params{
				Memory:        cfg.Security.Argon2.MemoryKiB,
				Time:          cfg.Security.Argon2.Time,
				Parallelism:   cfg.Security.Argon2.Parallelism,
				KeyLen:        cfg.Security.Argon2.KeyLen,
				SaltLen:       cfg.Security.Argon2.SaltLen,
				MaxConcurrent: cfg.Security.Argon2.MaxConcurrent,
			})
			if err != nil {
				return err
			}
			issuer, err := token.NewIssuer([]byte(cfg.JWT.Secret))
			if err != nil {
				return err
			}
			policy := authz.Policy{
				RestrictedUsernames:  cfg.Authz.RestrictedUsernames,
				RestrictedPseudonyms: cfg.Authz.RestrictedPseudonyms,
				RestrictedNames:      cfg.Authz.RestrictedNames,
				SuperuserUsernames:   cfg.Authz.Superusers,
			}

			// ---- Archivos ----
			storage, err := files.NewStorage(cfg.Server.FilesDir)
			if err != nil {
				return err
			}

			// ---- Wiring HTTP ----
			metricsHandler, err := metrics.Register(nil)
			if err != nil {
				return err
			}

			svcs := services.New(services.Deps{
				Store:   st,
				Hasher:  hasher,
				PwCheck: password.Policy{MinLength: cfg.Security.PasswordPolicy.MinLength},
				Policy:  policy,
				Issuer:  issuer,
				Files:   storage,
			})
			ctrls := controllers.New(svcs, &controllers.HealthController{Store: st, Cache: cacheClient})

			handler := router.New(router.Deps{
				Controllers:         ctrls,
				Issuer:              issuer,
				LoginLimiter:        loginLimiter,
				GlobalRatePerMinute: globalLimit,
				MetricsHandler:      metricsHandler,
			})

			srv := httpserver.NewServer(cfg.Server.Addr, handler)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones del esquema postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate requiere storage.driver=postgres (actual: %s)", cfg.Storage.Driver)
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			st, err := pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{})
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.RunMigrations(ctx, migrations.FS()); err != nil {
				return err
			}
			logger.L().Info("migrations done")
			return nil
		},
	}
}
