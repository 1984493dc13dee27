package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/resumes"
	"resume-platform/internal/services/health"
	"resume-platform/internal/shared/auth"
	"resume-platform/internal/shared/config"
	"resume-platform/internal/shared/server"
	"resume-platform/internal/shared/server/middleware"
	"resume-platform/internal/shared/storage/db"
	"resume-platform/internal/shared/storage/kv"
	"resume-platform/internal/shared/storage/kv/memory"
	pgstore "resume-platform/internal/shared/storage/kv/postgres"
	redisstore "resume-platform/internal/shared/storage/kv/redis"
	"resume-platform/internal/shared/storage/object"
	localstore "resume-platform/internal/shared/storage/object/local"
	s3store "resume-platform/internal/shared/storage/object/s3"
	"resume-platform/internal/users"
	"resume-platform/resume/render"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Store          kv.Store
	DB             *sql.DB
	Exports        object.Store
	Tokens         *auth.TokenIssuer
	UsersService   *users.Service
	ResumesService *resumes.Service
	UsersHandler   *users.Handler
	ResumesHandler *resumes.Handler
	Health         *health.Service
}

// Build connects the store and wires services, handlers and routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is required")
	}

	store, sqlDB, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exports, err := buildExports(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	tokens, err := auth.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		DB:      sqlDB,
		Exports: exports,
		Tokens:  tokens,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		Verifier:        tokens,
		Resolve:         app.UsersService.ResolveSubject,
		Health:          app.Health,
		AuthRateLimit: middleware.RateLimitRule{
			Rate:  cfg.AuthRateLimitRPS,
			Burst: cfg.AuthRateLimitBurst,
		},
		Auth:    app.UsersHandler,
		Resumes: app.ResumesHandler,
	})

	return app, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

func buildStore(ctx context.Context, cfg config.Config) (kv.Store, *sql.DB, error) {
	switch cfg.StoreBackend {
	case "memory":
		return memory.New(), nil, nil
	case "postgres":
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.ServerPool().Override(dbPool(cfg)))
		if err == nil {
			err = db.RunMigrations(ctx, sqlDB)
			if err != nil {
				_ = sqlDB.Close()
			}
		}
		if err != nil {
			if cfg.IsDevLike() {
				log.Printf("bootstrap: postgres unavailable; using in-memory store: %v", err)
				return memory.New(), nil, nil
			}
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgstore.New(sqlDB), sqlDB, nil
	default:
		store, err := redisstore.New(ctx, cfg.RedisURL, cfg.RedisDB)
		if err != nil {
			if cfg.IsDevLike() {
				log.Printf("bootstrap: redis unavailable; using in-memory store: %v", err)
				return memory.New(), nil, nil
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, nil, nil
	}
}

func dbPool(cfg config.Config) db.Pool {
	return db.Pool{
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxLifetime: cfg.DBConnMaxLifetime,
		MaxIdleTime: cfg.DBConnMaxIdleTime,
		PingTimeout: cfg.DBPingTimeout,
	}
}

func buildExports(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ExportArchive {
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("export archive: %w", err)
		}
		return store, nil
	default:
		return nil, nil
	}
}

func buildServices(app *App) {
	userSvc := users.NewService(users.NewKVRepo(app.Store), auth.NewPasswordHasher(app.Config.BcryptCost))
	resumeSvc := resumes.NewService(resumes.NewKVRepo(app.Store))

	var archive resumes.Archiver
	if app.Exports != nil {
		archive = resumes.NewObjectArchiver(app.Exports)
	}

	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.UsersHandler = users.NewHandler(userSvc, app.Tokens, app.Tokens.TTL())
	app.ResumesHandler = resumes.NewHandler(resumeSvc, render.NewRenderer(), archive)
	app.Health = health.NewService(app.Store)
}
