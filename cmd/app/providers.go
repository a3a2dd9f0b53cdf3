package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/bitebrain/internal/bootstrap"
	"github.com/yanqian/bitebrain/internal/domain/outlook"
	"github.com/yanqian/bitebrain/internal/domain/recommend"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/species"
	"github.com/yanqian/bitebrain/internal/domain/spots"
	"github.com/yanqian/bitebrain/internal/domain/tiles"
	"github.com/yanqian/bitebrain/internal/infra/config"
	"github.com/yanqian/bitebrain/internal/infra/tiles/blobstore"
	"github.com/yanqian/bitebrain/internal/infra/tiles/fetcher"
	"github.com/yanqian/bitebrain/internal/infra/tiles/queue"
	"github.com/yanqian/bitebrain/internal/infra/tiles/regionrepo"
	"github.com/yanqian/bitebrain/internal/infra/weather"
)

func provideSpeciesStore() *species.Store {
	return species.Default()
}

func provideSpotCatalog() *spots.Catalog {
	return spots.Default()
}

func provideRecommender(store *species.Store, logger *slog.Logger) recommend.Service {
	return recommend.NewService(store, recommend.DefaultRules(), logger)
}

func provideSolunarCalculator(cfg *config.Config, logger *slog.Logger) *solunar.Calculator {
	return solunar.NewCalculator(solunar.Config{
		Latitude:  cfg.Solunar.Latitude,
		Longitude: cfg.Solunar.Longitude,
		Timezone:  cfg.Solunar.Timezone,
	}, solunar.SimplifiedProvider{}, logger)
}

func provideWeatherProvider() *weather.StaticProvider {
	return weather.NewStaticProvider()
}

func provideOutlookService(cfg *config.Config, provider outlook.WeatherProvider, calculator outlook.SolunarSource, recommender recommend.Service, logger *slog.Logger) outlook.Service {
	return outlook.NewService(provider, calculator, recommender, cfg.Solunar.Timezone, logger)
}

func provideTilesConfig(cfg *config.Config) tiles.Config {
	return tiles.Config{
		MaxTilesPerRegion: cfg.Tiles.MaxTilesPerRegion,
		MaxZoom:           cfg.Tiles.MaxZoom,
		QuotaBytes:        cfg.Tiles.QuotaBytes,
		Retention:         cfg.Tiles.Retention,
	}
}

func provideTilesService(cfg tiles.Config, regions tiles.RegionRepository, blobs tiles.BlobStore, source tiles.Fetcher, jobs queue.HandlerQueue, logger *slog.Logger) *tiles.Service {
	return tiles.NewService(cfg, regions, blobs, source, jobs, logger)
}

func provideRegionRepository(cfg *config.Config, logger *slog.Logger) tiles.RegionRepository {
	fallback := regionrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Tiles.Postgres.DSN)
	if dsn == "" {
		logger.Info("tiles postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Tiles.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Tiles.Postgres.MaxConns
	}
	if cfg.Tiles.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Tiles.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := regionrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("tile_regions schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("tiles postgres repository enabled")
	return repo
}

func provideBlobStore(cfg *config.Config, logger *slog.Logger) (tiles.BlobStore, error) {
	storage := cfg.Tiles.Storage
	if storage.Driver != "r2" {
		logger.Info("tile blobs kept in memory")
		return blobstore.NewMemoryStore(), nil
	}
	store, err := blobstore.NewR2Store(storage.Endpoint, storage.AccessKey, storage.SecretKey, storage.Bucket, storage.Region, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("tile blobs stored in r2", "bucket", storage.Bucket)
	return store, nil
}

func provideTileFetcher(cfg *config.Config, logger *slog.Logger) (tiles.Fetcher, error) {
	if !cfg.Tiles.DownloadsEnabled() {
		logger.Warn("map access token not set, offline region downloads disabled")
	}
	return fetcher.New(cfg.Tiles.URLTemplate, cfg.Tiles.AccessToken)
}

func provideJobQueue(cfg *config.Config, logger *slog.Logger) queue.HandlerQueue {
	if cfg.Tiles.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Tiles.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to immediate queue", "error", err)
			return queue.NewImmediateQueue(nil)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to immediate queue", "error", err)
			return queue.NewImmediateQueue(nil)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to immediate queue", "error", err)
			client.Close()
		} else {
			logger.Info("tiles valkey queue enabled", "addr", cfg.Tiles.Valkey.Addr)
			return queue.NewValkeyQueue(client, cfg.Tiles.Valkey.QueueKey, logger)
		}
	}
	return queue.NewImmediateQueue(nil)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideScheduler(cfg *config.Config, svc *tiles.Service, logger *slog.Logger) *bootstrap.Scheduler {
	return bootstrap.NewScheduler(cfg.Tiles.PruneSchedule, svc, logger)
}
