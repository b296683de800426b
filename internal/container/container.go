package container

import (
	"context"
	"fmt"

	"github.com/Irishery/products-parser/internal/config"
	"github.com/Irishery/products-parser/internal/crawler"
	"github.com/Irishery/products-parser/internal/export"
	"github.com/Irishery/products-parser/internal/fetcher"
	"github.com/Irishery/products-parser/internal/proxy"
	"github.com/Irishery/products-parser/internal/repository"
	"github.com/Irishery/products-parser/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Fetcher  fetcher.Fetcher
	Crawler  *crawler.Crawler
	Exporter *export.Exporter

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier, err := proxy.NewSupplier(context.Background(), cfg.Crawler.Proxies, cfg.Shop.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	container.Fetcher = fetcher.New(cfg.Crawler, proxySupplier)

	var sink crawler.ProductSink
	if cfg.Database.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db
		sink = repository.NewCatalogRepository(db)
		log.Info("✅ Product persistence enabled")
	}

	var checkpoint crawler.Checkpoint
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		container.redis = rdb
		checkpoint = state.NewRedisManager(rdb)
		log.Info("✅ Crawl checkpointing enabled")
	}

	c, err := crawler.New(cfg, container.Fetcher, sink, checkpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize crawler: %w", err)
	}
	container.Crawler = c

	container.Exporter = export.New(cfg.Export)

	return container, nil
}

// Run crawls the shop and exports the assembled catalog
func (c *Container) Run(ctx context.Context) error {
	catalog, err := c.Crawler.Run(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	path, err := c.Exporter.Export(catalog)
	if err != nil {
		return err
	}

	log.Infof("✅ Done: %d categories, %d products exported to %s",
		len(catalog.Categories), len(catalog.Products), path)
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
