package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for a crawl run
type Config struct {
	Shop      ShopConfig      `mapstructure:"shop"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Selectors SelectorsConfig `mapstructure:"selectors"`
	Export    ExportConfig    `mapstructure:"export"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// ShopConfig identifies the shop in the exported feed
type ShopConfig struct {
	Name    string `mapstructure:"name"`
	Company string `mapstructure:"company"`
	URL     string `mapstructure:"url"`
}

// CrawlerConfig tunes fetching and identifier assignment
type CrawlerConfig struct {
	Charset           string   `mapstructure:"charset"`
	SelectorMode      string   `mapstructure:"selector_mode"` // css or xpath
	Timeout           int      `mapstructure:"timeout"`       // seconds, per attempt
	MaxAttempts       int      `mapstructure:"max_attempts"`
	RetryWaitMs       int      `mapstructure:"retry_wait_ms"`
	DelayMs           int      `mapstructure:"delay_ms"` // politeness delay between categories
	RequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	Proxies           []string `mapstructure:"proxies"`

	// Identifier assignment
	CategoryIDMode string `mapstructure:"category_id_mode"` // sequential or random
	StartID        int    `mapstructure:"start_id"`
	RandomIDMin    int    `mapstructure:"random_id_min"`
	RandomIDMax    int    `mapstructure:"random_id_max"`
	ProductIDScale int    `mapstructure:"product_id_scale"`

	// Optional stages
	Subcategories bool `mapstructure:"subcategories"`
	Modifiers     bool `mapstructure:"modifiers"`
}

// SelectorsConfig carries the per-stage node-selection queries
type SelectorsConfig struct {
	Menu      MenuSelectors     `mapstructure:"menu"`
	Product   ProductSelectors  `mapstructure:"product"`
	Modifiers ModifierSelectors `mapstructure:"modifiers"`
}

// MenuSelectors locate the menu container and its per-category fields.
// Link may be empty, in which case the href is read off the menu entry
// node itself instead of a nested element.
type MenuSelectors struct {
	Container string `mapstructure:"container"`
	Name      string `mapstructure:"name"`
	Link      string `mapstructure:"link"`
	Sub       string `mapstructure:"sub"`
	SubLink   string `mapstructure:"sub_link"`
}

// ProductSelectors locate product teasers on category pages and the
// per-field queries on detail pages
type ProductSelectors struct {
	Node        string `mapstructure:"node"`
	Link        string `mapstructure:"link"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Picture     string `mapstructure:"picture"`
	Price       string `mapstructure:"price"`
	OldPrice    string `mapstructure:"old_price"`
	Weight      string `mapstructure:"weight"`
	Labels      string `mapstructure:"labels"`
}

// ModifierSelectors locate modifier groups and their options on product
// detail pages; only validated when the modifiers stage is enabled
type ModifierSelectors struct {
	Group       string `mapstructure:"group"`
	Name        string `mapstructure:"name"`
	Subheader   string `mapstructure:"subheader"`
	Option      string `mapstructure:"option"`
	OptionName  string `mapstructure:"option_name"`
	OptionPrice string `mapstructure:"option_price"`
}

// ExportConfig selects the feed format and destination
type ExportConfig struct {
	Format   string `mapstructure:"format"` // xml or json
	Filename string `mapstructure:"filename"`
}

// DatabaseConfig holds the optional product-persistence database
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds the optional crawl-checkpoint store
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects a run whose enabled stages lack their required
// selectors. Optional selectors (picture, weight, labels, sub-categories)
// may be absent; missing required ones are unrecoverable.
func (c *Config) Validate() error {
	if c.Shop.URL == "" {
		return fmt.Errorf("shop.url is required")
	}
	if mode := c.Crawler.SelectorMode; mode != "css" && mode != "xpath" {
		return fmt.Errorf("crawler.selector_mode must be css or xpath, got %q", mode)
	}
	if c.Selectors.Menu.Container == "" {
		return fmt.Errorf("selectors.menu.container is required")
	}
	if c.Selectors.Menu.Name == "" {
		return fmt.Errorf("selectors.menu.name is required")
	}
	if c.Selectors.Product.Node == "" {
		return fmt.Errorf("selectors.product.node is required")
	}
	if c.Selectors.Product.Link == "" {
		return fmt.Errorf("selectors.product.link is required")
	}
	if c.Selectors.Product.Name == "" {
		return fmt.Errorf("selectors.product.name is required")
	}
	if c.Crawler.Subcategories && c.Selectors.Menu.Sub == "" {
		return fmt.Errorf("selectors.menu.sub is required when crawler.subcategories is enabled")
	}
	if c.Crawler.Modifiers {
		if c.Selectors.Modifiers.Group == "" {
			return fmt.Errorf("selectors.modifiers.group is required when crawler.modifiers is enabled")
		}
		if c.Selectors.Modifiers.Option == "" {
			return fmt.Errorf("selectors.modifiers.option is required when crawler.modifiers is enabled")
		}
	}
	if mode := c.Crawler.CategoryIDMode; mode != "sequential" && mode != "random" {
		return fmt.Errorf("crawler.category_id_mode must be sequential or random, got %q", mode)
	}
	if c.Crawler.CategoryIDMode == "random" && c.Crawler.RandomIDMin >= c.Crawler.RandomIDMax {
		return fmt.Errorf("crawler.random_id_min must be below crawler.random_id_max")
	}
	if c.Crawler.ProductIDScale < 1 {
		return fmt.Errorf("crawler.product_id_scale must be at least 1")
	}
	if format := c.Export.Format; format != "xml" && format != "json" {
		return fmt.Errorf("export.format must be xml or json, got %q", format)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("crawler.charset", "utf-8")
	viper.SetDefault("crawler.selector_mode", "css")
	viper.SetDefault("crawler.timeout", 10)
	viper.SetDefault("crawler.max_attempts", 5)
	viper.SetDefault("crawler.retry_wait_ms", 1000)
	viper.SetDefault("crawler.delay_ms", 2000)
	viper.SetDefault("crawler.max_requests_per_second", 5)
	viper.SetDefault("crawler.category_id_mode", "sequential")
	viper.SetDefault("crawler.start_id", 1)
	viper.SetDefault("crawler.random_id_min", 10000)
	viper.SetDefault("crawler.random_id_max", 100000)
	viper.SetDefault("crawler.product_id_scale", 1000)

	viper.SetDefault("export.format", "xml")
	viper.SetDefault("export.filename", "export")

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "products")
	viper.SetDefault("database.user", "products_user")
	viper.SetDefault("database.password", "products_pass")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.database", 0)
}
