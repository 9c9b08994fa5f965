// Package connector adapts a database vendor to the query builder: it quotes
// identifiers and literals, sanitizes templated conditions and expands
// condition maps into SQL fragments. It never opens a connection.
package connector

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/gertd/go-pluralize"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chagar/arel-query/config"
	"github.com/chagar/arel-query/logger"
	"github.com/chagar/arel-query/types"
)

const defaultQuoteCacheSize = 256

// Connector renders identifiers and values for one database vendor.
// It is safe for concurrent use.
type Connector struct {
	vendor    types.Vendor
	location  *time.Location
	log       logger.Logger
	cacheSize int
	names     *lru.Cache[string, string]
	plural    *pluralize.Client
}

// Option customizes a Connector built by New.
type Option func(*Connector)

// WithLogger sets the logger used for debug output. Defaults to logger.Nop().
func WithLogger(l logger.Logger) Option {
	return func(c *Connector) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLocation sets the time zone time.Time values are converted to before
// quoting. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *Connector) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithQuoteCacheSize sets how many quoted identifiers are memoized.
func WithQuoteCacheSize(size int) Option {
	return func(c *Connector) {
		if size > 0 {
			c.cacheSize = size
		}
	}
}

// New creates a connector for vendor.
// Returns types.ErrUnsupportedVendor for vendors outside types.Vendors().
func New(vendor types.Vendor, opts ...Option) (*Connector, error) {
	if !types.IsSupportedVendor(vendor) {
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedVendor, vendor)
	}

	c := &Connector{
		vendor:    vendor,
		location:  time.UTC,
		log:       logger.Nop(),
		cacheSize: defaultQuoteCacheSize,
		plural:    pluralize.NewClient(),
	}
	for _, opt := range opts {
		opt(c)
	}

	names, err := lru.New[string, string](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote cache: %w", err)
	}
	c.names = names

	return c, nil
}

// MustNew is New that panics on error, for package-level connectors and tests.
func MustNew(vendor types.Vendor, opts ...Option) *Connector {
	c, err := New(vendor, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// FromConfig builds a connector and its logger from loaded configuration.
func FromConfig(cfg *config.Config) (*Connector, error) {
	loc := time.UTC
	if cfg.Connector.Timezone == config.TimezoneLocal {
		loc = time.Local
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty).WithFields(map[string]any{
		"vendor": cfg.Connector.Vendor,
	})

	c, err := New(cfg.Connector.Vendor,
		WithLogger(log),
		WithLocation(loc),
		WithQuoteCacheSize(cfg.Connector.QuoteCacheSize),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create connector")
		return nil, err
	}

	log.Info().
		Str("timezone", cfg.Connector.Timezone).
		Int("quote_cache_size", cfg.Connector.QuoteCacheSize).
		Msg("Connector configured")
	return c, nil
}

// Vendor returns the database vendor this connector renders for.
func (c *Connector) Vendor() string {
	return c.vendor
}

// Logger returns the connector's logger.
func (c *Connector) Logger() logger.Logger {
	return c.log
}

// Location returns the time zone used when quoting time values.
func (c *Connector) Location() *time.Location {
	return c.location
}

// TableNamer lets a model override the table name derived by TableName.
type TableNamer interface {
	TableName() string
}

// TableName derives a table name from a model: a TableNamer's own name, a
// string as given, or the pluralized snake_case of the struct type name
// (OrderItem becomes order_items).
func (c *Connector) TableName(model any) string {
	switch m := model.(type) {
	case nil:
		return ""
	case string:
		return m
	case TableNamer:
		return m.TableName()
	}

	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	if t.Name() == "" {
		return ""
	}

	words := splitWords(t.Name())
	last := len(words) - 1
	words[last] = c.plural.Plural(words[last])
	return strings.Join(words, "_")
}

// splitWords breaks a CamelCase name into lower-case words, keeping
// acronyms together ("HTTPRequest" gives "http", "request").
func splitWords(name string) []string {
	runes := []rune(name)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
			words = append(words, strings.ToLower(string(runes[start:i])))
			start = i
		}
	}
	return append(words, strings.ToLower(string(runes[start:])))
}
