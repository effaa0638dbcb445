// Package container provides dependency injection for the currency-format
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fintrack/currency-format/internal/batch"
	"fintrack/currency-format/internal/config"
	"fintrack/currency-format/internal/logging"
	"fintrack/currency-format/internal/preferences"
	"fintrack/currency-format/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.SettingsStore
	resolver  *preferences.Resolver
	processor *batch.Processor
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger logging.Logger
	store  store.SettingsStore
}

// WithLogger uses logger instead of building one from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore uses s instead of the YAML store named by the configuration.
func WithStore(s store.SettingsStore) Option {
	return func(o *options) { o.store = s }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	settingsStore := o.store
	if settingsStore == nil {
		settingsStore = store.NewYAMLStore(cfg.Settings.File, logger)
	}

	resolver, err := preferences.NewResolver(cfg.FormatterConfig(), settingsStore, logger)
	if err != nil {
		return nil, err
	}

	processor := batch.NewProcessor(logger, cfg.CSVDelimiter(), cfg.Compact.Decimals)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldCurrency, Value: cfg.FormatterConfig().CurrencyCode},
		logging.Field{Key: logging.FieldFile, Value: cfg.Settings.File})

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     settingsStore,
		resolver:  resolver,
		processor: processor,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the user settings store.
func (c *Container) GetStore() store.SettingsStore {
	return c.store
}

// GetResolver returns the per-request formatter resolver.
func (c *Container) GetResolver() *preferences.Resolver {
	return c.resolver
}

// GetProcessor returns the CSV batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	// Currently no resources need explicit cleanup
	c.logger.Debug("Container closed")
	return nil
}
