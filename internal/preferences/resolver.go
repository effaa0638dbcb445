// Package preferences builds request-scoped formatters from the application's
// base configuration and each user's stored settings.
package preferences

import (
	"context"
	"fmt"

	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/logging"
)

// SettingsSource provides stored settings by user name.
type SettingsSource interface {
	Load(user string) (currencyfmt.Settings, error)
}

// Resolver creates one formatter per request. Formatters are never shared
// between users.
type Resolver struct {
	base   currencyfmt.Config
	source SettingsSource
	logger logging.Logger
}

// NewResolver validates base and returns a resolver that overlays settings
// from source. A nil source means no user has stored settings.
func NewResolver(base currencyfmt.Config, source SettingsSource, logger logging.Logger) (*Resolver, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if _, err := currencyfmt.New(base, logger); err != nil {
		return nil, fmt.Errorf("invalid base formatter configuration: %w", err)
	}
	return &Resolver{base: base, source: source, logger: logger}, nil
}

// Base returns the configuration every formatter starts from.
func (r *Resolver) Base() currencyfmt.Config {
	return r.base
}

// Formatter returns a formatter for user with the given overrides applied
// after the stored settings.
func (r *Resolver) Formatter(user string, overrides currencyfmt.Settings) (*currencyfmt.Formatter, error) {
	f, err := currencyfmt.New(r.base, r.logger)
	if err != nil {
		return nil, err
	}

	stored, err := r.stored(user)
	if err != nil {
		return nil, err
	}

	if _, err := f.ApplySettings(stored.Merge(overrides)); err != nil {
		return nil, err
	}

	r.logger.Debug("Resolved formatter",
		logging.Field{Key: logging.FieldUser, Value: user},
		logging.Field{Key: logging.FieldCurrency, Value: f.Config().CurrencyCode})
	return f, nil
}

// ForUser builds the formatter for user and returns a context carrying it.
func (r *Resolver) ForUser(ctx context.Context, user string) (context.Context, *currencyfmt.Formatter, error) {
	return r.ForUserWith(ctx, user, currencyfmt.Settings{})
}

// ForUserWith is ForUser with per-request overrides.
func (r *Resolver) ForUserWith(ctx context.Context, user string, overrides currencyfmt.Settings) (context.Context, *currencyfmt.Formatter, error) {
	if err := ctx.Err(); err != nil {
		return ctx, nil, err
	}

	f, err := r.Formatter(user, overrides)
	if err != nil {
		return ctx, nil, err
	}
	return currencyfmt.NewContext(ctx, f), f, nil
}

func (r *Resolver) stored(user string) (currencyfmt.Settings, error) {
	if user == "" || r.source == nil {
		return currencyfmt.Settings{}, nil
	}
	s, err := r.source.Load(user)
	if err != nil {
		r.logger.WithError(err).Error("Failed to load user settings",
			logging.Field{Key: logging.FieldUser, Value: user})
		return currencyfmt.Settings{}, err
	}
	return s, nil
}
