package currencyfmt

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying f.
func NewContext(ctx context.Context, f *Formatter) context.Context {
	return context.WithValue(ctx, contextKey{}, f)
}

// FromContext returns the formatter stored in ctx, if any.
func FromContext(ctx context.Context) (*Formatter, bool) {
	f, ok := ctx.Value(contextKey{}).(*Formatter)
	return f, ok && f != nil
}

// FromContextOrDefault returns the formatter stored in ctx, or a formatter
// with the default configuration.
func FromContextOrDefault(ctx context.Context) *Formatter {
	if f, ok := FromContext(ctx); ok {
		return f
	}
	return NewDefault(nil)
}
