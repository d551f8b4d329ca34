package logging

import (
	"context"
	"log/slog"
)

// Tee duplicates log records to a primary and a secondary handler. The
// secondary (the DB handler here) filters by its own Enabled check.
type Tee struct {
	primary   slog.Handler
	secondary slog.Handler
}

func NewTee(primary, secondary slog.Handler) *Tee {
	return &Tee{primary: primary, secondary: secondary}
}

func (t *Tee) Enabled(ctx context.Context, level slog.Level) bool {
	return t.primary.Enabled(ctx, level) || t.secondary.Enabled(ctx, level)
}

func (t *Tee) Handle(ctx context.Context, record slog.Record) error {
	if t.primary.Enabled(ctx, record.Level) {
		if err := t.primary.Handle(ctx, record); err != nil {
			return err
		}
	}
	if t.secondary.Enabled(ctx, record.Level) {
		return t.secondary.Handle(ctx, record)
	}
	return nil
}

func (t *Tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Tee{
		primary:   t.primary.WithAttrs(attrs),
		secondary: t.secondary.WithAttrs(attrs),
	}
}

func (t *Tee) WithGroup(name string) slog.Handler {
	return &Tee{
		primary:   t.primary.WithGroup(name),
		secondary: t.secondary.WithGroup(name),
	}
}
