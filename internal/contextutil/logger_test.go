package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContextOr(t *testing.T) {
	ctxLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		fallback *slog.Logger
		want     *slog.Logger
	}{
		{name: "logger in context", ctx: WithLogger(context.Background(), ctxLogger), fallback: fallback, want: ctxLogger},
		{name: "fallback", ctx: context.Background(), fallback: fallback, want: fallback},
		{name: "nil context", ctx: nil, fallback: fallback, want: fallback},
		{name: "nil fallback", ctx: context.Background(), fallback: nil, want: slog.Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoggerFromContextOr(tt.ctx, tt.fallback); got != tt.want {
				t.Errorf("LoggerFromContextOr() = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestLoggerFromContext_Default(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() should fall back to slog.Default()")
	}
}
