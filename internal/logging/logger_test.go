package logging_test

import (
	"context"
	"testing"

	"albumlink/internal/logging"
	"albumlink/internal/resolver"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewDefaultsToConsole(t *testing.T) {
	logger, err := logging.New(logging.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestWithContextStampsFields(t *testing.T) {
	ctx := resolver.WithCorrelationID(context.Background(), "abc-123")
	ctx = resolver.WithRelease(ctx, "가수A - 앨범B")

	fields := logging.ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 context fields, got %d", len(fields))
	}
	if fields[0].Key != logging.FieldCorrelationID {
		t.Fatalf("unexpected first field %q", fields[0].Key)
	}

	logger := logging.WithContext(ctx, logging.NewNop())
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestWithContextNilLogger(t *testing.T) {
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("expected fallback logger")
	}
}
