// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errTest = errors.New("catalog unavailable")

func TestRequestID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context returned %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want req-1", got)
	}

	ctx = ContextWithNewRequestID(context.Background())
	id := RequestIDFromContext(ctx)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated request id %q is not a UUID: %v", id, err)
	}

	//nolint:staticcheck // nil context is handled explicitly
	if got := RequestIDFromContext(nil); got != "" {
		t.Errorf("nil context returned %q", got)
	}
}

func TestCtx_UsesStoredLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := ContextWithLogger(context.Background(), base)
	ctx = ContextWithRequestID(ctx, "req-42")

	Ctx(ctx).Info().Msg("handled")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["message"] != "handled" {
		t.Errorf("message = %v, want handled", entry["message"])
	}
}

func TestCtx_FallsBackToGlobal(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	Init(Config{Output: &buf})

	Ctx(context.Background()).Info().Msg("global")
	//nolint:staticcheck // nil context is handled explicitly
	Ctx(nil).Info().Msg("nil ctx")

	out := buf.String()
	if !strings.Contains(out, "global") || !strings.Contains(out, "nil ctx") {
		t.Errorf("expected both entries on the global logger: %s", out)
	}
	if strings.Contains(out, "request_id") {
		t.Errorf("request_id should be absent: %s", out)
	}
}
