package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"paycheckbuddy/internal/datacache"
	"paycheckbuddy/internal/gateway/memory"
	"paycheckbuddy/internal/metrics"
	"paycheckbuddy/internal/session"
)

func TestRenderOverviewSeededBackend(t *testing.T) {
	store := memory.NewSeeded()
	sess := session.New(store)
	cache := datacache.New(store, sess)

	ctx := context.Background()
	if err := sess.Login(ctx, "demo", "demo"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := cache.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	var buf bytes.Buffer
	if err := renderOverview(&buf, cache); err != nil {
		t.Fatalf("renderOverview: %v", err)
	}
	out := buf.String()

	// Seeded monthly period: 2000 income vs 1200+300 expenses.
	for _, want := range []string{
		"PERIOD",
		"monthly",
		"500.00",
		"Total income:   USD 2500.00",
		"Total expenses: USD 2400.00",
		"Balance:        USD 100.00",
		"Housing",
		"Uncategorized",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q:\n%s", want, out)
		}
	}
}

func TestDumpMetricsExposesCounters(t *testing.T) {
	metrics.CacheLoadsTotal.Inc()

	var buf bytes.Buffer
	if err := dumpMetrics(&buf); err != nil {
		t.Fatalf("dumpMetrics: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "paycheckbuddy_cache_loads_total") {
		t.Errorf("dump missing cache load counter:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE paycheckbuddy_cache_loads_total counter") {
		t.Errorf("dump missing type header:\n%s", out)
	}
}
