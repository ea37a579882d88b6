package daemon

import (
	"context"
	"net/http"
	"testing"
	"time"

	"clipscout/internal/api"
	"clipscout/internal/deps"
	"clipscout/internal/lifecycle"
	"clipscout/internal/logging"
	"clipscout/internal/testsupport"
)

func TestDaemonStartStop(t *testing.T) {
	d, cfg := newTestDaemon(t, stubAcquirer{})
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !d.Running() {
		t.Fatal("expected daemon to report running")
	}

	resp, err := http.Get("http://" + d.Addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from live server, got %d", resp.StatusCode)
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	// A second server over the same data dir must not get the lock.
	st := testsupport.MustOpenStore(t, cfg)
	svc := api.NewCandidateService(lifecycle.NewController(st, stubAcquirer{}, logging.NewNop()), time.UTC)
	other, err := New(cfg, st, svc, deps.NewLocator(nil, time.Second), logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := other.Start(ctx); err == nil {
		other.Stop()
		t.Fatal("expected lock contention to fail the second server")
	}

	d.Stop()
	time.Sleep(50 * time.Millisecond)
	if d.Running() {
		t.Fatal("expected daemon to be stopped")
	}
	if err := other.Start(ctx); err != nil {
		t.Fatalf("expected lock to be free after stop: %v", err)
	}
	other.Stop()
}

func TestWriteTimeoutTracksDownloadTimeout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Fetcher.DownloadTimeout = 0
	if got := writeTimeout(cfg); got != 0 {
		t.Fatalf("expected no limit, got %v", got)
	}
	cfg.Fetcher.DownloadTimeout = 60
	if got := writeTimeout(cfg); got != 210*time.Second {
		t.Fatalf("expected 210s, got %v", got)
	}
}
