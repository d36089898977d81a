package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/thinkfirst/tutorsync/internal/api"
	"github.com/thinkfirst/tutorsync/internal/config"
	"github.com/thinkfirst/tutorsync/internal/db"
	"github.com/thinkfirst/tutorsync/internal/log"
	"github.com/thinkfirst/tutorsync/internal/netmon"
	"github.com/thinkfirst/tutorsync/internal/repository"
	"github.com/thinkfirst/tutorsync/internal/session"
	syncsvc "github.com/thinkfirst/tutorsync/internal/sync"
)

// app wires the full stack for a single command invocation.
type app struct {
	cfg      *config.Config
	store    *db.DB
	client   *api.Client
	sessions *session.Manager
	monitor  *netmon.Switch
	chat     *repository.ChatRepository
	quizzes  *repository.QuizRepository
	syncer   *syncsvc.Service
}

// openApp loads config, opens the database, and connects every
// component. The connectivity state is probed once at startup; a CLI
// invocation is short-lived enough that it does not re-detect.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := log.Init(cfg.BaseDir); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	paths := config.GetPaths(cfg)
	store, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))

	sessions, err := session.NewManager(client, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initialize session: %w", err)
	}
	client.SetAuthorizer(sessions)

	monitor := netmon.New(probeConnectivity(ctx, cfg.API.BaseURL))

	return &app{
		cfg:      cfg,
		store:    store,
		client:   client,
		sessions: sessions,
		monitor:  monitor,
		chat:     repository.NewChatRepository(client, store, monitor),
		quizzes:  repository.NewQuizRepository(client, store, monitor),
		syncer: syncsvc.NewService(client, store, monitor, syncsvc.Options{
			Retention:  cfg.Retention(),
			SubmitRate: rate.Limit(cfg.Sync.SubmitPerSecond),
		}),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		log.Errorf("failed to close database: %v", err)
	}
	_ = log.Close()
}

// probeConnectivity checks whether the backend host answers at all.
// Any HTTP response counts as reachable; only transport failures mean
// offline. The --offline flag overrides the probe.
func probeConnectivity(ctx context.Context, baseURL string) bool {
	if forceOffline {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, baseURL, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

// watchConnectivity re-probes on an interval and drives the monitor
// with the result, so long-running watch mode notices reconnection.
// The monitor itself stays externally driven; this loop is the driver.
func watchConnectivity(ctx context.Context, monitor *netmon.Switch, probe func() bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitor.SetConnected(probe())
		}
	}
}

// currentChildID resolves the child for child-scoped commands: an
// explicit flag wins, otherwise the logged-in child session.
func (a *app) currentChildID(flagValue int64) (int64, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	creds := a.sessions.Current()
	if creds == nil {
		return 0, session.ErrNotAuthenticated
	}
	if creds.ChildID == nil {
		return 0, fmt.Errorf("no child selected: pass --child or log in with child-login")
	}
	return *creds.ChildID, nil
}
