package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gymbacteria/internal/client/client"
	"github.com/dmitrijs2005/gymbacteria/internal/client/config"
	"github.com/dmitrijs2005/gymbacteria/internal/client/credstore"
	"github.com/dmitrijs2005/gymbacteria/internal/client/guard"
	"github.com/dmitrijs2005/gymbacteria/internal/client/identity"
	"github.com/dmitrijs2005/gymbacteria/internal/client/metrics"
	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/client/navigation"
	"github.com/dmitrijs2005/gymbacteria/internal/client/services"
	"github.com/dmitrijs2005/gymbacteria/internal/client/session"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService services.AuthService
	session     *session.Manager
	router      navigation.Navigator
	metrics     *metrics.Collectors
	closers     []func() error
	reader      *bufio.Reader

	modeMu sync.Mutex
	Mode   Mode
}

// NewApp builds the application graph from c. Storage problems do not fail
// construction; the credential store degrades to memory instead.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	store, closeStore := credstore.Open(ctx, c, logger)
	resolver := identity.NewAPIResolver(apiClient, logger)
	collectors := metrics.New()

	router := navigation.NewRouter(c.LandingPath, 0)
	mgr := session.NewManager(store, resolver, router, logger,
		session.WithLandingPath(c.LandingPath),
		session.WithRecorder(collectors),
	)
	g := guard.New(mgr.Phase, router)
	router.Use(g.Policy())
	mgr.AddObserver(g.Observe)

	a := &App{
		config:      c,
		logger:      logger.With("module", "cli"),
		authService: services.NewAuthService(mgr, resolver, apiClient),
		session:     mgr,
		router:      router,
		metrics:     collectors,
		closers:     []func() error{closeStore},
		reader:      bufio.NewReader(os.Stdin),
	}
	router.OnChange(func(from, to string) {
		a.logger.Debug(ctx, "navigated", "from", from, "to", to)
	})
	return a, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.Mode
}

// Run resolves the persisted session and runs the REPL until the user exits
// or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.config.MetricsAddr != "" {
		go a.serveMetrics(ctx, a.config.MetricsAddr)
	}

	printlnFn("Welcome to Gym Bacteria CLI (type 'help' for commands)")

	if err := a.session.Start(ctx); err != nil {
		a.logger.Info(ctx, "startup resolution failed", "error", err)
	}
	if s := a.session.Snapshot(); s.Phase == models.PhaseExpired {
		printlnFn("Your session has expired, please log in again.")
	}

	a.probe(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close tears the session down and releases storage.
func (a *App) Close() {
	if a.session != nil {
		a.session.Close()
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	s, _ := a.authService.WhoAmI(context.Background(), false)
	return s.Authenticated()
}

// getStatus renders the prompt annotation: nickname, connectivity mode and
// current page.
func (a *App) getStatus() string {
	var parts []string
	if a.authService != nil {
		if s, _ := a.authService.WhoAmI(context.Background(), false); s.Authenticated() {
			parts = append(parts, s.User.Nickname)
		}
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.router != nil {
		parts = append(parts, a.router.Current())
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := a.authService.Ping(ctx)
	up := err == nil
	if a.metrics != nil {
		a.metrics.SetAPIUp(up)
	}
	if up {
		a.setMode(ModeOnline)
	} else {
		a.setMode(ModeOffline)
	}
}

// StartOnlineStatusWatcher probes the API every interval until ctx is done,
// switching Mode between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info(ctx, "serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error(ctx, "metrics server failed", "error", err)
	}
}
