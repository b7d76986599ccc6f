package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"pricewatch-engine/internal/catalog"
	"pricewatch-engine/internal/config"
	"pricewatch-engine/internal/events"
	"pricewatch-engine/internal/export"
	"pricewatch-engine/internal/httpapi"
	"pricewatch-engine/internal/refresh"
	"pricewatch-engine/internal/secrets"
	"pricewatch-engine/internal/store"
	"pricewatch-engine/internal/view"
)

func main() {
	// .env is optional, handy in dev
	_ = godotenv.Load()

	app := &cli.App{
		Name:           "pricewatch-engine",
		Usage:          "local engine behind the model-pricing and consultations dashboards",
		DefaultCommand: "serve",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "directory for config, cache db and lock file",
				Value:   ".",
				EnvVars: []string{"PRICEWATCH_DATA_DIR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API for the shell",
				Action: runServe,
			},
			{
				Name:   "refresh",
				Usage:  "fetch the model catalog once and cache it",
				Action: runRefresh,
			},
			{
				Name:  "export",
				Usage: "write the current derived views to xlsx files",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output directory (defaults to export.dir)"},
					&cli.StringFlag{Name: "q", Usage: "search query applied to both views"},
					&cli.StringFlag{Name: "tab", Usage: "consultations tab filter", Value: string(view.TabTous)},
				},
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type engine struct {
	cfg         config.Config
	cfgVal      *atomic.Value
	userCfgPath string
	db          *store.DB
	hub         *events.Hub
	refresher   *refresh.Refresher
	lock        *flock.Flock
}

func bootstrap(c *cli.Context) (*engine, error) {
	dataDir := c.String("data-dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	// Two engines sharing one SQLite cache corrupt each other's
	// snapshots; refuse to start instead.
	lk := flock.New(filepath.Join(dataDir, "engine.lock"))
	ok, err := lk.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("another engine instance already uses %s", dataDir)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		return nil, fmt.Errorf("config bootstrap failed: %w", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, warn := range vr.Warnings {
		log.Printf("[config] warning: %s", warn)
	}
	if !vr.OK() {
		return nil, fmt.Errorf("config invalid: %v", vr.Errors)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "pricewatch.db"))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := events.NewHub()

	client := catalog.NewClient(
		cfg.Catalog.BaseURL,
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
		catalog.NewHostLimiter(cfg.Catalog.RateRPS, cfg.Catalog.RateBurst),
	)
	client.APIKey = func() (string, error) {
		cur := cfgVal.Load().(config.Config)
		return secrets.GetAPIKey(cur.Catalog.KeyringAccount)
	}

	return &engine{
		cfg:         cfg,
		cfgVal:      &cfgVal,
		userCfgPath: userCfgPath,
		db:          db,
		hub:         hub,
		lock:        lk,
		refresher: &refresh.Refresher{
			Client: client,
			DB:     db.Pool,
			Hub:    hub,
			MaxAge: time.Duration(cfg.Catalog.RefreshMinutes) * time.Minute,
		},
	}, nil
}

func (e *engine) close() {
	_ = e.db.Close()
	_ = e.lock.Unlock()
}

func runServe(c *cli.Context) error {
	e, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	e.refresher.Start(ctx)

	// The selection is empty at engine start; the shell re-hydrates it
	// from its URL through POST /session/reset once it mounts.
	session := httpapi.NewSession(url.Values{}, nil)

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:           e.hub,
		CfgVal:        e.cfgVal,
		UserCfgPath:   e.userCfgPath,
		LoadCfg:       func() (config.Config, error) { return config.Load(e.userCfgPath) },
		Refresher:     e.refresher,
		Consultations: catalog.SampleConsultations(time.Now()),
		Session:       session,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", e.cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("engine listening on http://%s (shutdown token: %s)", addr, token)

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runRefresh(c *cli.Context) error {
	e, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer e.close()

	models, fetchedAt, err := e.refresher.Refresh(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("cached %d models (fetched %s)\n", len(models), fetchedAt.Format(time.RFC3339))
	return nil
}

func runExport(c *cli.Context) error {
	e, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer e.close()

	outDir := c.String("out")
	if outDir == "" {
		outDir = e.cfg.Export.Dir
	}

	models, _, err := e.refresher.Models(c.Context)
	if err != nil {
		return err
	}

	now := time.Now()

	mst := view.NewState()
	mst.SetQuery(c.String("q"))
	visibleModels := view.DeriveModels(models, mst)

	cst := view.NewState()
	cst.SortField = "deadline"
	cst.SetQuery(c.String("q"))
	if t := view.Tab(c.String("tab")); view.ValidTab(t) {
		cst.SetTab(t)
	}
	visibleConsultations := view.DeriveConsultations(catalog.SampleConsultations(now), cst, now)

	var g errgroup.Group
	g.Go(func() error {
		path, err := export.SaveTo(outDir, "models.xlsx", func(w io.Writer) error {
			return export.WriteModelsXLSX(visibleModels, w)
		})
		if err == nil {
			log.Printf("[export] wrote %s (%d rows)", path, len(visibleModels))
		}
		return err
	})
	g.Go(func() error {
		path, err := export.SaveTo(outDir, "consultations.xlsx", func(w io.Writer) error {
			return export.WriteConsultationsXLSX(visibleConsultations, w)
		})
		if err == nil {
			log.Printf("[export] wrote %s (%d rows)", path, len(visibleConsultations))
		}
		return err
	})
	return g.Wait()
}
