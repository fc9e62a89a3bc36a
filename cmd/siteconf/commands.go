package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/eringen/siteconf"
	"github.com/eringen/siteconf/assets"
	"github.com/eringen/siteconf/scaffold"
	"github.com/eringen/siteconf/server"
)

// source describes where the configuration comes from, for messages.
func (c *CLI) source() string {
	if c.Config == "" {
		return "built-in"
	}
	return c.Config
}

// assetRoot returns the static root to check, or nil when checks are off or
// the directory does not exist.
func (c *CLI) assetRoot() *assets.Root {
	if c.NoAssets || c.Static == "" {
		return nil
	}
	info, err := os.Stat(c.Static)
	if err != nil || !info.IsDir() {
		slog.Warn("Static directory not found, skipping asset checks", "dir", c.Static)
		return nil
	}
	return assets.Dir(c.Static)
}

func (c *CLI) loadOptions() []siteconf.LoadOption {
	var opts []siteconf.LoadOption
	if c.Config != "" {
		opts = append(opts, siteconf.WithFile(c.Config))
	}
	if c.Profile != "" {
		opts = append(opts, siteconf.WithProfile(c.Profile))
	}
	if !c.NoEnv {
		opts = append(opts, siteconf.WithOSEnvironment())
	}
	if root := c.assetRoot(); root != nil {
		opts = append(opts, siteconf.WithAssets(root))
	}
	return opts
}

func (c *CLI) load() (siteconf.SiteConfig, error) {
	slog.Debug("Loading configuration", "source", c.source(), "profile", c.Profile)
	return siteconf.Load(c.loadOptions()...)
}

// ValidateCmd loads the configuration and reports the result.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "ok: %q from %s", cfg.Title, cli.source())
	if cli.Profile != "" {
		fmt.Fprintf(os.Stdout, " (profile %s)", cli.Profile)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

// ShowCmd prints the resolved configuration.
type ShowCmd struct {
	Format string `short:"f" enum:"yaml,json" default:"yaml" help:"Output format (yaml, json)."`
}

func (s *ShowCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	return writeConfig(os.Stdout, cfg, s.Format)
}

func writeConfig(w io.Writer, cfg siteconf.SiteConfig, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	data, err := siteconf.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ProfilesCmd lists profile names.
type ProfilesCmd struct{}

func (p *ProfilesCmd) Run(cli *CLI) error {
	if cli.Config == "" {
		return errors.New("profiles requires --config")
	}
	names, err := siteconf.Profiles(cli.Config)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}

// InitCmd writes a starter configuration.
type InitCmd struct {
	Dir      string `short:"d" default:"." help:"Directory to write into."`
	Force    bool   `help:"Overwrite existing files."`
	Title    string `default:"My Blog" help:"Site title."`
	Website  string `default:"https://example.com/" help:"Canonical site URL, with trailing slash."`
	Author   string `default:"Your Name" help:"Author display name."`
	Timezone string `default:"UTC" help:"IANA time zone."`
}

func (i *InitCmd) Run() error {
	created, err := scaffold.Write(i.Dir, scaffold.Data{
		Title:    i.Title,
		Website:  i.Website,
		Author:   i.Author,
		Timezone: i.Timezone,
	}, i.Force)
	for _, path := range created {
		fmt.Fprintf(os.Stdout, "  created %s\n", path)
	}
	if err != nil {
		return err
	}
	path := filepath.Join(i.Dir, "site.yaml")
	if _, err := siteconf.Load(siteconf.WithFile(path)); err != nil {
		return fmt.Errorf("generated %s does not validate: %w", path, err)
	}
	fmt.Fprintf(os.Stdout, "\nValidate with: siteconf -c %s validate\n", path)
	return nil
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("siteconf %s\n", version)
	return nil
}

// ServeCmd runs the inspection server.
type ServeCmd struct {
	Addr     string        `default:":3001" env:"SITE_SERVE_ADDR" help:"Listen address."`
	Watch    bool          `short:"w" help:"Reload when the configuration file changes."`
	Debounce time.Duration `default:"500ms" help:"Delay before reloading after a change."`
}

func (s *ServeCmd) Run(cli *CLI) error {
	metrics := server.NewMetrics(nil)
	cfg, err := cli.load()
	metrics.ObserveLoad(cfg, err)
	if err != nil {
		return err
	}

	snapshot := server.NewSnapshot(cfg)
	opts := []server.Option{
		server.WithAddr(s.Addr),
		server.WithSource(cli.source(), cli.Profile),
		server.WithMetrics(metrics),
	}
	if root := cli.assetRoot(); root != nil {
		opts = append(opts, server.WithAssets(root))
	}
	srv := server.New(snapshot, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.Watch {
		if cli.Config == "" {
			return errors.New("--watch requires --config")
		}
		w, err := server.NewWatcher(cli.Config, cli.load, snapshot, metrics, s.Debounce)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving configuration", "addr", s.Addr, "source", cli.source())
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
