package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/eringen/siteconf"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	exitFailure       = 1
	exitInvalidConfig = 7
)

// CLI is the root command line; global flags apply to every command.
type CLI struct {
	Config   string           `short:"c" help:"Configuration file. Empty uses the built-in definition." env:"SITE_CONFIG"`
	Profile  string           `short:"p" help:"Profile from the configuration file to overlay." env:"SITE_PROFILE"`
	Static   string           `help:"Static-asset root that ogImage and introAudio.src resolve against." env:"SITE_STATIC_DIR" default:"public"`
	NoAssets bool             `help:"Skip checking that referenced assets exist."`
	NoEnv    bool             `help:"Ignore SITE_* field overrides from the environment."`
	Verbose  bool             `short:"v" help:"Enable verbose logging."`
	Version  kong.VersionFlag `help:"Show version and exit."`

	Validate ValidateCmd `cmd:"" default:"1" help:"Load the configuration and report the first invalid field."`
	Show     ShowCmd     `cmd:"" help:"Print the resolved configuration."`
	Profiles ProfilesCmd `cmd:"" help:"List the profiles defined in the configuration file."`
	Init     InitCmd     `cmd:"" help:"Write a starter configuration file."`
	Serve    ServeCmd    `cmd:"" help:"Serve the resolved configuration over HTTP."`
	Ver      VersionCmd  `cmd:"" name:"version" help:"Print the siteconf version."`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func main() {
	loadEnvFiles(".env", ".env.local")

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("siteconf"),
		kong.Description("Validate, inspect and serve a blog site configuration."),
		kong.UsageOnError(),
		kong.Vars{"version": "siteconf " + version},
	)
	err := ctx.Run(&cli)
	os.Exit(exitCode(err))
}

// loadEnvFiles loads each existing file in order. Variables already set in
// the process environment are not overwritten.
func loadEnvFiles(names ...string) {
	for _, name := range names {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", name, err)
		}
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, siteconf.ErrInvalidConfig) {
		return exitInvalidConfig
	}
	return exitFailure
}
