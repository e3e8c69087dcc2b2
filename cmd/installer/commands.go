package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"github.com/bcssewl/optivise-installer/internal/app"
	"github.com/bcssewl/optivise-installer/internal/domain/host"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/config"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

var errUsage = errors.New("usage")

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type cli struct {
	installer *app.Installer
	format    string
	stdout    io.Writer
}

// run executes one command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...app.Option) int {
	fs := flag.NewFlagSet("installer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("o", formatText, "Output format: text, json or yaml")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: installer [-o text|json|yaml] [-v] <status|launchable|install|uninstall|uninstall-all|open> [app]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	switch *format {
	case formatText, formatJSON, formatYAML:
	default:
		fmt.Fprintf(stderr, "unknown output format %q\n", *format)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: true, OutputPaths: []string{"stderr"}})
	if err != nil {
		logger = logging.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	installer, err := app.New(cfg, logger, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	c := &cli{installer: installer, format: *format, stdout: stdout}
	if err := c.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
			return exitUsage
		}
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	return exitOK
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "status":
		return c.status()
	case "launchable":
		return c.launchable()
	case "uninstall-all":
		return c.uninstallAll(ctx)
	case "install", "uninstall", "open":
		if len(args) != 1 {
			return errUsage
		}
		a, err := host.Parse(args[0])
		if err != nil {
			return fmt.Errorf("Unknown application: %s", args[0])
		}
		switch cmd {
		case "install":
			return c.install(ctx, a)
		case "uninstall":
			return c.uninstall(ctx, a)
		default:
			return c.open(ctx, a)
		}
	default:
		return errUsage
	}
}

func (c *cli) status() error {
	statuses := c.installer.Inspector.All()
	if c.structured() {
		return c.print(statuses)
	}

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "APP\tOFFICE\tADD-IN\tSUPPORTED")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, yesNo(s.OfficeInstalled), yesNo(s.ManifestInstalled), yesNo(s.Supported))
	}
	return w.Flush()
}

func (c *cli) launchable() error {
	apps := c.installer.Inspector.Launchable()
	if c.structured() {
		if apps == nil {
			apps = []host.App{}
		}
		return c.print(apps)
	}
	for _, a := range apps {
		fmt.Fprintln(c.stdout, a.DisplayName())
	}
	return nil
}

func (c *cli) install(ctx context.Context, a host.App) error {
	if !c.installer.Policy.Supported(a) {
		return fmt.Errorf("Optivise does not support %s yet", a.DisplayName())
	}
	msg, err := c.installer.Lifecycle.Install(ctx, a)
	if err != nil {
		return err
	}
	return c.printMessage(msg)
}

func (c *cli) uninstall(ctx context.Context, a host.App) error {
	msg, err := c.installer.Lifecycle.Uninstall(ctx, a)
	if err != nil {
		return err
	}
	return c.printMessage(msg)
}

func (c *cli) uninstallAll(ctx context.Context) error {
	outcomes := c.installer.Lifecycle.UninstallAll(ctx)

	var failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}

	if c.structured() {
		if err := c.print(outcomes); err != nil {
			return err
		}
	} else {
		if len(outcomes) == 0 {
			fmt.Fprintln(c.stdout, "Add-in is not installed")
		}
		for _, o := range outcomes {
			if o.Err != nil {
				fmt.Fprintf(c.stdout, "%s: %s\n", o.Name, o.Error)
				continue
			}
			fmt.Fprintln(c.stdout, o.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uninstalls failed", failed, len(outcomes))
	}
	return nil
}

func (c *cli) open(ctx context.Context, a host.App) error {
	if err := c.installer.Launcher.Open(ctx, a); err != nil {
		return err
	}
	return c.printMessage(fmt.Sprintf("Opened %s", a.DisplayName()))
}

func (c *cli) printMessage(msg string) error {
	if c.structured() {
		return c.print(map[string]any{"success": true, "message": msg})
	}
	_, err := fmt.Fprintln(c.stdout, msg)
	return err
}

func (c *cli) structured() bool {
	return c.format != formatText
}

func (c *cli) print(v any) error {
	if c.format == formatYAML {
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(out)
		return err
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
