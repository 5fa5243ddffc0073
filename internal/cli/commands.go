package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/helpers"
	"github.com/storefront-qa/sauce-e2e/internal/probe"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxProbeBody caps how much of a probed page is read.
const maxProbeBody = 4 << 20

// Commands returns every sub-command of the tool. getenv is consulted when a
// command runs, after .env files have been loaded.
func Commands(getenv func(string) string, logger *zap.Logger) []*cli.Command {
	return []*cli.Command{
		ServeCommand(getenv, logger),
		UsersCommand(getenv),
		ElementIDCommand(),
		SnapshotNameCommand(),
		PayloadsCommand(),
		ProbeCommand(logger),
		InstallCommand(logger),
	}
}

// ServeCommand runs the local storefront replica
func ServeCommand(getenv func(string) string, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local storefront replica",
		Action: func(c *cli.Context) error {
			users, err := config.LoadUsers(getenv)
			if err != nil {
				return err
			}
			if users.Password() == "" {
				logger.Warn("PASSWORD is not set, every login will be rejected")
			}

			repo, closeStore, err := OpenOrderStore(c.Context, getenv, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			deps, err := BuildServerDependenciesWithRepo(users, config.LoadServerConfig(getenv), repo, logger)
			if err != nil {
				return err
			}
			return RunServe(deps)
		},
	}
}

// UsersCommand lists the user directory
func UsersCommand(getenv func(string) string) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "List the configured roles and their usernames",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print a JSON object keyed by role"},
		},
		Action: func(c *cli.Context) error {
			users, err := config.LoadUsers(getenv)
			if err != nil {
				return err
			}
			roles := users.Roles()
			usernames := users.Usernames()

			if c.Bool("json") {
				out := make(map[config.Role]string, len(roles))
				for i, role := range roles {
					out[role] = usernames[i]
				}
				return writeJSON(c.App.Writer, out)
			}
			for i, role := range roles {
				fmt.Fprintf(c.App.Writer, "%-24s %s\n", role, usernames[i])
			}
			return nil
		},
	}
}

// ElementIDCommand prints the data-test suffix of product names
func ElementIDCommand() *cli.Command {
	return &cli.Command{
		Name:      "element-id",
		Usage:     "Normalize product names into element id suffixes",
		ArgsUsage: "NAME...",
		Action: func(c *cli.Context) error {
			return mapArgs(c, helpers.ToElementID)
		},
	}
}

// SnapshotNameCommand prints the baseline file name of snapshot labels
func SnapshotNameCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot-name",
		Usage:     "Sanitize labels into snapshot file names",
		ArgsUsage: "LABEL...",
		Action: func(c *cli.Context) error {
			return mapArgs(c, helpers.ToSnapshotFilename)
		},
	}
}

func mapArgs(c *cli.Context, fn func(string) string) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one argument is required", 2)
	}
	for _, arg := range c.Args().Slice() {
		fmt.Fprintln(c.App.Writer, fn(arg))
	}
	return nil
}

// PayloadsCommand dumps the attack payload catalogs as JSON
func PayloadsCommand() *cli.Command {
	return &cli.Command{
		Name:  "payloads",
		Usage: "Print the security probe payloads as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Usage: "sql-injection or xss (default: all)"},
		},
		Action: func(c *cli.Context) error {
			catalogs := probe.Catalogs()
			if kind := c.String("kind"); kind != "" {
				catalog, ok := catalogs[kind]
				if !ok {
					return cli.Exit(fmt.Sprintf("unknown payload kind %q (known: %s)", kind, strings.Join(kinds(catalogs), ", ")), 2)
				}
				return writeJSON(c.App.Writer, catalog.All())
			}

			out := make(map[string][]probe.Payload, len(catalogs))
			for kind, catalog := range catalogs {
				out[kind] = catalog.All()
			}
			return writeJSON(c.App.Writer, out)
		},
	}
}

func kinds(catalogs map[string]probe.Catalog) []string {
	names := make([]string, 0, len(catalogs))
	for kind := range catalogs {
		names = append(names, kind)
	}
	sort.Strings(names)
	return names
}

// ProbeReport is the JSON output of the probe command.
type ProbeReport struct {
	URL            string          `json:"url"`
	Status         int             `json:"status"`
	MissingHeaders []string        `json:"missingHeaders"`
	DatabaseErrors []probe.Finding `json:"databaseErrors"`
	ScriptMarkup   []probe.Finding `json:"scriptMarkup"`
}

// Clean reports whether the probe found nothing.
func (r ProbeReport) Clean() bool {
	return len(r.MissingHeaders) == 0 && len(r.DatabaseErrors) == 0 && len(r.ScriptMarkup) == 0
}

// ProbeCommand fetches a page over plain HTTP and runs the passive probes on it
func ProbeCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Check a URL for missing security headers and leaked errors",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "request timeout"},
			&cli.BoolFlag{Name: "strict", Usage: "exit non-zero when anything is found"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one URL is required", 2)
			}
			client := &http.Client{Timeout: c.Duration("timeout")}
			report, err := Probe(c.Context, client, c.Args().First())
			if err != nil {
				return err
			}
			logger.Debug("probe finished", zap.String("url", report.URL), zap.Bool("clean", report.Clean()))

			if err := writeJSON(c.App.Writer, report); err != nil {
				return err
			}
			if c.Bool("strict") && !report.Clean() {
				return cli.Exit("probe found problems", 1)
			}
			return nil
		},
	}
}

// Probe GETs target with client and scans the response.
func Probe(ctx context.Context, client *http.Client, target string) (ProbeReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ProbeReport{}, fmt.Errorf("invalid probe target: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return ProbeReport{}, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		return ProbeReport{}, fmt.Errorf("failed to read %s: %w", target, err)
	}

	raw := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		raw[k] = strings.Join(v, ", ")
	}

	return ProbeReport{
		URL:            target,
		Status:         resp.StatusCode,
		MissingHeaders: probe.SecurityHeadersFrom(raw).Missing(),
		DatabaseErrors: probe.ScanLeakedDatabaseErrors(string(body)),
		ScriptMarkup:   probe.ScanScriptArtifacts(string(body)),
	}, nil
}

// InstallCommand downloads the playwright driver and browsers
func InstallCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the playwright driver and browsers",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "browser", Usage: "chromium, firefox or webkit (default: all)"},
		},
		Action: func(c *cli.Context) error {
			browsers := c.StringSlice("browser")
			logger.Info("installing playwright", zap.Strings("browsers", browsers))
			if err := browser.Install(browsers...); err != nil {
				return fmt.Errorf("failed to install playwright: %w", err)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
