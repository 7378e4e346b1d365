// Package app is the portwho command line: flag parsing, mode selection and
// exit status. The resolution itself lives in internal/probe.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pranshuparmar/portwho/internal/completion"
	"github.com/pranshuparmar/portwho/internal/config"
	"github.com/pranshuparmar/portwho/internal/logging"
	"github.com/pranshuparmar/portwho/internal/output"
	"github.com/pranshuparmar/portwho/internal/probe"
	"github.com/pranshuparmar/portwho/pkg/model"
)

// Exit codes
const (
	exitOK       = 0
	exitNotFound = 1 // -pid or -container found nothing
	exitUsage    = 2 // bad arguments or config
	exitFailure  = 3 // the report could not be written
)

// errNotFound ends a restricted-mode run silently with exitNotFound.
var errNotFound = errors.New("no owner found")

// usageError marks errors caused by the invocation; usage is printed with them.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// writeError wraps a failure to deliver the report, e.g. a closed pipe.
type writeError struct {
	err error
}

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

var (
	pidOnly       bool
	containerOnly bool
	noColor       bool
	jsonOut       bool
	verbose       bool
	configPath    string
)

var rootCmd = &cobra.Command{
	Use:   "portwho <port>",
	Short: "Show which process or container owns a network port",
	Long: `portwho finds the process bound to a port by trying, in order, the kernel
socket table, lsof and netstat, and the container publishing it by asking
docker and then podman. The first strategy that finds an owner wins.`,
	Example: `  portwho 8080                  # describe everything on port 8080
  portwho -pid 8080             # print only the owning pid, exit 1 if none
  portwho -container 5432       # print only the container id, exit 1 if none
  portwho --json 8080           # machine-readable report`,
	Args:              portArgs,
	ValidArgsFunction: completePorts,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PreRunE:           exclusiveFlags,
	RunE:              run,
}

var completionCmd = &cobra.Command{
	Use:       "completion <bash|zsh|fish|powershell>",
	Short:     "Generate a shell completion script",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell", "pwsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&pidOnly, "pid", false, "print only the owning process id, or exit 1")
	flags.BoolVar(&containerOnly, "container", false, "print only the owning container id, or exit 1")
	flags.BoolVar(&noColor, "nocolor", false, "disable colorized output")
	flags.BoolVar(&jsonOut, "json", false, "output the report as JSON")
	flags.BoolVar(&verbose, "verbose", false, "log every probe attempt to stderr")
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/portwho/config.yaml)")

	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "no-color" {
			name = "nocolor"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

// SetVersion enables --version when the build injected one.
func SetVersion(v string) {
	if v != "" {
		rootCmd.Version = v
	}
}

func portArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return &usageError{errors.New("missing port argument")}
	case len(args) > 1:
		return &usageError{fmt.Errorf("expected one port, got %d arguments", len(args))}
	}
	if _, err := model.ParsePort(args[0]); err != nil {
		return &usageError{err}
	}
	return nil
}

func completePorts(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completion.ListeningPorts(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// exclusiveFlags rejects any two of --pid, --container and --json together.
func exclusiveFlags(cmd *cobra.Command, _ []string) error {
	var set []string
	for _, name := range []string{"pid", "container", "json"} {
		if cmd.Flags().Changed(name) {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return &usageError{fmt.Errorf("%s cannot be used together", strings.Join(set, " and "))}
	}
	return nil
}

func outputMode() model.OutputMode {
	switch {
	case pidOnly:
		return model.ModePidOnly
	case containerOnly:
		return model.ModeContainerOnly
	}
	return model.ModeNormal
}

func run(cmd *cobra.Command, args []string) error {
	port, err := model.ParsePort(args[0])
	if err != nil {
		return &usageError{err}
	}
	mode := outputMode()

	cfg, err := config.Resolve(configPath, os.Getenv)
	if err != nil {
		return err
	}

	logCfg := cfg.Log
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.SetupWriter(logCfg, cmd.ErrOrStderr()); err != nil {
		return err
	}
	logging.Debug("resolving port", "port", port, "mode", mode)
	if mode != model.ModeContainerOnly && cfg.NoProcessProbes() {
		logging.Warn("every process probe is disabled by the config", "disable", cfg.Disable)
	}
	if mode != model.ModePidOnly && len(cfg.Runtimes) == 0 {
		logging.Warn("no container runtime is configured")
	}

	state := newResolver(cfg).Resolve(port, mode)

	out := cmd.OutOrStdout()
	switch {
	case mode.Restricted():
		output.RenderBare(out, state)
		if state.ExitCode() == probe.ExitNotFound {
			return errNotFound
		}
		return nil
	case jsonOut:
		if err := output.RenderJSON(out, state); err != nil {
			return &writeError{err}
		}
		return nil
	}

	output.RenderStandard(out, state, colorEnabled(out, cfg.Color))
	return nil
}

func colorEnabled(out io.Writer, setting string) bool {
	f, _ := out.(*os.File)
	return output.ColorEnabled(f, noColor, setting, os.Getenv)
}

// Execute runs the command line with os.Args and returns the exit code.
func Execute() int {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the command line with args, writing the report to stdout
// and diagnostics to stderr, and returns the exit code.
func ExecuteArgs(args []string, stdout, stderr io.Writer) int {
	resetFlags(rootCmd)
	rootCmd.SetArgs(normalizeArgs(args))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotFound):
		return exitNotFound
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var werr *writeError
	if errors.As(err, &werr) {
		return exitFailure
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, rootCmd.UsageString())
	}
	return exitUsage
}

// resetFlags restores every flag of cmd and its subcommands to its default so
// that repeated executions in one process start clean.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
