package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/kefir"
	"github.com/0xalexb/kefir/config"
	"github.com/0xalexb/kefir/logging"

	"github.com/spf13/cobra"
)

// Exit codes returned by Run.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

// NamespaceEnv names the environment variable used when --namespace is not given.
const NamespaceEnv = "KEFIR_NAMESPACE"

// needsNamespace marks commands that open the configuration file.
const needsNamespace = "kefir/needs-namespace"

type globalFlags struct {
	namespace  string
	dir        string
	configName string
	logLevel   string
	logFormat  string
}

// runtimeError marks failures that happen after arguments were accepted.
type runtimeError struct {
	err error
}

func (e *runtimeError) Error() string {
	return e.err.Error()
}

func (e *runtimeError) Unwrap() error {
	return e.err
}

// Run executes the command tree with args and returns an exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var runErr *runtimeError
	if errors.As(err, &runErr) {
		return ExitRuntimeError
	}

	return ExitUsageError
}

// NewRootCommand builds the kefir command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "kefir",
		Short: "Read and write per-application configuration files",
		Long: "kefir manages a YAML configuration file stored in the platform " +
			"configuration directory of a namespace.",
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	persistent := root.PersistentFlags()
	persistent.StringVarP(&flags.namespace, "namespace", "n", os.Getenv(NamespaceEnv),
		"application namespace (env "+NamespaceEnv+")")
	persistent.StringVar(&flags.dir, "dir", "", "base directory, overrides the platform configuration directory")
	persistent.StringVar(&flags.configName, "file", kefir.DefaultConfigName, "configuration file name")
	persistent.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	persistent.StringVar(&flags.logFormat, "log-format", logging.FormatText, "log format: text, json")

	// A missing namespace is rejected before any handler runs, so it exits
	// as a usage error.
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations[needsNamespace] == "" || flags.namespace != "" {
			return nil
		}

		return fmt.Errorf("%w: pass --namespace or set %s", kefir.ErrMissingNamespace, NamespaceEnv)
	}

	configCommands := []*cobra.Command{
		newGetCommand(flags),
		newSetCommand(flags),
		newDeleteCommand(flags),
		newListCommand(flags),
		newPathCommand(flags),
		newResetCommand(flags),
	}

	for _, cmd := range configCommands {
		cmd.Annotations = map[string]string{needsNamespace: "true"}
	}

	root.AddCommand(configCommands...)
	root.AddCommand(newVersionCommand())

	return root
}

// openConfig builds the Config selected by the global flags.
func openConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	logger := logging.NewLogger(logging.LoggerConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
	}, cmd.ErrOrStderr())

	opts := []kefir.Option{
		kefir.WithConfigName(flags.configName),
		kefir.WithLogger(logger),
	}

	if flags.dir != "" {
		opts = append(opts, kefir.WithDir(flags.dir))
	}

	cfg, err := kefir.New(flags.namespace, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("using config file", slog.String("path", cfg.Path()))

	return cfg, nil
}

// runE adapts a handler so its errors count as runtime failures and do not
// print usage.
func runE(handler func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		err := handler(cmd, args)
		if err != nil {
			return &runtimeError{err: err}
		}

		return nil
	}
}
