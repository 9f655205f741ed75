package cli

import (
	"errors"
	"fmt"

	"github.com/0xalexb/kefir"
	"github.com/0xalexb/kefir/config"
	yamlcodec "github.com/0xalexb/kefir/config/codec/yaml"

	"github.com/spf13/cobra"
)

// ErrKeyNotFound is returned by get when the path does not exist.
var ErrKeyNotFound = errors.New("key not found")

func newGetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print the value at a colon-separated path",
		Example: "  kefir -n my-app get servers:0:host\n" +
			"  kefir -n my-app get theme",
		Args: cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			path, err := config.ParsePath(args[0])
			if err != nil {
				return err
			}

			cfg, err := openConfig(cmd, flags)
			if err != nil {
				return err
			}

			value, found, err := cfg.Get(path...)
			if err != nil {
				return err
			}

			if !found {
				return fmt.Errorf("%w: %s", ErrKeyNotFound, args[0])
			}

			formatted, err := yamlcodec.FormatValue(value)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatted)

			return nil
		}),
	}
}

func newSetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set the value at a colon-separated path and save the file",
		Long: "Set parses value as YAML, so numbers, booleans and flow collections " +
			"such as [a, b] or {k: v} keep their type. Quote the value to force a string.",
		Example: "  kefir -n my-app set window:width 1024\n" +
			"  kefir -n my-app set hosts '[a.example.com, b.example.com]'",
		Args: cobra.ExactArgs(2),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			path, err := config.ParsePath(args[0])
			if err != nil {
				return err
			}

			value, err := yamlcodec.ParseValue(args[1])
			if err != nil {
				return err
			}

			cfg, err := openConfig(cmd, flags)
			if err != nil {
				return err
			}

			_, err = cfg.Set(path, value)
			if err != nil {
				return err
			}

			err = cfg.Persist()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", path, config.Render(value))

			return nil
		}),
	}
}

func newDeleteCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a top-level key and save the file",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			cfg, err := openConfig(cmd, flags)
			if err != nil {
				return err
			}

			err = cfg.Delete(args[0])
			if err != nil {
				return err
			}

			return cfg.Persist()
		}),
	}
}

func newListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every top-level key and its value",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			cfg, err := openConfig(cmd, flags)
			if err != nil {
				return err
			}

			entries, err := cfg.All()
			if err != nil {
				return err
			}

			for key, value := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, config.Render(value))
			}

			return nil
		}),
	}
}

func newPathCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			cfg, err := openConfig(cmd, flags)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())

			return nil
		}),
	}
}

func newResetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every key and save the empty file",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			cfg, err := openConfig(cmd, flags)
			if err != nil {
				return err
			}

			cfg.Empty()

			return cfg.Persist()
		}),
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kefir version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kefir version %s (compiled at %s)\n", kefir.Version, kefir.CompiledAt)
		},
	}
}
