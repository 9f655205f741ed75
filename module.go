package kefir

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/0xalexb/kefir/config"

	"go.uber.org/fx"
)

// Module creates an Fx module providing the Config for namespace.
// The Config is tagged with the namespace: consumers request it with
// fx.ParamTags(`name:"<namespace>"`). A *slog.Logger in the container is
// used when WithLogger is not given.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(namespace string, opts ...Option) fx.Option {
	if namespace == "" {
		return fx.Error(ErrMissingNamespace)
	}

	options := applyOptions(opts)

	return fx.Module(namespace,
		fx.Provide(
			fx.Annotate(
				func(lifecycle fx.Lifecycle, logger *slog.Logger) (*config.Config, error) {
					moduleOpts := opts
					if options.Logger == nil && logger != nil {
						moduleOpts = append(moduleOpts[:len(moduleOpts):len(moduleOpts)], WithLogger(logger))
					}

					cfg, err := New(namespace, moduleOpts...)
					if err != nil {
						return nil, err
					}

					if options.LoadOnStart || options.PersistOnStop {
						lifecycle.Append(newHook(cfg, options))
					}

					return cfg, nil
				},
				fx.ParamTags("", `optional:"true"`),
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, namespace)),
			),
		),
	)
}

func newHook(cfg *config.Config, options Options) fx.Hook {
	var hook fx.Hook

	if options.LoadOnStart {
		hook.OnStart = func(context.Context) error {
			return cfg.Load()
		}
	}

	if options.PersistOnStop {
		hook.OnStop = func(context.Context) error {
			return cfg.Persist()
		}
	}

	return hook
}
