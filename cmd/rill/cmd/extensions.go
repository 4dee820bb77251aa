package cmd

import (
	"fmt"
	"strings"

	"github.com/rcrsr/rill/extensions/chatcompletion"
	"github.com/rcrsr/rill/extensions/kvsqlite"
	"github.com/rcrsr/rill/extensions/mcp"
	"github.com/rcrsr/rill/pkg/rill"
)

// disposable is satisfied by the extension types that hold releasable
// resources, letting the CLI release them uniformly on shutdown;
// chatcompletion has no Dispose, and mountOne returns no disposer for it.
type disposable interface {
	Dispose() error
}

// mountExtensions wires every extension declared in cfg into engine
// under its configured namespace, returning the disposers the caller
// must run on shutdown.
func mountExtensions(engine *rill.Engine, cfg *Config) ([]disposable, error) {
	var disposers []disposable
	for _, ext := range cfg.Extensions {
		d, err := mountOne(engine, ext)
		if err != nil {
			for _, prior := range disposers {
				prior.Dispose()
			}
			return nil, err
		}
		if d != nil {
			disposers = append(disposers, d)
		}
		if logger != nil {
			logger.Info("mounted extension", "kind", ext.Kind, "namespace", ext.Namespace)
		}
	}
	return disposers, nil
}

func mountOne(engine *rill.Engine, ext ExtensionConfig) (disposable, error) {
	switch strings.ToLower(ext.Kind) {
	case "kvsqlite":
		path := ext.Options["path"]
		if path == "" {
			path = ":memory:"
		}
		x, err := kvsqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("mounting %s: %w", ext.Namespace, err)
		}
		if err := engine.MountExtension(ext.Namespace, x.Funcs(), x.Impls()); err != nil {
			x.Dispose()
			return nil, fmt.Errorf("mounting %s: %w", ext.Namespace, err)
		}
		return x, nil

	case "mcp":
		command := ext.Options["command"]
		if command == "" {
			return nil, fmt.Errorf("mounting %s: mcp extension requires options.command", ext.Namespace)
		}
		x, err := mcp.Start(command)
		if err != nil {
			return nil, fmt.Errorf("mounting %s: %w", ext.Namespace, err)
		}
		if err := engine.MountExtension(ext.Namespace, x.Funcs(), x.Impls()); err != nil {
			x.Dispose()
			return nil, fmt.Errorf("mounting %s: %w", ext.Namespace, err)
		}
		return x, nil

	case "chatcompletion":
		x := chatcompletion.New(ext.Options["base_url"], ext.Options["api_key"], ext.Options["model"])
		if err := engine.MountExtension(ext.Namespace, x.Funcs(), x.Impls()); err != nil {
			return nil, fmt.Errorf("mounting %s: %w", ext.Namespace, err)
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown extension kind %q", ext.Kind)
	}
}
