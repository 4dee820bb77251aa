package hostcall

import (
	"regexp"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
)

// namespacePattern is the allowed shape of an extension namespace prefix
// in `ns::name` (spec.md §6): starts with an alphanumeric, then any run
// of alphanumerics and hyphens.
var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

// MountExtension registers every function in funcs under the
// "namespace::name" prefix, validating namespace first.
func MountExtension(registry *runtime.FunctionRegistry, namespace string, funcs map[string][]runtime.ParamSpec, impls map[string]runtime.HostFunc) error {
	if !namespacePattern.MatchString(namespace) {
		return rillerr.InvalidNamespace(namespace)
	}
	for name, params := range funcs {
		fn, ok := impls[name]
		if !ok {
			continue
		}
		if err := registry.Register(namespace+"::"+name, params, fn); err != nil {
			return err
		}
	}
	return nil
}

// EmitExtensionEvent forwards a structured log event to the configured
// OnLogEvent callback, a no-op when none is installed (spec.md §4.8,
// §6).
func EmitExtensionEvent(ctx *runtime.Context, event, subsystem, timestamp string, extra map[string]any) {
	cb := ctx.Callbacks()
	if cb.OnLogEvent == nil {
		return
	}
	cb.OnLogEvent(runtime.LogEvent{Event: event, Subsystem: subsystem, Timestamp: timestamp, Extra: extra})
}
