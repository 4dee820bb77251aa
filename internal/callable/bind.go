package callable

import (
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// BindParams matches a call's argument tuple against params, following
// spec.md §4.3: a positional tuple zips by declared order, a named tuple
// matches by parameter name in any order, missing required parameters
// (no default) are an error, extra positional arguments beyond the
// declared count are an error, and an unrecognized named argument is an
// error. The returned map is ready for Scope.Define under each param's
// name, with each bound value already checked against its declared type.
func BindParams(functionName string, params []Param, args *value.Tuple, loc *rillerr.Location) (map[string]value.Value, error) {
	bound := make(map[string]value.Value, len(params))

	if args == nil || args.Named {
		seen := make(map[string]bool, len(params))
		if args != nil {
			for _, entry := range args.Entries {
				p, ok := findParam(params, entry.Name)
				if !ok {
					return nil, rillerr.UnknownTupleArgument(entry.Name, loc)
				}
				if err := checkAndBind(functionName, p, entry.Value, bound, loc); err != nil {
					return nil, err
				}
				seen[entry.Name] = true
			}
		}
		for _, p := range params {
			if seen[p.Name] {
				continue
			}
			if !p.HasDefault {
				return nil, rillerr.MissingRequiredArg(functionName, p.Name, loc)
			}
			bound[p.Name] = p.Default
		}
		return bound, nil
	}

	n := args.Len()
	if n > len(params) {
		return nil, rillerr.FunctionArityError(functionName, len(params), n, loc)
	}
	for i, p := range params {
		if i < n {
			v, _ := args.At(i)
			if err := checkAndBind(functionName, p, v, bound, loc); err != nil {
				return nil, err
			}
			continue
		}
		if !p.HasDefault {
			return nil, rillerr.MissingRequiredArg(functionName, p.Name, loc)
		}
		bound[p.Name] = p.Default
	}
	return bound, nil
}

func findParam(params []Param, name string) (Param, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func checkAndBind(functionName string, p Param, v value.Value, bound map[string]value.Value, loc *rillerr.Location) error {
	if !value.CheckType(v, p.Type) {
		return rillerr.ParamTypeMismatch(functionName, p.Name, string(p.Type), string(value.InferType(v)), loc)
	}
	bound[p.Name] = v
	return nil
}
