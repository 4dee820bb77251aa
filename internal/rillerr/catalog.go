package rillerr

// Message format constants for the wording spec.md fixes literally. Kept
// as a catalog, in go-dws's internal/interp/errors style, so the same
// phrasing is never retyped at each call site.
const (
	msgCannotAssign          = "cannot assign %s to $%s:%s"
	msgCannotShadow          = "cannot shadow outer variable"
	msgLockedAs              = "locked as %s"
	msgArithmeticRequires    = "Arithmetic requires number, got %s"
	msgDivByZero             = "division by zero"
	msgCannotCompare         = "Cannot compare %s with %s"
	msgExpectedGot           = "expected %s, got %s"
	msgBooleanExpected       = "boolean expected"
	msgMissingArgument       = "missing argument for parameter '%s'"
	msgFunctionArity         = "Function '%s' expects %d arguments, got %d"
	msgParamTypeMismatch     = "Type mismatch in %s: parameter '%s' expects %s, got %s"
	msgMissingRequiredArg    = "Missing required argument '%s' for function '%s'"
	msgInvalidDefaultValue   = "Invalid defaultValue for parameter '%s': expected %s, got %s"
	msgUndefinedVariable     = "undefined variable: $%s"
	msgUndefinedFunction     = "undefined function: %s"
	msgUndefinedMethod       = "undefined method: %s"
	msgCollectionOperandType = "Collection operators require list, string, dict, or iterator, got %s"
	msgInvalidNamespace      = "invalid extension namespace: %q"
	msgMixedTuple            = "cannot construct a tuple with both positional and named entries"
	msgUnknownTupleArg       = "unknown argument name %q"
	msgDestructureSize       = "destructure pattern expects %d elements, got %d"
	msgDestructureMissingKey = "destructure missing key %q"
	msgSliceStepZero         = "slice step must not be zero"
	msgSpreadType            = "spread requires a list or dict, got %s"
)

// UndefinedVariableErr builds the error for reading an unbound $name.
func UndefinedVariableErr(name string, loc *Location) *Error {
	return Newf(UndefinedVariable, loc, map[string]any{"variableName": name}, msgUndefinedVariable, name)
}

// UndefinedFunctionErr builds the error for calling an unregistered host
// function.
func UndefinedFunctionErr(name string, loc *Location) *Error {
	return Newf(UndefinedFunction, loc, map[string]any{"functionName": name}, msgUndefinedFunction, name)
}

// UndefinedMethodErr builds the error for a method dispatch with no
// resolution.
func UndefinedMethodErr(name string, loc *Location) *Error {
	return Newf(UndefinedMethod, loc, map[string]any{"methodName": name}, msgUndefinedMethod, name)
}

// AssignmentTypeMismatch builds the TYPE_ERROR for setVariableTyped step 2
// (explicit type annotation conflicts with the value's inferred type).
func AssignmentTypeMismatch(name, valueType, explicitType string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{
		"variableName": name, "expectedType": explicitType, "actualType": valueType,
	}, msgCannotAssign, valueType, name, explicitType)
}

// CannotShadow builds the TYPE_ERROR for step 3 of setVariableTyped.
func CannotShadow(name string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"variableName": name}, msgCannotShadow)
}

// LockedTypeMismatch builds the TYPE_ERROR for step 4 of setVariableTyped.
func LockedTypeMismatch(name, lockedType, valueType string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{
		"variableName": name, "expectedType": lockedType, "actualType": valueType,
	}, msgLockedAs, lockedType)
}

// ArithmeticTypeError builds the TYPE_ERROR for a non-number arithmetic
// operand.
func ArithmeticTypeError(gotType string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"actualType": gotType}, msgArithmeticRequires, gotType)
}

// DivisionByZero builds the TYPE_ERROR for `/` or `%` by zero.
func DivisionByZero(loc *Location) *Error {
	return New(TypeError, msgDivByZero, loc, nil)
}

// ComparisonTypeError builds the TYPE_ERROR for comparing incompatible
// operand types.
func ComparisonTypeError(leftType, rightType string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"leftType": leftType, "rightType": rightType}, msgCannotCompare, leftType, rightType)
}

// TypeAssertionFailed builds the TYPE_ERROR for a failed `:type` assertion.
func TypeAssertionFailed(expected, got string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"expectedType": expected, "actualType": got}, msgExpectedGot, expected, got)
}

// BooleanExpected builds the TYPE_ERROR for a non-bool conditional/while
// condition.
func BooleanExpected(loc *Location) *Error {
	return New(TypeError, msgBooleanExpected, loc, nil)
}

// MissingClosureArgument builds the TYPE_ERROR for a script-callable
// positional parameter with no value and no default.
func MissingClosureArgument(param string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"paramName": param}, msgMissingArgument, param)
}

// FunctionArityError builds the TYPE_ERROR for a host call with too many
// arguments.
func FunctionArityError(fn string, expected, got int, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{
		"functionName": fn, "expectedCount": expected, "actualCount": got,
	}, msgFunctionArity, fn, expected, got)
}

// ParamTypeMismatch builds the TYPE_ERROR for a host-function argument of
// the wrong type.
func ParamTypeMismatch(fn, param, expected, got string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{
		"functionName": fn, "paramName": param, "expectedType": expected, "actualType": got,
	}, msgParamTypeMismatch, fn, param, expected, got)
}

// MissingRequiredArg builds the TYPE_ERROR for a host-function argument
// with no default and none supplied.
func MissingRequiredArg(fn, param string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"functionName": fn, "paramName": param}, msgMissingRequiredArg, param, fn)
}

// InvalidDefaultValue builds the registration-time TYPE_ERROR for a
// default value that doesn't match its declared type.
func InvalidDefaultValue(param, expected, got string) *Error {
	return Newf(TypeError, nil, map[string]any{"paramName": param, "expectedType": expected, "actualType": got}, msgInvalidDefaultValue, param, expected, got)
}

// CollectionOperandTypeError builds the TYPE_ERROR for a non-iterable
// collection-operator input.
func CollectionOperandTypeError(got string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"actualType": got}, msgCollectionOperandType, got)
}

// InvalidNamespace builds the TYPE_ERROR for an extension namespace
// failing the `^[A-Za-z0-9][A-Za-z0-9-]*$` pattern.
func InvalidNamespace(ns string) *Error {
	return Newf(TypeError, nil, map[string]any{"namespace": ns}, msgInvalidNamespace, ns)
}

// MixedTuple builds the TYPE_ERROR for a tuple literal mixing positional
// and named entries.
func MixedTuple(loc *Location) *Error {
	return New(TypeError, msgMixedTuple, loc, nil)
}

// UnknownTupleArgument builds the TYPE_ERROR for a tuple-call argument
// naming a parameter the callable doesn't declare.
func UnknownTupleArgument(name string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"argumentName": name}, msgUnknownTupleArg, name)
}

// DestructureSizeMismatch builds the TYPE_ERROR for a positional
// destructure whose pattern length doesn't match the input list length.
func DestructureSizeMismatch(expected, got int, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"expected": expected, "actual": got}, msgDestructureSize, expected, got)
}

// DestructureMissingKey builds the TYPE_ERROR for a key-form destructure
// whose input dict lacks a pattern-named key.
func DestructureMissingKey(key string, availableKeys []string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"key": key, "availableKeys": availableKeys}, msgDestructureMissingKey, key)
}

// SliceStepZero builds the TYPE_ERROR for a slice with a zero step.
func SliceStepZero(loc *Location) *Error {
	return New(TypeError, msgSliceStepZero, loc, nil)
}

// SpreadTypeError builds the TYPE_ERROR for spreading a non-list,
// non-dict value.
func SpreadTypeError(got string, loc *Location) *Error {
	return Newf(TypeError, loc, map[string]any{"actualType": got}, msgSpreadType, got)
}

// LimitExceededErr builds the LIMIT_EXCEEDED error for an iteration or
// iterator-expansion overrun.
func LimitExceededErr(limit, iterations int, loc *Location) *Error {
	return Newf(LimitExceeded, loc, map[string]any{"limit": limit, "iterations": iterations}, "iteration limit %d exceeded", limit)
}

// TimeoutErr builds the TIMEOUT error for a host call exceeding its
// per-call timeout.
func TimeoutErr(fn string, timeoutMs int64, loc *Location) *Error {
	return Newf(Timeout, loc, map[string]any{"functionName": fn, "timeoutMs": timeoutMs}, "call to %s timed out after %dms", fn, timeoutMs)
}

// AbortErr builds the ABORT error for an externally cancelled context.
func AbortErr(loc *Location) *Error {
	return New(Abort, "execution aborted", loc, nil)
}

// AutoExceptionErr builds the AUTO_EXCEPTION error for a top-level string
// value matching a configured pattern.
func AutoExceptionErr(pattern, match string, loc *Location) *Error {
	return Newf(AutoException, loc, map[string]any{"pattern": pattern, "match": match}, "value matched auto-exception pattern %q", pattern)
}
