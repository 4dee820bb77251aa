package value

// TypeName is the user-facing type name used in type assertions,
// annotations, and error messages (spec.md §4.4, §4.1).
type TypeName string

const (
	TypeString  TypeName = "string"
	TypeNumber  TypeName = "number"
	TypeBool    TypeName = "bool"
	TypeList    TypeName = "list"
	TypeDict    TypeName = "dict"
	TypeTuple   TypeName = "tuple"
	TypeVector  TypeName = "vector"
	TypeClosure TypeName = "closure"
	TypeNull    TypeName = "null"
	// TypeAny matches any value; used only in host-function parameter
	// declarations (spec.md §6), never returned by InferType.
	TypeAny TypeName = "any"
)

// InferType maps a value to its user-facing type name.
func InferType(v Value) TypeName {
	if v == nil {
		return TypeNull
	}
	switch v.Kind() {
	case KindNull:
		return TypeNull
	case KindBool:
		return TypeBool
	case KindNumber:
		return TypeNumber
	case KindString:
		return TypeString
	case KindList:
		return TypeList
	case KindDict:
		return TypeDict
	case KindTuple:
		return TypeTuple
	case KindVector:
		return TypeVector
	case KindClosure:
		return TypeClosure
	default:
		return TypeNull
	}
}

// CheckType reports whether v's inferred type matches name. TypeAny
// always matches, for use against host-function parameter declarations.
func CheckType(v Value, name TypeName) bool {
	if name == TypeAny {
		return true
	}
	return InferType(v) == name
}
