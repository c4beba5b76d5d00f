package ir

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	default:
		return "<invalid>"
	}
}

// Scalar reports whether values of this type carry no children.
func (t Type) Scalar() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
