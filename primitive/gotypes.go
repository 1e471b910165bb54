package primitive

import (
	"go/types"
)

// FromGoType is FromReflectType for type-checked source: it classifies t
// by the same structural rules, without a loaded reflect.Type.
func FromGoType(t types.Type) FieldType {
	if t == nil {
		return 0
	}

	t = types.Unalias(t)

	named, isNamed := t.(*types.Named)
	if isNamed {
		if obj := named.Obj(); obj.Pkg() != nil && obj.Pkg().Path() == "time" {
			switch obj.Name() {
			case "Time":
				return FieldTime
			case "Duration":
				return FieldDuration
			}
		}
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return fromBasic(u.Kind(), isNamed)
	case *types.Slice:
		if isByte(u.Elem()) {
			return FieldBytes
		}
	case *types.Array:
		if isByte(u.Elem()) {
			return FieldBytes
		}
	}

	return 0
}

func fromBasic(kind types.BasicKind, named bool) FieldType {
	switch kind {
	case types.Int:
		if named {
			return FieldEnum
		}
		return FieldInt
	case types.String:
		if named {
			return FieldEnum
		}
		return FieldString
	case types.Bool:
		return FieldBool
	case types.Int8:
		return FieldInt8
	case types.Int16:
		return FieldInt16
	case types.Int32:
		return FieldInt32
	case types.Int64:
		return FieldInt64
	case types.Uint:
		return FieldUint
	case types.Uint8:
		return FieldUint8
	case types.Uint16:
		return FieldUint16
	case types.Uint32:
		return FieldUint32
	case types.Uint64:
		return FieldUint64
	case types.Float32:
		return FieldFloat32
	case types.Float64:
		return FieldFloat64
	}

	return 0
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).Underlying().(*types.Basic)
	return ok && b.Kind() == types.Uint8
}
