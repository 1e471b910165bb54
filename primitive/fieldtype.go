package primitive

import (
	"reflect"
	"strings"
	"time"
)

//go:generate go tool stringer -type=FieldType -output=fieldtype_string.go

// FieldType is an atomic wire field type of a Fudge message.
type FieldType int

const (
	_ FieldType = iota // skip zero value, use it as a default (invalid) value for FieldType

	FieldBool
	FieldInt
	FieldInt8
	FieldInt16
	FieldInt32
	FieldInt64
	FieldUint
	FieldUint8
	FieldUint16
	FieldUint32
	FieldUint64
	FieldFloat32
	FieldFloat64
	FieldString
	FieldBytes
	FieldTime
	FieldDuration
	FieldEnum // named integer or string type, written as its underlying value

	// FieldTotal is a constant that represents the total number of field types defined
	FieldTotal = int(iota)
)

var fieldNames = map[FieldType]string{
	FieldBool:     "bool",
	FieldInt:      "int",
	FieldInt8:     "int8",
	FieldInt16:    "int16",
	FieldInt32:    "int32",
	FieldInt64:    "int64",
	FieldUint:     "uint",
	FieldUint8:    "uint8",
	FieldUint16:   "uint16",
	FieldUint32:   "uint32",
	FieldUint64:   "uint64",
	FieldFloat32:  "float32",
	FieldFloat64:  "float64",
	FieldString:   "string",
	FieldBytes:    "bytes",
	FieldTime:     "time",
	FieldDuration: "duration",
	FieldEnum:     "enum",
}

// Valid reports whether f is one of the declared field types.
func (f FieldType) Valid() bool {
	return f > 0 && int(f) < FieldTotal
}

// Name returns the short name used in manifests, e.g. "int32".
func (f FieldType) Name() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}

	return f.String()
}

// ParseFieldType returns the field type with the given short name.
// The bool result is false when name is not a primitive.
func ParseFieldType(name string) (FieldType, bool) {
	name = strings.TrimSpace(name)
	switch name {
	case "byte":
		return FieldUint8, true
	case "rune":
		return FieldInt32, true
	}

	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}

	return 0, false
}

// FromReflectType classifies rtype structurally. It returns zero when rtype
// is not an atomic wire type.
func FromReflectType(rtype reflect.Type) FieldType {
	if rtype == nil {
		return 0
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeOf(int(0)):
		return FieldInt
	case reflect.TypeOf(int8(0)):
		return FieldInt8
	case reflect.TypeOf(int16(0)):
		return FieldInt16
	case reflect.TypeOf(int32(0)):
		return FieldInt32
	case reflect.TypeOf(int64(0)):
		return FieldInt64
	case reflect.TypeOf(uint(0)):
		return FieldUint
	case reflect.TypeOf(uint8(0)):
		return FieldUint8
	case reflect.TypeOf(uint16(0)):
		return FieldUint16
	case reflect.TypeOf(uint32(0)):
		return FieldUint32
	case reflect.TypeOf(uint64(0)):
		return FieldUint64
	case reflect.TypeOf(float32(0)):
		return FieldFloat32
	case reflect.TypeOf(float64(0)):
		return FieldFloat64
	case reflect.TypeOf(false):
		return FieldBool
	case reflect.TypeOf(""):
		return FieldString
	case reflect.TypeOf([]byte(nil)):
		return FieldBytes
	case reflect.TypeOf(time.Time{}):
		return FieldTime
	case reflect.TypeOf(time.Duration(0)):
		return FieldDuration
	}

	// named types over a basic kind
	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.String:
		return FieldEnum
	case reflect.Bool:
		return FieldBool
	case reflect.Int8:
		return FieldInt8
	case reflect.Int16:
		return FieldInt16
	case reflect.Int32:
		return FieldInt32
	case reflect.Int64:
		return FieldInt64
	case reflect.Uint:
		return FieldUint
	case reflect.Uint8:
		return FieldUint8
	case reflect.Uint16:
		return FieldUint16
	case reflect.Uint32:
		return FieldUint32
	case reflect.Uint64:
		return FieldUint64
	case reflect.Float32:
		return FieldFloat32
	case reflect.Float64:
		return FieldFloat64
	case reflect.Slice, reflect.Array:
		// byte sequences are opaque blobs on the wire, never lists
		if rtype.Elem().Kind() == reflect.Uint8 {
			return FieldBytes
		}

		return 0
	}
}
