package primitive

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gotypesSrc = `package p

import "time"

type Status string
type Level int
type Code int32
type Blob []byte
type Point struct{ X, Y int }

var (
	vInt      int
	vByte     byte
	vRune     rune
	vFloat    float64
	vString   string
	vBool     bool
	vBytes    []byte
	vArray    [16]uint8
	vTime     time.Time
	vDuration time.Duration
	vStatus   Status
	vLevel    Level
	vCode     Code
	vBlob     Blob
	vPoint    Point
	vInts     []int
	vPtrBytes []*byte
	vComplex  complex128
	vMap      map[string]int
)
`

func checkGoTypes(t *testing.T) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", gotypesSrc, 0)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("p", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	return pkg
}

func TestFromGoType(t *testing.T) {
	pkg := checkGoTypes(t)

	tests := map[string]FieldType{
		"vInt":      FieldInt,
		"vByte":     FieldUint8,
		"vRune":     FieldInt32,
		"vFloat":    FieldFloat64,
		"vString":   FieldString,
		"vBool":     FieldBool,
		"vBytes":    FieldBytes,
		"vArray":    FieldBytes,
		"vTime":     FieldTime,
		"vDuration": FieldDuration,
		"vStatus":   FieldEnum,
		"vLevel":    FieldEnum,
		"vCode":     FieldInt32,
		"vBlob":     FieldBytes,
		"vPoint":    0,
		"vInts":     0,
		"vPtrBytes": 0,
		"vComplex":  0,
		"vMap":      0,
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			obj := pkg.Scope().Lookup(name)
			require.NotNil(t, obj)
			assert.Equal(t, want, FromGoType(obj.Type()))
		})
	}

	assert.Equal(t, FieldType(0), FromGoType(nil))
}

// Both classifiers must agree on the types they both see.
func TestFromGoType_MatchesReflect(t *testing.T) {
	pkg := checkGoTypes(t)

	assert.Equal(t, FromReflectType(reflect.TypeFor[[]byte]()), FromGoType(pkg.Scope().Lookup("vBytes").Type()))
	assert.Equal(t, FromReflectType(reflect.TypeFor[int64]()), FromGoType(types.Typ[types.Int64]))
}
