package introspect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  reflect.StructTag
		want Tag
	}{
		{``, Tag{}},
		{`json:"x"`, Tag{}},
		{`fudge:"id"`, Tag{Name: "id"}},
		{`fudge:"-"`, Tag{Transient: true}},
		{`fudge:"-,"`, Tag{Name: "-"}},
		{`fudge:",transient"`, Tag{Transient: true}},
		{`fudge:"id,readonly"`, Tag{Name: "id", ReadOnly: true}},
		{`fudge:",readonly, transient,unknown"`, Tag{ReadOnly: true, Transient: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTag(tt.tag, DefaultTag))
		})
	}
}

func TestThroughPointer(t *testing.T) {
	type inner struct{ A int }
	type outer struct {
		*inner
		inner2 inner
		B      int
	}

	rt := reflect.TypeFor[outer]()
	assert.True(t, throughPointer(rt, []int{0, 0}))
	assert.False(t, throughPointer(rt, []int{1, 0}))
	assert.False(t, throughPointer(rt, []int{2}))
}
