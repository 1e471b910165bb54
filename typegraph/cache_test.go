package typegraph

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fudge-schema/naming"
	"fudge-schema/primitive"
)

func personSource() *fakeSource {
	src := newFakeSource()
	src.object("Person",
		member("FirstName", "string"),
		member("UserId", "int64"),
		member("Friends", "[]Person"),
	)

	return src
}

func TestCache_ResolveIsIdempotent(t *testing.T) {
	cache := New(personSource())

	first, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
	require.NoError(t, err)

	second, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
	require.NoError(t, err)

	assert.Same(t, first, second)

	// pointer form shares the canonical node
	third, err := cache.Resolve(fakeType("*Person"), naming.CamelCase)
	require.NoError(t, err)
	assert.Same(t, first, third)
}

func TestCache_ResolveIsPolicySensitive(t *testing.T) {
	cache := New(personSource())

	camel, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
	require.NoError(t, err)

	upper, err := cache.Resolve(fakeType("Person"), naming.AllUpperCase)
	require.NoError(t, err)

	assert.NotSame(t, camel, upper)
	assert.Equal(t, "firstName", camel.Members()[0].SerializedName)
	assert.Equal(t, "FIRSTNAME", upper.Members()[0].SerializedName)

	// primitives are keyed by convention too, but carry no names
	assert.Equal(t, primitive.FieldString, camel.Members()[0].Node().FieldType())
	assert.Equal(t, 8, cache.Len())
}

func TestCache_SelfReferenceThroughList(t *testing.T) {
	cache := New(personSource())

	person, err := cache.Resolve(fakeType("Person"), naming.Identity)
	require.NoError(t, err)

	assert.Equal(t, KindObject, person.Kind())
	assert.True(t, person.Complete())

	friends, ok := person.Member("Friends")
	require.True(t, ok)
	assert.Equal(t, KindList, friends.Node().Kind())
	assert.Same(t, person, friends.Node().Elem())

	// the node reached through the cycle is the same, completed node
	assert.Len(t, friends.Node().Elem().Members(), 3)
}

func TestCache_MutualRecursion(t *testing.T) {
	src := newFakeSource()
	src.object("Department", member("Name", "string"), member("Head", "*Employee"))
	src.object("Employee", member("Name", "string"), member("Department", "Department"))

	cache := New(src)

	dept, err := cache.Resolve(fakeType("Department"), naming.Identity)
	require.NoError(t, err)

	head, ok := dept.Member("Head")
	require.True(t, ok)

	employee := head.Node()
	assert.Equal(t, KindObject, employee.Kind())

	back, ok := employee.Member("Department")
	require.True(t, ok)
	assert.Same(t, dept, back.Node())

	// resolving the other root afterwards reuses the published node
	direct, err := cache.Resolve(fakeType("Employee"), naming.Identity)
	require.NoError(t, err)
	assert.Same(t, employee, direct)
	assert.Equal(t, 1, src.describeCount("Employee"))
}

func TestCache_ConventionTable(t *testing.T) {
	tests := []struct {
		convention naming.Convention
		expected   string
	}{
		{naming.Identity, "FirstName"},
		{naming.AllLowerCase, "firstname"},
		{naming.AllUpperCase, "FIRSTNAME"},
		{naming.CamelCase, "firstName"},
		{naming.PascalCase, "FirstName"},
	}

	cache := New(personSource())

	for _, tt := range tests {
		t.Run(tt.convention.String(), func(t *testing.T) {
			n, err := cache.Resolve(fakeType("Person"), tt.convention)
			require.NoError(t, err)

			m, ok := n.Member("FirstName")
			require.True(t, ok)
			assert.Equal(t, tt.expected, m.SerializedName)
			assert.Equal(t, tt.convention, n.Convention())
		})
	}
}

func TestCache_NamingPrecedence(t *testing.T) {
	src := newFakeSource()
	d := src.object("Account",
		MemberSpec{Name: "UserId", Type: fakeType("int64"), SerializedName: "uid"},
		MemberSpec{Name: "DisplayName", Type: fakeType("string")},
	)
	d.Convention = conventionPtr(naming.AllLowerCase)

	cache := New(src)

	n, err := cache.Resolve(fakeType("Account"), naming.PascalCase)
	require.NoError(t, err)

	assert.Equal(t, naming.AllLowerCase, n.Convention())
	assert.Equal(t, "uid", n.Members()[0].SerializedName)
	assert.Equal(t, "displayname", n.Members()[1].SerializedName)
}

func TestCache_TypeOverrideIsInherited(t *testing.T) {
	src := newFakeSource()
	d := src.object("Envelope", member("Payload", "Payload"))
	d.Convention = conventionPtr(naming.AllUpperCase)
	src.object("Payload", member("MessageId", "string"))

	cache := New(src)

	n, err := cache.Resolve(fakeType("Envelope"), naming.CamelCase)
	require.NoError(t, err)

	payload := n.Members()[0].Node()
	assert.Equal(t, naming.AllUpperCase, payload.Convention())
	assert.Equal(t, "MESSAGEID", payload.Members()[0].SerializedName)
}

func TestCache_ListOverrideReachesElement(t *testing.T) {
	src := newFakeSource()
	src.list("Batch", "Item")
	src.conventions["Batch"] = naming.AllUpperCase
	src.object("Item", member("FirstName", "string"))

	cache := New(src)

	n, err := cache.Resolve(fakeType("Batch"), naming.CamelCase)
	require.NoError(t, err)
	require.Equal(t, KindList, n.Kind())
	assert.Equal(t, naming.AllUpperCase, n.Convention())

	item := n.Elem()
	assert.Equal(t, naming.AllUpperCase, item.Convention())
	assert.Equal(t, "FIRSTNAME", item.Members()[0].SerializedName)

	// the same element reached without the list keeps the caller convention
	plain, err := cache.Resolve(fakeType("Item"), naming.CamelCase)
	require.NoError(t, err)
	assert.Equal(t, "firstName", plain.Members()[0].SerializedName)
}

func TestCache_UnknownListConvention(t *testing.T) {
	src := newFakeSource()
	src.list("Batch", "string")
	src.conventions["Batch"] = naming.Convention(42)

	cache := New(src)

	_, err := cache.Resolve(fakeType("Batch"), naming.Identity)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_BuildLogCarriesDepth(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	cache := New(personSource(), WithLogger(zap.New(core)))

	_, err := cache.Resolve(fakeType("Person"), naming.Identity)
	require.NoError(t, err)

	depths := make(map[string]int64)
	for _, e := range logs.FilterMessage("type node built").All() {
		ctx := e.ContextMap()
		depths[ctx["path"].(string)] = ctx["depth"].(int64)
	}

	assert.Equal(t, int64(0), depths["Person"])
	assert.Equal(t, int64(1), depths["Person.FirstName"])
	assert.Equal(t, int64(1), depths["Person.Friends"])
}

func TestCache_TransientMembersAreDropped(t *testing.T) {
	src := newFakeSource()
	src.object("Login",
		member("User", "string"),
		MemberSpec{Name: "Password", Type: fakeType("string"), Transient: true},
		MemberSpec{Name: "Session", Type: fakeType("Unresolvable"), Transient: true},
	)

	cache := New(src)

	for _, c := range naming.Conventions() {
		n, err := cache.Resolve(fakeType("Login"), c)
		require.NoError(t, err)
		require.Len(t, n.Members(), 1)

		_, ok := n.Member("Password")
		assert.False(t, ok)
	}

	// transient member types are never described
	assert.Equal(t, 0, src.describeCount("Unresolvable"))
}

func TestCache_PrimitiveWinsOverListShape(t *testing.T) {
	src := newFakeSource()
	src.primitives["Blob"] = primitive.FieldBytes
	src.list("Blob", "int32")

	cache := New(src)

	n, err := cache.Resolve(fakeType("Blob"), naming.Identity)
	require.NoError(t, err)

	assert.Equal(t, KindPrimitive, n.Kind())
	assert.Equal(t, primitive.FieldBytes, n.FieldType())
	assert.Nil(t, n.Elem())
	assert.Empty(t, n.Members())
}

func TestCache_ListCapability(t *testing.T) {
	src := newFakeSource()
	src.list("Tags", "string")
	src.object("Post", member("Tags", "Tags"))

	cache := New(src)

	n, err := cache.Resolve(fakeType("Post"), naming.Identity)
	require.NoError(t, err)

	tags := n.Members()[0].Node()
	assert.Equal(t, KindList, tags.Kind())
	assert.Equal(t, primitive.FieldString, tags.Elem().FieldType())
}

func TestCache_EmptyObject(t *testing.T) {
	src := newFakeSource()
	src.object("Marker")

	cache := New(src)

	n, err := cache.Resolve(fakeType("Marker"), naming.Identity)
	require.NoError(t, err)
	assert.Equal(t, KindObject, n.Kind())
	assert.Empty(t, n.Members())
}

func TestCache_UnknownConvention(t *testing.T) {
	src := personSource()
	cache := New(src)

	_, err := cache.Resolve(fakeType("Person"), naming.Convention(99))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, naming.ErrUnknownConvention)
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 0, src.describeCount("Person"))
}

func TestCache_UnknownTypeLevelConvention(t *testing.T) {
	src := newFakeSource()
	d := src.object("Odd", member("Name", "string"))
	d.Convention = conventionPtr(naming.Convention(12))

	cache := New(src)

	_, err := cache.Resolve(fakeType("Odd"), naming.Identity)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_UnsupportedShape(t *testing.T) {
	src := newFakeSource()
	src.object("Order", member("Lines", "[]Line"))
	src.object("Line", member("Attributes", "map[string]string"))

	cache := New(src)

	_, err := cache.Resolve(fakeType("Order"), naming.Identity)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedShape)

	var re *ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Order.Lines[].Attributes", re.Path)
	assert.Equal(t, fakeType("map[string]string"), re.Type)
	assert.Contains(t, err.Error(), "map[string]string")
	assert.Equal(t, 0, cache.Len())
}

func TestCache_FailedBuildCanBeRetried(t *testing.T) {
	src := newFakeSource()
	src.object("Order", member("Customer", "Customer"), member("Note", "Note"))
	src.object("Customer", member("Name", "string"))
	src.object("Note", member("Text", "string"))
	src.fail("Note", errBroken)

	cache := New(src)

	_, err := cache.Resolve(fakeType("Order"), naming.Identity)
	require.ErrorIs(t, err, errBroken)

	// Customer was fully built during the failed call but is not published
	assert.Equal(t, 0, cache.Len())

	src.fail("Note", nil)

	order, err := cache.Resolve(fakeType("Order"), naming.Identity)
	require.NoError(t, err)
	assert.Len(t, order.Members(), 2)
	assert.Equal(t, 2, src.describeCount("Note"))
}

func TestCache_NilType(t *testing.T) {
	cache := New(newFakeSource())

	_, err := cache.Resolve(nil, naming.Identity)
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestCache_ConcurrentResolveSharesNode(t *testing.T) {
	src := personSource()
	cache := New(src)

	const workers = 16

	nodes := make([]*Node, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
			assert.NoError(t, err)
			nodes[i] = n
		}(i)
	}
	wg.Wait()

	for _, n := range nodes {
		assert.Same(t, nodes[0], n)
	}
	assert.Equal(t, 1, src.describeCount("Person"))
}

func TestCache_Warm(t *testing.T) {
	src := personSource()
	src.object("Team", member("Members", "[]Person"))

	cache := New(src, WithParallelism(2))

	err := cache.Warm(context.Background(), naming.CamelCase, fakeType("Person"), fakeType("Team"))
	require.NoError(t, err)

	team, err := cache.Resolve(fakeType("Team"), naming.CamelCase)
	require.NoError(t, err)

	person, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
	require.NoError(t, err)

	assert.Same(t, person, team.Members()[0].Node().Elem())
}

func TestCache_WarmReportsFailure(t *testing.T) {
	src := personSource()
	src.object("Broken", member("Field", "map[string]int32"))

	cache := New(src)

	err := cache.Warm(context.Background(), naming.Identity, fakeType("Person"), fakeType("Broken"))
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestCache_WarmCancelled(t *testing.T) {
	cache := New(personSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cache.Warm(ctx, naming.Identity, fakeType("Person"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_Entries(t *testing.T) {
	cache := New(personSource())

	_, err := cache.Resolve(fakeType("Person"), naming.AllLowerCase)
	require.NoError(t, err)
	_, err = cache.Resolve(fakeType("Person"), naming.Identity)
	require.NoError(t, err)

	entries := cache.Entries()
	require.Len(t, entries, cache.Len())

	var names []string
	for _, e := range entries {
		names = append(names, e.Type.String()+"/"+e.Convention.String())
		assert.True(t, e.Node.Complete())
	}

	assert.Equal(t, []string{
		"Person/identity", "Person/lower",
		"[]Person/identity", "[]Person/lower",
		"int64/identity", "int64/lower",
		"string/identity", "string/lower",
	}, names)
}

func TestCache_DuplicateSerializedNamesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	src := newFakeSource()
	src.object("Clash",
		member("Id", "string"),
		MemberSpec{Name: "Identifier", Type: fakeType("string"), SerializedName: "id"},
	)

	cache := New(src, WithLogger(zap.New(core)))

	n, err := cache.Resolve(fakeType("Clash"), naming.CamelCase)
	require.NoError(t, err)
	assert.Len(t, n.Members(), 2)

	entries := logs.FilterMessage("duplicate serialized member name").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "id", entries[0].ContextMap()["serialized"])
}

func TestCache_SerializedNameOverride(t *testing.T) {
	cache := New(personSource())

	n, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
	require.NoError(t, err)

	m, ok := n.Member("UserId")
	require.True(t, ok)
	m.SerializedName = "id"

	again, err := cache.Resolve(fakeType("Person"), naming.CamelCase)
	require.NoError(t, err)

	m, _ = again.Member("UserId")
	assert.Equal(t, "id", m.SerializedName)
}
