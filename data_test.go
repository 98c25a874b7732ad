package paprika

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClass struct {
	Field1 *int   `paprika:"field1,required"`
	Field2 string `paprika:"field2"`
}

type person struct {
	Age  int    `paprika:"age"`
	Name string `paprika:"name"`
}

type record struct {
	ID       int
	Label    string
	Tags     map[string]int
	Payload  []byte
	Callback func()
	internal int
}

func intPtr(i int) *int { return &i }

func TestData_Fields(t *testing.T) {
	t.Parallel()

	typ, err := Data[testClass]()
	require.NoError(t, err)

	fields := typ.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "field1", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "field2", fields[1].Name)
	assert.False(t, fields[1].Required)
	assert.Equal(t, "testClass", typ.Name())

	fields[0].Name = "mutated"
	assert.Equal(t, "field1", typ.Fields()[0].Name)
}

func TestData_InvalidDescriptors(t *testing.T) {
	t.Parallel()

	type badTag struct {
		A int `paprika:"a,nonnull"`
	}

	_, err := Data[int]()
	require.Error(t, err)
	assert.True(t, IsInvalidDescriptor(err))

	_, err = Data[badTag]()
	assert.True(t, IsInvalidDescriptor(err))

	_, err = Data[person](WithFields(Field("Missing")))
	assert.True(t, IsInvalidDescriptor(err))

	assert.Panics(t, func() { MustData[*person]() })
}

func TestNew_RequiredField(t *testing.T) {
	t.Parallel()

	typ := MustData[testClass]()

	tests := []struct {
		name  string
		args  []any
		named map[string]any
	}{
		{name: "untyped nil positional", args: []any{nil, "test"}},
		{name: "typed nil positional", args: []any{(*int)(nil), "test"}},
		{name: "nil named", named: map[string]any{"field1": nil, "field2": "test"}},
		{name: "named overrides valid positional", args: []any{intPtr(1)}, named: map[string]any{"field1": nil}},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := typ.NewKw(tt.named, tt.args...)
				require.Error(t, err)
				assert.True(t, IsRequiredFieldViolation(err))

				var e *Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "field1", e.Field)
				assert.Equal(t, "testClass", e.Type)
			},
		)
	}

	v, err := typ.New(intPtr(42), "test")
	require.NoError(t, err)
	assert.Equal(t, 42, *v.Field1)
	assert.Equal(t, "test", v.Field2)
}

func TestNew_OptionalNilBindsZero(t *testing.T) {
	t.Parallel()

	typ := MustData[person]()
	p, err := typ.New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, person{}, *p)
}

func TestNew_BindingOrder(t *testing.T) {
	t.Parallel()

	typ := MustData[person]()

	p, err := typ.NewKw(map[string]any{"name": "Named", "unknown": 1, "Age": int8(30)}, 19, "Positional", "extra")
	require.NoError(t, err)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, "Named", p.Name)
}

func TestNew_FieldTypeMismatch(t *testing.T) {
	t.Parallel()

	typ := MustData[person]()
	_, err := typ.New("nineteen")
	require.Error(t, err)
	assert.True(t, IsFieldType(err))
	assert.Panics(t, func() { typ.MustNew("nineteen") })
}

func TestNew_ExplicitTable(t *testing.T) {
	t.Parallel()

	typ := MustData[person](WithFields(Field("Name"), Required("Age")))

	p, err := typ.New("Rayan", 19)
	require.NoError(t, err)
	assert.Equal(t, person{Age: 19, Name: "Rayan"}, *p)
}

func TestInit(t *testing.T) {
	t.Parallel()

	typ := MustData[person]()
	p := &person{Age: 1, Name: "keep"}
	require.NoError(t, typ.Init(p, nil, 2))
	assert.Equal(t, person{Age: 2, Name: "keep"}, *p)
	require.Error(t, typ.Init(nil, nil, 2))
}

func TestEqualAndHash(t *testing.T) {
	t.Parallel()

	typ := MustData[record]()
	mk := func(id int, label string) *record {
		return &record{
			ID:      id,
			Label:   label,
			Tags:    map[string]int{"a": 1, "b": 2},
			Payload: []byte("blob"),
		}
	}

	a, b := mk(1, "x"), mk(1, "x")
	assert.True(t, typ.Equal(a, b))
	assert.Equal(t, typ.Hash(a), typ.Hash(b))
	assert.Empty(t, typ.Diff(a, b))

	a.internal, b.internal = 1, 2
	assert.True(t, typ.Equal(a, b), "unexported fields are not descriptors")

	c := mk(1, "y")
	assert.False(t, typ.Equal(a, c))
	assert.NotEqual(t, typ.Hash(a), typ.Hash(c))
	assert.Contains(t, typ.Diff(a, c), "Label")

	d := mk(1, "x")
	d.Tags["a"] = 9
	assert.False(t, typ.Equal(a, d))

	assert.True(t, typ.Equal(nil, nil))
	assert.False(t, typ.Equal(a, nil))
	assert.Zero(t, typ.Hash(nil))
}

func TestEqual_EmptyValues(t *testing.T) {
	t.Parallel()

	type sparse struct {
		Tags  []string
		Meta  map[string]int
		Count *int
		Inner []*person
	}
	typ := MustData[sparse]()

	empty := &sparse{Tags: []string{}, Meta: map[string]int{}, Count: new(int), Inner: []*person{{}}}
	bare := &sparse{Inner: []*person{nil}}
	assert.True(t, typ.Equal(empty, bare), typ.Diff(empty, bare))
	assert.Equal(t, typ.Hash(empty), typ.Hash(bare))
	assert.Empty(t, typ.Diff(empty, bare))

	bare.Count = intPtr(1)
	assert.False(t, typ.Equal(empty, bare))
	assert.NotEqual(t, typ.Hash(empty), typ.Hash(bare))

	bare.Count = nil
	bare.Tags = []string{""}
	assert.False(t, typ.Equal(empty, bare))
}

func TestEqualAny(t *testing.T) {
	t.Parallel()

	typ := MustData[person]()
	a := &person{Age: 1}

	assert.True(t, typ.EqualAny(a, &person{Age: 1}))
	assert.False(t, typ.EqualAny(a, person{Age: 1}))
	assert.False(t, typ.EqualAny(a, &testClass{}))
}

func TestHash_SameNamesDifferentValues(t *testing.T) {
	t.Parallel()

	typ := MustData[person]()
	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		seen[typ.Hash(&person{Age: i, Name: "n"})] = true
	}
	assert.Len(t, seen, 100)
}

func TestString(t *testing.T) {
	t.Parallel()

	typ := MustData[testClass]()
	v := typ.MustNew(intPtr(42), "test")
	v.Field1 = nil

	assert.Equal(t, "testClass@[field1=<nil>, field2=test]", typ.String(v))

	people := MustData[person]()
	p := people.MustNew(19, "Rayan")
	assert.Equal(t, "person@[age=19, name=Rayan]", people.String(p))
	assert.Equal(t, people.String(p), people.String(p))
	assert.Equal(t, "person@nil", people.String(nil))

	records := MustData[record]()
	out := records.String(&record{ID: 1, Label: "l", Callback: func() {}})
	assert.Equal(t, "record@[ID=1, Label=l, Payload=[], Tags=map[]]", out)

	type cached struct {
		Key   string `paprika:"key"`
		Cache string `paprika:"-"`
	}
	caches := MustData[cached]()
	assert.Equal(t, "cached@[Cache=warm, key=k]", caches.String(&cached{Key: "k", Cache: "warm"}))
	assert.Len(t, caches.Fields(), 1)
}
