package reflect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagged struct {
	ID      int    `paprika:"id,required"`
	Name    string `paprika:"name"`
	Email   string
	Secret  string `paprika:"-"`
	Handler func()
	hidden  int
}

func TestStructFields(t *testing.T) {
	t.Parallel()

	fields, err := StructFields(reflect.TypeOf(tagged{}))
	require.NoError(t, err)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "name", "Email", "Handler"}, names)

	assert.True(t, fields[0].Required)
	assert.Equal(t, "ID", fields[0].GoName)
	assert.Equal(t, 0, fields[0].Index)
	assert.False(t, fields[1].Required)
	assert.Equal(t, reflect.TypeOf(""), fields[2].Type)
}

func TestStructFields_Empty(t *testing.T) {
	t.Parallel()

	fields, err := StructFields(reflect.TypeOf(struct{ x int }{}))
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestStructFields_Malformed(t *testing.T) {
	t.Parallel()

	type badOption struct {
		A int `paprika:",requird"`
	}
	type duplicate struct {
		A int `paprika:"x"`
		B int `paprika:"x"`
	}

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"not a struct", reflect.TypeOf(42)},
		{"pointer", reflect.TypeOf(&tagged{})},
		{"nil", nil},
		{"unknown option", reflect.TypeOf(badOption{})},
		{"duplicate name", reflect.TypeOf(duplicate{})},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := StructFields(tt.typ)
				require.ErrorIs(t, err, ErrInvalidDescriptor)
			},
		)
	}
}

func TestFieldsFromTable(t *testing.T) {
	t.Parallel()

	fields, err := FieldsFromTable(
		reflect.TypeOf(tagged{}), []FieldSpec{
			{Name: "Email"},
			{Name: "id"},
			{Name: "Email", Required: true},
			{Name: "Secret"},
		},
	)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, "Email", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "id", fields[1].Name)
	assert.False(t, fields[1].Required)
	assert.Equal(t, "Secret", fields[2].GoName)
}

func TestFieldsFromTable_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := FieldsFromTable(reflect.TypeOf(tagged{}), []FieldSpec{{Name: "hidden"}})
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestLookupField(t *testing.T) {
	t.Parallel()

	fields, err := StructFields(reflect.TypeOf(tagged{}))
	require.NoError(t, err)

	byTag, ok := LookupField(fields, "id")
	require.True(t, ok)
	byGo, ok := LookupField(fields, "ID")
	require.True(t, ok)
	assert.Equal(t, byTag, byGo)

	_, ok = LookupField(fields, "missing")
	assert.False(t, ok)
}
