package reflect

import (
	"context"
	"reflect"
	"testing"
)

type testInterface interface {
	DoSomething()
}

type testStruct struct {
	Name string
}

func (t *testStruct) DoSomething() {}

func TestTypeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typeFunc func() string
		want     string
	}{
		{name: "int", typeFunc: TypeKey[int], want: "int"},
		{name: "string", typeFunc: TypeKey[string], want: "string"},
		{
			name:     "pointer to struct",
			typeFunc: TypeKey[*testStruct],
			want:     "*github.com/paprika-go/paprika/internal/reflect.testStruct",
		},
		{name: "slice", typeFunc: TypeKey[[]string], want: "[]string"},
		{name: "array", typeFunc: TypeKey[[12]byte], want: "[12]uint8"},
		{name: "map", typeFunc: TypeKey[map[string]int], want: "map[string]int"},
		{name: "context.Context", typeFunc: TypeKey[context.Context], want: "context.Context"},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				if got := tt.typeFunc(); got != tt.want {
					t.Errorf("TypeKey() = %q, want %q", got, tt.want)
				}
			},
		)
	}
}

func TestTypeKeyUnique(t *testing.T) {
	t.Parallel()

	keys := map[string]bool{}
	testCases := []func() string{
		TypeKey[int],
		TypeKey[int32],
		TypeKey[int64],
		TypeKey[string],
		TypeKey[*string],
		TypeKey[[]string],
		TypeKey[[2]string],
		TypeKey[[3]string],
		TypeKey[map[string]int],
		TypeKey[testStruct],
		TypeKey[*testStruct],
		TypeKey[struct{ A int }],
	}

	for _, tc := range testCases {
		key := tc()
		if keys[key] {
			t.Errorf("duplicate key: %s", key)
		}
		keys[key] = true
	}
}

func TestTypeKeyOf(t *testing.T) {
	t.Parallel()

	if got := TypeKeyOf(nil); got != "<nil>" {
		t.Errorf("TypeKeyOf(nil) = %q", got)
	}
	if TypeKeyOf(reflect.TypeOf(testStruct{})) != TypeKey[testStruct]() {
		t.Error("TypeKeyOf and TypeKey disagree")
	}
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	var nilPtr *testStruct
	var nilSlice []string
	var nilMap map[string]int
	var nilInterface testInterface
	var nilFunc func()

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"nil pointer", nilPtr, true},
		{"nil slice", nilSlice, true},
		{"nil map", nilMap, true},
		{"nil interface", nilInterface, true},
		{"nil func", nilFunc, true},
		{"zero int", 0, false},
		{"empty string", "", false},
		{"non-nil struct", testStruct{}, false},
		{"non-nil pointer", &testStruct{}, false},
		{"empty slice", []string{}, false},
		{"non-nil map", map[string]int{"a": 1}, false},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				if got := IsNil(tt.v); got != tt.want {
					t.Errorf("IsNil() = %v, want %v", got, tt.want)
				}
			},
		)
	}
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	if got := TypeName[testStruct](); got != "testStruct" {
		t.Errorf("TypeName[testStruct]() = %q", got)
	}
	if got := TypeName[*testStruct](); got != "testStruct" {
		t.Errorf("TypeName[*testStruct]() = %q", got)
	}
	if got := TypeName[[]int](); got != "[]int" {
		t.Errorf("TypeName[[]int]() = %q", got)
	}
}

func BenchmarkTypeKey(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = TypeKey[*testStruct]()
	}
}
