package paprika

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paprika-go/paprika/internal/reflect"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "required field",
			err:  errRequiredField("Person", "age"),
			want: `[REQUIRED_FIELD_VIOLATION] type="Person" field="age": field age is marked as required and cannot be nil`,
		},
		{
			name: "with cause",
			err:  errSerialization("Person", "load failed", errors.New("no such file")),
			want: `[SERIALIZATION_FAILURE] type="Person": load failed: no such file`,
		},
		{
			name: "bare",
			err:  newError(ErrCodeUnknown, "something", nil),
			want: "[UNKNOWN] something",
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				assert.Equal(t, tt.want, tt.err.Error())
			},
		)
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", errRequiredField("A", "x"))

	assert.ErrorIs(t, err, &Error{Code: ErrCodeRequiredField})
	assert.NotErrorIs(t, err, &Error{Code: ErrCodeSerialization})
	assert.True(t, IsRequiredFieldViolation(err))
	assert.False(t, IsSerializationFailure(err))
	assert.False(t, IsRequiredFieldViolation(errors.New("plain")))
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := errFieldType("A", "x", cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsFieldType(err))
}

func TestErrAccess_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cause error
		check func(error) bool
	}{
		{fmt.Errorf("%w: int", reflect.ErrNotIndexable), IsNotIndexable},
		{fmt.Errorf("%w: int", reflect.ErrNotFieldAccessible), IsNotFieldAccessible},
		{fmt.Errorf("%w: string", reflect.ErrFieldType), IsFieldType},
		{fmt.Errorf("%w: out of range", reflect.ErrAccess), IsAccessFailed},
	}

	for _, tt := range tests {
		err := errAccess("p", tt.cause)
		assert.True(t, tt.check(err), err.Error())
		assert.ErrorIs(t, err, tt.cause)
	}
}

func TestErrorCode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INVALID_DESCRIPTOR", ErrCodeInvalidDescriptor.String())
	assert.Equal(t, "UNKNOWN(99)", ErrorCode(99).String())
}
