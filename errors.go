package paprika

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paprika-go/paprika/internal/codec"
	"github.com/paprika-go/paprika/internal/reflect"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeRequiredField
	ErrCodeSerialization
	ErrCodeInvalidDescriptor
	ErrCodeFieldType
	ErrCodeNotIndexable
	ErrCodeNotFieldAccessible
	ErrCodeAccessFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:            "UNKNOWN",
	ErrCodeRequiredField:      "REQUIRED_FIELD_VIOLATION",
	ErrCodeSerialization:      "SERIALIZATION_FAILURE",
	ErrCodeInvalidDescriptor:  "INVALID_DESCRIPTOR",
	ErrCodeFieldType:          "FIELD_TYPE_MISMATCH",
	ErrCodeNotIndexable:       "NOT_INDEXABLE",
	ErrCodeNotFieldAccessible: "NOT_FIELD_ACCESSIBLE",
	ErrCodeAccessFailed:       "ACCESS_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

type Error struct {
	Code    ErrorCode
	Message string
	Type    string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Type != "" {
		b.WriteString(fmt.Sprintf(" type=%q", e.Type))
	}
	if e.Field != "" {
		b.WriteString(fmt.Sprintf(" field=%q", e.Field))
	}
	if e.Type != "" || e.Field != "" {
		b.WriteString(":")
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithType(typeName string) *Error {
	e.Type = typeName
	return e
}

func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errRequiredField(typeName, field string) *Error {
	return newError(
		ErrCodeRequiredField,
		fmt.Sprintf("field %s is marked as required and cannot be nil", field),
		nil,
	).WithType(typeName).WithField(field)
}

func errFieldType(typeName, field string, cause error) *Error {
	return newError(
		ErrCodeFieldType,
		fmt.Sprintf("cannot bind value to field %s", field),
		cause,
	).WithType(typeName).WithField(field)
}

func errInvalidDescriptor(typeName string, cause error) *Error {
	return newError(ErrCodeInvalidDescriptor, "malformed field descriptors", cause).WithType(typeName)
}

func errSerialization(typeName, message string, cause error) *Error {
	return newError(ErrCodeSerialization, message, cause).WithType(typeName)
}

// errAccess classifies a forwarding failure raised by a proxy delegate.
func errAccess(name string, cause error) *Error {
	code := ErrCodeAccessFailed
	switch {
	case errors.Is(cause, reflect.ErrNotIndexable):
		code = ErrCodeNotIndexable
	case errors.Is(cause, reflect.ErrNotFieldAccessible):
		code = ErrCodeNotFieldAccessible
	case errors.Is(cause, reflect.ErrFieldType):
		code = ErrCodeFieldType
	}
	return newError(code, fmt.Sprintf("access through proxy %s failed", name), cause)
}

func IsRequiredFieldViolation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRequiredField
}

func IsSerializationFailure(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeSerialization
}

func IsInvalidDescriptor(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidDescriptor
}

func IsFieldType(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeFieldType
}

func IsNotIndexable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotIndexable
}

func IsNotFieldAccessible(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFieldAccessible
}

func IsAccessFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAccessFailed
}

// Sentinels re-exported for errors.Is checks against persistence failures.
var (
	ErrForeignFormat       = codec.ErrForeignFormat
	ErrUnsupportedProtocol = codec.ErrUnsupportedProtocol
	ErrTypeMismatch        = codec.ErrTypeMismatch
	ErrCorrupt             = codec.ErrCorrupt
)
