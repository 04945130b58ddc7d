package mailsyntax

import (
	"fmt"
	"reflect"
)

// // // // // // // // // //

// ValidateOptional treats a missing value as valid: there is nothing to check.
func ValidateOptional(email *string) bool {
	if email == nil {
		return true
	}
	return ValidateString(*email)
}

// ValidateStringer treats a nil Stringer, or a nil pointer behind one, as a missing value.
func ValidateStringer(email fmt.Stringer) bool {
	if email == nil {
		return true
	}
	if v := reflect.ValueOf(email); v.Kind() == reflect.Pointer && v.IsNil() {
		return true
	}
	return ValidateString(email.String())
}

// ValidateAny accepts any string or byte slice type, including named ones.
func ValidateAny[T ~string | ~[]byte](email T) bool {
	return Validate([]byte(email))
}
