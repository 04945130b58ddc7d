package mailsyntax

import "errors"

// // // // // // // // // //

// ErrorKind is the reason an address was rejected. Every rejection carries exactly one kind,
// the one of the first rule that failed.
type ErrorKind uint8

const (
	ErrEmpty ErrorKind = iota
	ErrTooShort
	ErrTooLong
	ErrNoAtSymbol
	ErrMultipleAtSymbols
	ErrInvalidUserPart
	ErrInvalidDomainPart
	ErrInvalidIpLiteral
	ErrIdnProcessingFailed

	kindCount
)

var kindText = [kindCount]string{
	ErrEmpty:               "Email is empty",
	ErrTooShort:            "Email is too short",
	ErrTooLong:             "Email is too long",
	ErrNoAtSymbol:          "Email missing @ symbol",
	ErrMultipleAtSymbols:   "Email has multiple @ symbols",
	ErrInvalidUserPart:     "Invalid user part",
	ErrInvalidDomainPart:   "Invalid domain part",
	ErrInvalidIpLiteral:    "Invalid IP literal",
	ErrIdnProcessingFailed: "IDN processing failed",
}

var kindName = [kindCount]string{
	ErrEmpty:               "empty",
	ErrTooShort:            "too_short",
	ErrTooLong:             "too_long",
	ErrNoAtSymbol:          "no_at_symbol",
	ErrMultipleAtSymbols:   "multiple_at_symbols",
	ErrInvalidUserPart:     "invalid_user_part",
	ErrInvalidDomainPart:   "invalid_domain_part",
	ErrInvalidIpLiteral:    "invalid_ip_literal",
	ErrIdnProcessingFailed: "idn_processing_failed",
}

func (k ErrorKind) Error() string {
	if k >= kindCount {
		return "unknown error"
	}
	return kindText[k]
}

// Name is the short snake_case identifier, used as a metric label and in CLI output.
func (k ErrorKind) Name() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindName[k]
}

// KindOf extracts the ErrorKind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var k ErrorKind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}

//

var (
	ErrPanic       = errors.New("catch panic")
	ErrIdnNotASCII = errors.New("idn converter returned non-ASCII output")
)
