package mailsyntax

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// // // // // // // // // //

// IdnConverter turns a UTF-8 domain into its ASCII-compatible (A-label) form.
type IdnConverter interface {
	ToASCII(domain string) (string, error)
}

// IdnConverterFunc adapts a plain function to IdnConverter.
type IdnConverterFunc func(domain string) (string, error)

func (f IdnConverterFunc) ToASCII(domain string) (string, error) { return f(domain) }

type idnaConverterObj struct {
	profile *idna.Profile
}

func (obj *idnaConverterObj) ToASCII(domain string) (string, error) {
	return obj.profile.ToASCII(norm.NFC.String(domain))
}

func newIdnaConverter() *idnaConverterObj {
	return &idnaConverterObj{profile: idna.Lookup}
}

//

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func (c *ConfigObj) convertIDN(domain string) (ascii string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ascii, err = "", fmt.Errorf("%w: %v", ErrPanic, r)
		}
		if err != nil {
			c.Logger.Debug("idn conversion failed", zap.String("domain", domain), zap.Error(err))
		}
		c.observeIDN(err)
	}()

	ascii, err = c.IDN.ToASCII(domain)
	if err == nil && !isASCII(ascii) {
		err = fmt.Errorf("%w: %q", ErrIdnNotASCII, ascii)
	}
	return ascii, err
}

// ToASCII converts a domain to its A-label form with the configured converter.
// ASCII input is returned unchanged.
func ToASCII(domain string) (string, error) {
	if isASCII(domain) {
		return domain, nil
	}
	return conf.convertIDN(domain)
}

// ToUnicode converts a domain to its U-label form in NFC. Labels that are not valid
// A-labels are returned as given.
func ToUnicode(domain string) string {
	u, err := idna.Display.ToUnicode(domain)
	if err != nil {
		return norm.NFC.String(domain)
	}
	return norm.NFC.String(u)
}
