package mailsyntax

import (
	"net/netip"

	"go.uber.org/zap"
)

// // // // // // // // // //

// IPParser reports whether a bracket-stripped address literal parses as IPv4 or IPv6.
type IPParser interface {
	ValidIP(literal string) bool
}

// IPParserFunc adapts a plain function to IPParser.
type IPParserFunc func(literal string) bool

func (f IPParserFunc) ValidIP(literal string) bool { return f(literal) }

type netipParserObj struct{}

// ValidIP accepts IPv4, IPv6 and IPv6 with an embedded IPv4 tail. Zones never get here,
// '%' does not pass the literal pre-filter.
func (netipParserObj) ValidIP(literal string) bool {
	_, err := netip.ParseAddr(literal)
	return err == nil
}

//

func hasLiteralBrackets(s []byte) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

func (c *ConfigObj) isValidIPLiteral(s []byte) bool {
	if len(s) < 3 || len(s) > maxIPLiteralLength {
		return false
	}
	if !hasLiteralBrackets(s) {
		return false
	}

	ip := s[1 : len(s)-1]
	for _, b := range ip {
		if !ipLiteralTable[b] {
			return false
		}
	}

	return c.parseIP(string(ip))
}

func (c *ConfigObj) parseIP(literal string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Debug("ip parser panicked",
				zap.String("literal", literal), zap.Any("panic", r), zap.Error(ErrPanic))
			ok = false
		}
	}()
	return c.IP.ValidIP(literal)
}
