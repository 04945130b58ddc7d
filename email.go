package mailsyntax

import (
	"bytes"
)

// // // // // // // // // //

type EmailObj struct {
	login, domain string
	ascii         string
	literal       bool
}

type checkObj struct {
	at      int
	literal bool
	ascii   string
	err     error
}

//

var (
	conf     *ConfigObj
	verdicts *verdictCacheObj
)

func init() {
	InitDefault()
}

// Init replaces the package configuration. It is not safe to call concurrently with validation.
func Init(configuration *ConfigObj) {
	copyConf := *configuration
	copyConf.fillDefaults()
	conf = &copyConf

	verdicts = nil
	if !copyConf.NoCache {
		verdicts = newVerdictCache(&copyConf.Cache)
	}
}

func InitDefault() {
	Init(DefaultConfig)
}

// //

func (c *ConfigObj) check(s []byte) (res checkObj) {
	switch {
	case len(s) == 0:
		res.err = ErrEmpty
		return
	case len(s) < MinEmailLength:
		res.err = ErrTooShort
		return
	case len(s) > MaxEmailLength:
		res.err = ErrTooLong
		return
	}

	res.at = findSeparator(s)
	if res.at < 0 {
		res.err = ErrNoAtSymbol
		return
	}
	login, domain := s[:res.at], s[res.at+1:]

	if !isValidLogin(login) {
		if bytes.IndexByte(login, '@') >= 0 {
			res.err = ErrMultipleAtSymbols
		} else {
			res.err = ErrInvalidUserPart
		}
		return
	}

	switch validateDomain(domain) {
	case Valid:
		return

	case Invalid:
		if c.isValidIPLiteral(domain) {
			res.literal = true
			return
		}
		switch {
		case hasLiteralBrackets(domain):
			res.err = ErrInvalidIpLiteral
		case bytes.IndexByte(domain, '@') >= 0:
			res.err = ErrMultipleAtSymbols
		default:
			res.err = ErrInvalidDomainPart
		}

	case RequiresIdnCheck:
		ascii, err := c.convertIDN(string(domain))
		if err != nil {
			res.err = ErrIdnProcessingFailed
			return
		}
		// one conversion only, a second RequiresIdnCheck is a reject
		if validateDomain([]byte(ascii)) != Valid {
			res.err = ErrInvalidDomainPart
			return
		}
		res.ascii = ascii
	}
	return
}

func doCheck(s []byte) error {
	var err error
	if verdicts == nil {
		err = conf.check(s).err
	} else {
		err = verdicts.get(s, func() error { return conf.check(s).err })
	}
	conf.observe(err)
	return err
}

// //

// Check validates an address and returns nil or the ErrorKind of the first rule it breaks.
func Check(email []byte) error { return doCheck(email) }

func CheckString(email string) error { return doCheck([]byte(email)) }

// Validate reports whether email is a syntactically valid address.
func Validate(email []byte) bool { return doCheck(email) == nil }

func ValidateString(email string) bool { return doCheck([]byte(email)) == nil }

// Parse validates an address and splits it. The verdict cache is not consulted.
func Parse(email string) (*EmailObj, error) {
	res := conf.check([]byte(email))
	conf.observe(res.err)
	if res.err != nil {
		return nil, res.err
	}

	return &EmailObj{
		login:   email[:res.at],
		domain:  email[res.at+1:],
		ascii:   res.ascii,
		literal: res.literal,
	}, nil
}
