package mailsyntax

import "strings"

// // // // // // // // // //

func (obj *EmailObj) Login() string {
	return obj.login
}

// Domain is the domain part exactly as it appeared in the input.
func (obj *EmailObj) Domain() string {
	return obj.domain
}

// DomainASCII is the A-label form of the domain. For ASCII domains and IP literals it
// equals Domain.
func (obj *EmailObj) DomainASCII() string {
	if obj.ascii == "" {
		return obj.domain
	}
	return obj.ascii
}

func (obj *EmailObj) DomainUnicode() string {
	if obj.literal {
		return obj.domain
	}
	return ToUnicode(obj.domain)
}

func (obj *EmailObj) IsIPLiteral() bool {
	return obj.literal
}

func (obj *EmailObj) Mail() string {
	return obj.login + "@" + obj.domain
}

// MailASCII is the address with the domain in A-label form, suitable for SMTP without SMTPUTF8.
func (obj *EmailObj) MailASCII() string {
	return obj.login + "@" + obj.DomainASCII()
}

func (obj *EmailObj) String() string {
	var b strings.Builder
	b.WriteString("[ '")
	b.WriteString(obj.login)
	b.WriteString("@")
	b.WriteString(obj.domain)
	b.WriteString("'")

	if obj.ascii != "" {
		b.WriteString(", '")
		b.WriteString(obj.ascii)
		b.WriteString("'")
	}
	if obj.literal {
		b.WriteString(", literal")
	}
	b.WriteString(" ]")
	return b.String()
}
