package verifier

import (
	"strings"
	"verifier/pkg/serrors"
)

// ErrSyntax marks addresses rejected by the grammar check.
var ErrSyntax = serrors.NewKind("SYNTAX_INVALID") //nolint: gochecknoglobals

// localSpecials are the ASCII characters allowed in an unquoted local part
// besides letters and digits.
const localSpecials = "!#$%&'*+/=?^_`{|}~-."

// CheckSyntax reports whether the address conforms to the local@domain
// grammar. It is pure: no I/O, no DNS, never panics. A nil return means the
// address passed; otherwise the error message names the check that failed.
func CheckSyntax(email string) error {
	if email == "" {
		return serrors.With(ErrSyntax, "empty address")
	}
	if len(email) > 254 {
		return serrors.With(ErrSyntax, "address exceeds 254 characters")
	}

	local, domainPart, hasAt := splitAddress(email)
	if !hasAt {
		return serrors.With(ErrSyntax, "address must have the form local@domain")
	}
	if local == "" {
		return serrors.With(ErrSyntax, "missing local part")
	}
	if len(local) > 64 {
		return serrors.With(ErrSyntax, "local part exceeds 64 characters")
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return serrors.With(ErrSyntax, "local part cannot start or end with a dot")
	}
	if strings.Contains(local, "..") {
		return serrors.With(ErrSyntax, "local part cannot contain consecutive dots")
	}
	for i := 0; i < len(local); i++ {
		ch := local[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' {
			continue
		}
		if ch > 127 {
			return serrors.With(ErrSyntax, "local part contains a non-ASCII character")
		}
		if !strings.ContainsRune(localSpecials, rune(ch)) {
			return serrors.With(ErrSyntax, "local part contains invalid character %q", ch)
		}
	}

	return checkDomainSyntax(domainPart)
}

func checkDomainSyntax(domainPart string) error {
	if domainPart == "" {
		return serrors.With(ErrSyntax, "missing domain")
	}
	if len(domainPart) > 255 {
		return serrors.With(ErrSyntax, "domain exceeds 255 characters")
	}
	if !strings.Contains(domainPart, ".") {
		return serrors.With(ErrSyntax, "domain must contain at least one dot")
	}

	labels := strings.Split(domainPart, ".")
	for _, label := range labels {
		if label == "" {
			return serrors.With(ErrSyntax, "domain contains an empty label")
		}
		if len(label) > 63 {
			return serrors.With(ErrSyntax, "domain label exceeds 63 characters")
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return serrors.With(ErrSyntax, "domain label cannot start or end with a hyphen")
		}
		for i := 0; i < len(label); i++ {
			ch := label[i]
			if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '-' {
				continue
			}
			if ch > 127 {
				return serrors.With(ErrSyntax, "domain contains a non-ASCII character")
			}
			return serrors.With(ErrSyntax, "domain contains invalid character %q", ch)
		}
	}

	// An all-digit top-level domain never routes mail.
	tld := labels[len(labels)-1]
	if strings.IndexFunc(tld, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
		return serrors.With(ErrSyntax, "top-level domain cannot be all digits")
	}

	return nil
}

// splitAddress splits on the first "@". hasAt is false when the separator is
// absent entirely.
func splitAddress(email string) (local string, domainPart string, hasAt bool) {
	idx := strings.Index(email, "@")
	if idx < 0 {
		return email, "", false
	}

	return email[:idx], email[idx+1:], true
}
