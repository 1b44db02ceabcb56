package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/RustWorks/webadmin/pkg/schema"
)

// ruleChecks maps built-in rule codes to their element checks. Checks only
// see non-empty, already transformed elements; emptiness is the required
// rule's concern.
var ruleChecks = map[schema.Rule]schema.CheckFunc{
	schema.RuleURL:      checkURL,
	schema.RuleEmail:    checkEmail,
	schema.RulePort:     checkPort,
	schema.RuleIPOrMask: checkIPOrMask,
	schema.RuleDomain:   checkDomain,
}

func checkURL(value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not a valid URL", value)
	}
	return nil
}

func checkEmail(value string) error {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return fmt.Errorf("%q is not a valid email address", value)
	}
	return nil
}

func checkPort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%q is not a valid port number", value)
	}
	return nil
}

func checkIPOrMask(value string) error {
	if _, err := netip.ParseAddr(value); err == nil {
		return nil
	}
	if _, err := netip.ParsePrefix(value); err == nil {
		return nil
	}
	return fmt.Errorf("%q is not a valid IP address or mask", value)
}

func checkDomain(value string) error {
	host := strings.TrimSuffix(value, ".")
	if host == "" || len(host) > 253 {
		return errBadDomain(value)
	}
	labels := strings.Split(host, ".")
	for i, label := range labels {
		if i == 0 && label == "*" && len(labels) > 1 {
			// wildcard certificates
			continue
		}
		if !validDomainLabel(label) {
			return errBadDomain(value)
		}
	}
	return nil
}

func errBadDomain(value string) error {
	return fmt.Errorf("%q is not a valid domain name", value)
}

func validDomainLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

// runValidators applies a field's validator chain to the transformed
// elements, stopping at the first failure.
func runValidators(f schema.Field, elements []string) *FieldError {
	for _, v := range f.Validators {
		if v.Rule == schema.RuleRequired {
			if allEmpty(elements) {
				return &FieldError{Field: f.ID, Rule: schema.RuleRequired, Message: "a value is required"}
			}
			continue
		}
		check := v.Check
		if check == nil {
			check = ruleChecks[v.Rule]
		}
		if check == nil {
			continue
		}
		for _, el := range elements {
			if el == "" {
				continue
			}
			if err := check(el); err != nil {
				return &FieldError{Field: f.ID, Rule: v.Rule, Message: err.Error()}
			}
		}
	}
	return nil
}

var errNoValue = errors.New("no value")

func allEmpty(elements []string) bool {
	for _, el := range elements {
		if el != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(elements []string) (string, error) {
	for _, el := range elements {
		if el != "" {
			return el, nil
		}
	}
	return "", errNoValue
}
