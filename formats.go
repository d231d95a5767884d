package schemac

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatFunc validates one instance value against a named format keyword.
// A FormatFunc must return true for any value that is not the type the
// format applies to (format is a string-only assertion; non-string
// instances always pass), matching the draft 2020-12 format-assertion
// vocabulary's "ignore instances of the wrong type" rule.
type FormatFunc func(any) bool

// builtinFormats is the format table this package ships with, keyed the way
// lower.go/format.go look formats up: by the bare keyword value ("date-time",
// "email", ...), never by a Go identifier. RegisterFormat lets a Compiler
// add to or shadow any entry here without touching this table itself.
//
// The individual checks below port the RFC-grounded parsing logic from
// santhosh-tekuri/jsonschema's format validators (credited in doc.go),
// rebuilt as unexported FormatFunc values keyed directly in this map rather
// than re-exported top-level Is* functions, since this package has no public
// format-validation API of its own — only RegisterFormat.
var builtinFormats = map[string]FormatFunc{
	"date-time":             isDateTime,
	"date":                  isDate,
	"time":                  isTime,
	"duration":              isDuration,
	"period":                isPeriod,
	"hostname":              isHostname,
	"email":                 isEmail,
	"ip-address":            isIPv4,
	"ipv4":                  isIPv4,
	"ipv6":                  isIPv6,
	"uri":                   isURI,
	"iri":                   isURI,
	"uri-reference":         isURIReference,
	"uriref":                isURIReference,
	"iri-reference":         isURIReference,
	"uri-template":          isURITemplate,
	"json-pointer":          isJSONPointer,
	"relative-json-pointer": isRelativeJSONPointer,
	"uuid":                  isUUID,
	"regex":                 isRegexFormat,
	"unknown":               func(any) bool { return true },
}

// isDateTime reports whether s is a valid date-time per RFC 3339 §5.6.
func isDateTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) < 20 { // yyyy-mm-ddThh:mm:ssZ
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return isDate(s[:10]) && isTime(s[11:])
}

// isDate reports whether s is a valid full-date per RFC 3339 §5.6.
func isDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// isTime reports whether s is a valid full-time per RFC 3339 §5.6. The
// stdlib time package rejects leap seconds, so this is a hand-rolled
// parse rather than a call into time.Parse.
func isTime(v any) bool {
	str, ok := v.(string)
	if !ok {
		return true
	}

	// hh:mm:ss
	// 01234567
	if len(str) < 9 || str[2] != ':' || str[5] != ':' {
		return false
	}
	isInRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return 0, false
		}
		if n < min || n > max {
			return 0, false
		}
		return n, true
	}
	var h, m, s int
	var ok2 bool
	if h, ok2 = isInRange(str[0:2], 0, 23); !ok2 {
		return false
	}
	if m, ok2 = isInRange(str[3:5], 0, 59); !ok2 {
		return false
	}
	if s, ok2 = isInRange(str[6:8], 0, 60); !ok2 {
		return false
	}
	str = str[8:]

	if str[0] == '.' {
		str = str[1:]
		var numDigits int
		for str != "" {
			if str[0] < '0' || str[0] > '9' {
				break
			}
			numDigits++
			str = str[1:]
		}
		if numDigits == 0 {
			return false
		}
	}

	if len(str) == 0 {
		return false
	}

	if str[0] == 'z' || str[0] == 'Z' {
		if len(str) != 1 {
			return false
		}
	} else {
		// time-numoffset: +hh:mm
		if len(str) != 6 || str[3] != ':' {
			return false
		}
		var sign int
		switch str[0] {
		case '+':
			sign = -1
		case '-':
			sign = +1
		default:
			return false
		}
		var zh, zm int
		ok3 := false
		if zh, ok3 = isInRange(str[1:3], 0, 23); !ok3 {
			return false
		}
		if zm, ok3 = isInRange(str[4:6], 0, 59); !ok3 {
			return false
		}
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		h, m = hm/60, hm%60
	}

	if s == 60 { // leap second, only legal at 23:59
		if h != 23 || m != 59 {
			return false
		}
	}

	return true
}

// isDuration reports whether s is a valid ISO 8601 duration, per the ABNF
// in RFC 3339 appendix A.
func isDuration(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) == 0 || s[0] != 'P' {
		return false
	}
	s = s[1:]
	parseUnits := func() (units string, ok bool) {
		for len(s) > 0 && s[0] != 'T' {
			digits := false
			for len(s) != 0 {
				if s[0] < '0' || s[0] > '9' {
					break
				}
				digits = true
				s = s[1:]
			}
			if !digits || len(s) == 0 {
				return units, false
			}
			units += s[:1]
			s = s[1:]
		}
		return units, true
	}
	units, ok := parseUnits()
	if !ok {
		return false
	}
	if units == "W" {
		return len(s) == 0
	}
	if len(units) > 0 {
		if !strings.Contains("YMD", units) {
			return false
		}
		if len(s) == 0 {
			return true
		}
	}
	if len(s) == 0 || s[0] != 'T' {
		return false
	}
	s = s[1:]
	units, ok = parseUnits()
	return ok && len(s) == 0 && len(units) > 0 && strings.Contains("HMS", units)
}

// isPeriod reports whether s is a valid ISO 8601 time interval
// ("<date-time>/<date-time>", "<date-time>/<duration>", or
// "<duration>/<date-time>"), per RFC 3339 appendix A.
func isPeriod(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	slash := strings.IndexByte(s, '/')
	if slash == -1 {
		return false
	}
	start, end := s[:slash], s[slash+1:]
	if isDateTime(start) {
		return isDateTime(end) || isDuration(end)
	}
	return isDuration(start) && isDateTime(end)
}

// isHostname reports whether s is a valid Internet hostname per RFC 1034
// §3.1 and RFC 1123 §2.1.
func isHostname(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	s = strings.TrimSuffix(s, ".")
	if len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if labelLen := len(label); labelLen < 1 || labelLen > 63 {
			return false
		}
		if label[0] == '-' {
			return false
		}
		if label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || (c == '-')
			if !valid {
				return false
			}
		}
	}
	return true
}

// isEmail reports whether s is a valid Internet email address per RFC 5322
// §3.4.1, falling back to net/mail for the final grammar check once the
// length/domain-shape constraints the RFC layers on top have passed.
func isEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local := s[0:at]
	domain := s[at+1:]

	if len(local) > 64 {
		return false
	}

	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return isIPv6(strings.TrimPrefix(ip, "IPv6:"))
		}
		return isIPv4(ip)
	}

	if !isHostname(domain) {
		return false
	}

	_, err := mail.ParseAddress(s)
	return err == nil
}

// isIPv4 reports whether s is a dotted-quad IPv4 address per RFC 2673 §3.2.
func isIPv4(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		n, err := strconv.Atoi(group)
		if err != nil {
			return false
		}
		if n < 0 || n > 255 {
			return false
		}
		if n != 0 && group[0] == '0' {
			return false // leading zeroes would be read as octal
		}
	}
	return true
}

// isIPv6 reports whether s is a valid IPv6 address per RFC 2373 §2.2.
func isIPv6(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

// isURI reports whether s is an absolute URI per RFC 3986.
func isURI(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	u, err := parseFormatURL(s)
	return err == nil && u.IsAbs()
}

// parseFormatURL wraps url.Parse with the IPv6-literal-host check the
// stdlib parser skips (net/url accepts a bracketless IPv6 host in some
// positions; the uri/uri-reference/uri-template formats must not).
func parseFormatURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 {
		if strings.IndexByte(u.Host, '[') == -1 || strings.IndexByte(u.Host, ']') == -1 {
			return nil, errIPv6AddressNotEnclosed
		}
		if !isIPv6(hostname) {
			return nil, errInvalidIPv6Address
		}
	}
	return u, nil
}

// isURIReference reports whether s is a valid URI Reference (a URI or a
// relative-reference) per RFC 3986.
func isURIReference(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := parseFormatURL(s)
	return err == nil && !strings.Contains(s, `\`)
}

// isURITemplate reports whether s is a URI Template per RFC 6570. This
// checks only that "{"/"}" expressions are well-formed and non-nested; it
// does not validate expression operators or variable lists.
func isURITemplate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	u, err := parseFormatURL(s)
	if err != nil {
		return false
	}
	for _, item := range strings.Split(u.RawPath, "/") {
		depth := 0
		for _, ch := range item {
			switch ch {
			case '{':
				depth++
				if depth != 1 {
					return false
				}
			case '}':
				depth--
				if depth != 0 {
					return false
				}
			}
		}
		if depth != 0 {
			return false
		}
	}
	return true
}

// isJSONPointer reports whether s is a valid JSON Pointer (RFC 6901),
// excluding the URI-fragment form ("#/a/b").
func isJSONPointer(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if s != "" && !strings.HasPrefix(s, "/") {
		return false
	}
	for _, item := range strings.Split(s, "/") {
		for i := 0; i < len(item); i++ {
			if item[i] == '~' {
				if i == len(item)-1 {
					return false
				}
				switch item[i+1] {
				case '0', '1':
				default:
					return false
				}
			}
		}
	}
	return true
}

// isRelativeJSONPointer reports whether s is a valid Relative JSON Pointer
// (draft-handrews-relative-json-pointer-01 §3).
func isRelativeJSONPointer(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if s == "" {
		return false
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case s[0] >= '0' && s[0] <= '9':
		for s != "" && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}
	return s == "#" || isJSONPointer(s)
}

// isUUID reports whether s is a valid UUID per RFC 4122 §3.
func isUUID(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			hex := (s[0] >= '0' && s[0] <= '9') || (s[0] >= 'a' && s[0] <= 'f') || (s[0] >= 'A' && s[0] <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, numDigits := range groups {
		if !parseHex(numDigits) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}

// isRegexFormat reports whether s compiles as an RE2 pattern. This is the
// same engine pattern/patternProperties compile against (regexp.Compile in
// lower.go), so "regex" as a format keyword and "pattern" as a constraint
// keyword accept exactly the same syntax.
func isRegexFormat(v any) bool {
	pattern, ok := v.(string)
	if !ok {
		return true
	}
	_, err := regexp.Compile(pattern)
	return err == nil
}
