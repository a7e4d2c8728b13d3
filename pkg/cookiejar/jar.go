package cookiejar

import (
	"net/textproto"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Pair is a single cookie as replayed to the origin. Attributes such as
// Path, Domain or Expires are not kept.
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// String renders the pair in Cookie header form.
func (p Pair) String() string {
	return p.Name + "=" + p.Value
}

// Jar is the ordered list of pairs captured for one client identity.
// Order is capture order and names may repeat.
type Jar []Pair

// String serializes the jar as a single Cookie header value: "a=1;b=2".
func (j Jar) String() string {
	var b strings.Builder
	for i, p := range j {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// Clone returns a copy that shares no memory with j.
func (j Jar) Clone() Jar {
	if j == nil {
		return nil
	}
	out := make(Jar, len(j))
	copy(out, j)
	return out
}

// ParseSetCookie extracts the name/value pair of a Set-Cookie header value.
// Only the part before the first ';' is considered and it is split on the
// first '='. A value without '=' yields an empty cookie value. The second
// result is false when the value cannot be replayed: an empty name, or bytes
// that are not allowed in a header field.
func ParseSetCookie(value string) (Pair, bool) {
	segment, _, _ := strings.Cut(value, ";")
	name, val, _ := strings.Cut(segment, "=")

	p := Pair{
		Name:  textproto.TrimString(name),
		Value: textproto.TrimString(val),
	}
	if p.Name == "" || !httpguts.ValidHeaderFieldValue(p.String()) {
		return Pair{}, false
	}
	return p, true
}

// ParseSetCookies parses every value, skipping the ones ParseSetCookie
// rejects, and keeps the order of values.
func ParseSetCookies(values []string) Jar {
	if len(values) == 0 {
		return nil
	}
	jar := make(Jar, 0, len(values))
	for _, v := range values {
		if p, ok := ParseSetCookie(v); ok {
			jar = append(jar, p)
		}
	}
	return jar
}
