package cookiejar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/cookieproxy/pkg/cookiejar"
)

func TestParseSetCookie(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		header string
		want   cookiejar.Pair
		ok     bool
	}{
		{name: "plain", header: "a=1", want: cookiejar.Pair{Name: "a", Value: "1"}, ok: true},
		{name: "attributes dropped", header: "sid=abc; Path=/; HttpOnly; Secure; SameSite=Lax", want: cookiejar.Pair{Name: "sid", Value: "abc"}, ok: true},
		{name: "split on first equals", header: "token=a=b=c; Path=/", want: cookiejar.Pair{Name: "token", Value: "a=b=c"}, ok: true},
		{name: "missing equals yields empty value", header: "broken", want: cookiejar.Pair{Name: "broken", Value: ""}, ok: true},
		{name: "empty value", header: "a=; Max-Age=0", want: cookiejar.Pair{Name: "a", Value: ""}, ok: true},
		{name: "surrounding whitespace trimmed", header: "  a = 1 ; Path=/", want: cookiejar.Pair{Name: "a", Value: "1"}, ok: true},
		{name: "quoted value kept verbatim", header: `q="x y"`, want: cookiejar.Pair{Name: "q", Value: `"x y"`}, ok: true},
		{name: "empty header", header: "", ok: false},
		{name: "empty name", header: "=value", ok: false},
		{name: "attributes only", header: "; Path=/", ok: false},
		{name: "control characters", header: "a=1\x00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := cookiejar.ParseSetCookie(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSetCookies(t *testing.T) {
	t.Parallel()

	t.Run("keeps order and duplicates", func(t *testing.T) {
		t.Parallel()
		jar := cookiejar.ParseSetCookies([]string{"a=1", "b=2; Path=/", "a=3"})
		assert.Equal(t, cookiejar.Jar{{"a", "1"}, {"b", "2"}, {"a", "3"}}, jar)
	})

	t.Run("malformed values do not stop parsing", func(t *testing.T) {
		t.Parallel()
		jar := cookiejar.ParseSetCookies([]string{"=oops", "broken", "good=1"})
		assert.Equal(t, cookiejar.Jar{{"broken", ""}, {"good", "1"}}, jar)
	})

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, cookiejar.ParseSetCookies(nil))
	})
}

func TestJarString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", cookiejar.Jar{}.String())
	assert.Equal(t, "a=1", cookiejar.Jar{{"a", "1"}}.String())
	assert.Equal(t, "a=1;b=2;a=3", cookiejar.Jar{{"a", "1"}, {"b", "2"}, {"a", "3"}}.String())
	assert.Equal(t, "broken=;good=1", cookiejar.Jar{{"broken", ""}, {"good", "1"}}.String())
}

func TestJarClone(t *testing.T) {
	t.Parallel()

	orig := cookiejar.Jar{{"a", "1"}}
	clone := orig.Clone()
	clone[0].Value = "changed"

	assert.Equal(t, "1", orig[0].Value)
	assert.Nil(t, cookiejar.Jar(nil).Clone())
}
