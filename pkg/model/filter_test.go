package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralPatternEscapesAllMetacharacters(t *testing.T) {
	p := MustParsePattern("NS.Foo")
	assert.True(t, p.Match("NS.Foo"))
	// an unescaped "." would admit these
	assert.False(t, p.Match("NSxFoo"))
	assert.False(t, p.Match("NS_Foo"))

	// every dot must be escaped, not just the first one
	p = MustParsePattern("My.Long.NS.Foo")
	assert.True(t, p.Match("My.Long.NS.Foo"))
	assert.False(t, p.Match("MyxLong.NS.Foo"))
	assert.False(t, p.Match("My.LongxNS.Foo"))
	assert.False(t, p.Match("My.Long.NSxFoo"))

	p = MustParsePattern("NS.Foo(Bar)*")
	assert.True(t, p.Match("NS.Foo(Bar)*"))
	assert.False(t, p.Match("NS.FooBar"))
	assert.False(t, p.Match("NS.Foo(Bar)"))
}

func TestLiteralPatternIsAnchoredAndCaseInsensitive(t *testing.T) {
	p := MustParsePattern("NS.Foo")
	assert.True(t, p.Match("ns.foo"))
	assert.True(t, p.Match("NS.FOO"))
	assert.False(t, p.Match("NS.Foo.Bar"))
	assert.False(t, p.Match("Other.NS.Foo"))
}

func TestRegexPatternSearches(t *testing.T) {
	p := MustParsePattern("/Foo/")
	assert.True(t, p.Match("NS.Foo"))
	assert.True(t, p.Match("NS.FooBar"))
	assert.False(t, p.Match("NS.foo"))

	p = MustParsePattern("/foo/i")
	assert.True(t, p.Match("NS.Foo"))
	assert.True(t, p.Match("ns.FOO"))

	p = MustParsePattern(`/^NS\./`)
	assert.True(t, p.Match("NS.Anything"))
	assert.False(t, p.Match("Other.NS.Thing"))
}

func TestRegexPatternRequiresKnownFlags(t *testing.T) {
	// unknown flags demote the value to a literal
	p := MustParsePattern("/abc/x")
	assert.True(t, p.Match("/abc/x"))
	assert.False(t, p.Match("abc"))
}

func TestParsePatternInvalidRegex(t *testing.T) {
	_, err := ParsePattern("/[unclosed/")
	require.Error(t, err)
}

func TestFilterEmptyIncludeAdmitsAll(t *testing.T) {
	f := NewFilter(nil, nil)
	assert.True(t, f.Included("NS.Anything"))
}

func TestFilterIncludeList(t *testing.T) {
	include := []Pattern{MustParsePattern("NS.Foo"), MustParsePattern("/Bar$/")}
	f := NewFilter(include, nil)
	assert.True(t, f.Included("NS.Foo"))
	assert.True(t, f.Included("NS.SomeBar"))
	assert.False(t, f.Included("NS.Baz"))
}

func TestFilterExcludeWinsOverInclude(t *testing.T) {
	include := []Pattern{MustParsePattern("/./")}
	exclude := []Pattern{MustParsePattern("NS.Foo")}
	f := NewFilter(include, exclude)
	assert.False(t, f.Included("NS.Foo"))
	assert.True(t, f.Included("NS.Bar"))
}

func TestFilterAppliesToMemberNames(t *testing.T) {
	exclude := []Pattern{MustParsePattern("NS.Customer.Secret"), MustParsePattern("/Internal/")}
	f := NewFilter(nil, exclude)
	assert.False(t, f.Included("NS.Customer.Secret"))
	assert.True(t, f.Included("NS.Customer.Name"))
	assert.False(t, f.Included("NS.InternalAudit"))
	assert.False(t, f.Included("Container.InternalSet"))
}

func TestNilFilterIncludesEverything(t *testing.T) {
	var f *Filter
	assert.True(t, f.Included("NS.Foo"))
}

func TestParsePatterns(t *testing.T) {
	patterns, err := ParsePatterns([]string{"NS.Foo", "/Bar/"})
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.True(t, patterns[0].Match("ns.foo"))
	assert.True(t, patterns[1].Match("NS.BarBaz"))

	_, err = ParsePatterns([]string{"ok", "/(/"})
	assert.Error(t, err)
}
