package templateversion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/xctinstall/pkg/plist"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2", false},
		{"2.1", false},
		{"v2.1.3", false},
		{"1.0.0-beta.1", false},
		{"", true},
		{"two", true},
		{"-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, v.IsValid())
				return
			}
			require.NoError(t, err)
			assert.True(t, v.IsValid())
			assert.Equal(t, tt.input, v.String())
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"3", "2", 1},
		{"2", "3", -1},
		{"2", "2", 0},
		{"2", "2.0", 0},
		{"10", "9", 1},
		{"2.10", "2.9", 1},
		{"3", "2.9.9", 1},
		{"1.0.0", "1.0.0-rc.1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			a, err := Parse(tt.a)
			require.NoError(t, err)
			b, err := Parse(tt.b)
			require.NoError(t, err)

			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, tt.want > 0, a.GreaterThan(b))
		})
	}
}

func TestCompare_Invalid(t *testing.T) {
	valid, err := Parse("1")
	require.NoError(t, err)
	var zero Version

	assert.Equal(t, 0, zero.Compare(Version{}))
	assert.Equal(t, -1, zero.Compare(valid))
	assert.Equal(t, 1, valid.Compare(zero))
}

func TestFromDocument(t *testing.T) {
	tests := []struct {
		name   string
		xml    string
		want   string
		wantOK bool
	}{
		{
			name:   "integer",
			xml:    `<plist><dict><key>Version</key><integer>2</integer></dict></plist>`,
			want:   "2",
			wantOK: true,
		},
		{
			name:   "string",
			xml:    `<plist><dict><key>Version</key><string>1.4</string></dict></plist>`,
			want:   "1.4",
			wantOK: true,
		},
		{
			name:   "real",
			xml:    `<plist><dict><key>Version</key><real>2.50</real></dict></plist>`,
			want:   "2.5",
			wantOK: true,
		},
		{
			name:   "whole_real",
			xml:    `<plist><dict><key>Version</key><real>2</real></dict></plist>`,
			want:   "2.0",
			wantOK: true,
		},
		{
			name:   "hex_integer",
			xml:    `<plist><dict><key>Version</key><integer>0x10</integer></dict></plist>`,
			want:   "16",
			wantOK: true,
		},
		{
			name: "unparseable_integer",
			xml:  `<plist><dict><key>Version</key><integer>1.5</integer></dict></plist>`,
		},
		{
			name: "missing_key",
			xml:  `<plist><dict><key>Kind</key><string>x</string></dict></plist>`,
		},
		{
			name: "boolean",
			xml:  `<plist><dict><key>Version</key><true/></dict></plist>`,
		},
		{
			name: "unparseable_string",
			xml:  `<plist><dict><key>Version</key><string>latest</string></dict></plist>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := plist.Parse([]byte(tt.xml))
			require.NoError(t, err)

			v, ok := FromDocument(doc)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, v.String())
			}
		})
	}

	_, ok := FromDocument(nil)
	assert.False(t, ok)
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "3", want: "3"},
		{input: "-1", want: "-1"},
		{input: "+7", want: "7"},
		{input: "007", want: "7"},
		{input: "0x1F", want: "31"},
		{input: "18446744073709551617", want: "18446744073709551617"},
		{input: "", wantErr: true},
		{input: "1.0", wantErr: true},
		{input: "--1", wantErr: true},
		{input: "1_000", wantErr: true},
		{input: "0x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseInteger(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParseReal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2", "2.0"},
		{"2.50", "2.5"},
		{"1.10", "1.1"},
		{"-3.25", "-3.25"},
		{"0.0001", "0.0001"},
		{"0.00001", "1e-05"},
		{"123456789012345", "123456789012345.0"},
		{"1e16", "1e+16"},
		{"1.5e20", "1.5e+20"},
		{"1e400", "inf"},
		{"-0", "-0.0"},
		{"nan", "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseReal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	_, err := ParseReal("one point five")
	assert.Error(t, err)
}

func TestCompare_Numeric(t *testing.T) {
	huge := "1" + strings.Repeat("0", 30)

	tests := []struct {
		name string
		a, b Version
		want int
	}{
		{"real equal despite trailing zero", realVersion(t, "1.50"), realVersion(t, "1.5"), 0},
		{"real is numeric not dotted", realVersion(t, "1.10"), realVersion(t, "1.9"), -1},
		{"negative integer", intVersion(t, "-1"), intVersion(t, "-2"), 1},
		{"integer beyond int64", intVersion(t, huge), intVersion(t, "9223372036854775807"), 1},
		{"integer equals real", intVersion(t, "2"), realVersion(t, "2.0"), 0},
		{"integer below real", intVersion(t, "2"), realVersion(t, "2.5"), -1},
		{"infinity", realVersion(t, "1e400"), intVersion(t, huge), 1},
		{"decimal string against real", strVersion(t, "2.5"), realVersion(t, "2.4"), 1},
		{"semver string against integer", strVersion(t, "v3.0.1"), intVersion(t, "3"), 1},
		{"integer without semver form sorts low", intVersion(t, "-1"), strVersion(t, "v0.0.1"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
			assert.Equal(t, tt.want > 0, tt.a.GreaterThan(tt.b))
		})
	}
}

func TestGreaterThan_NaN(t *testing.T) {
	nan := realVersion(t, "nan")
	one := intVersion(t, "1")

	assert.False(t, nan.GreaterThan(one))
	assert.False(t, one.GreaterThan(nan))
	assert.False(t, nan.GreaterThan(nan))
}

func TestIsZero(t *testing.T) {
	assert.True(t, intVersion(t, "0").IsZero())
	assert.True(t, realVersion(t, "0.0").IsZero())
	assert.True(t, realVersion(t, "-0").IsZero())
	assert.False(t, intVersion(t, "1").IsZero())
	assert.False(t, realVersion(t, "nan").IsZero())
	assert.False(t, strVersion(t, "0").IsZero(), "strings are never numeric zero")
	assert.False(t, Version{}.IsZero())
}

func intVersion(t *testing.T, s string) Version {
	t.Helper()
	v, err := ParseInteger(s)
	require.NoError(t, err)
	return v
}

func realVersion(t *testing.T, s string) Version {
	t.Helper()
	v, err := ParseReal(s)
	require.NoError(t, err)
	return v
}

func strVersion(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	require.NoError(t, err)
	return v
}
