// Package templateversion defines the ordered value stored under the
// Version key of a template's metadata.
//
// The value keeps the plist type it was written with:
//
//	<integer>  arbitrary-precision integer, compared numerically
//	<real>     float64, compared numerically (1.5 == 1.50, 1.9 > 1.10)
//	<string>   semantic version, parsed leniently ("2", "2.1", "v2.1.3")
//
// Integers and reals compare with each other by value. A string compared
// with a number is read as a decimal number when it is one; otherwise both
// sides are compared as semantic versions, and a number that has no
// semantic-version form sorts below the string.
package templateversion

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/arthur-debert/xctinstall/pkg/plist"
)

// Key is the metadata key holding the template version
const Key = "Version"

type kind uint8

const (
	kindNone kind = iota
	kindInteger
	kindReal
	kindString
)

// Version is a parsed template version. The zero value is invalid; use
// Parse, ParseInteger, ParseReal or FromDocument to obtain one.
type Version struct {
	kind kind
	num  *big.Float // integer and real kinds
	nan  bool
	sv   *semver.Version
	text string
}

// Parse reads a version string as a semantic version
func Parse(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid template version %q: %w", s, err)
	}
	return Version{kind: kindString, sv: sv, text: s}, nil
}

// ParseInteger reads the text of an <integer> element. Decimal and 0x
// hexadecimal forms are accepted, with an optional sign and no size limit.
func ParseInteger(s string) (Version, error) {
	digits, base := s, 10
	sign := ""
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, base = digits[2:], 16
	}
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return Version{}, fmt.Errorf("invalid integer version %q", s)
	}

	n, ok := new(big.Int).SetString(sign+digits, base)
	if !ok {
		return Version{}, fmt.Errorf("invalid integer version %q", s)
	}
	return Version{kind: kindInteger, num: new(big.Float).SetInt(n), text: n.String()}, nil
}

// ParseReal reads the text of a <real> element. Values too large for a
// float64 become infinities.
func ParseReal(s string) (Version, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Version{}, fmt.Errorf("invalid real version %q: %w", s, err)
	}
	v := Version{kind: kindReal, text: formatReal(f)}
	if math.IsNaN(f) {
		v.nan = true
	} else {
		v.num = new(big.Float).SetFloat64(f)
	}
	return v, nil
}

// FromValue converts a plist value into a version. Booleans, dates and
// containers are rejected.
func FromValue(v plist.Value) (Version, error) {
	switch v.Kind {
	case plist.KindInteger:
		return ParseInteger(v.Text)
	case plist.KindReal:
		return ParseReal(v.Text)
	case plist.KindString:
		return Parse(v.Text)
	default:
		return Version{}, fmt.Errorf("template version has unsupported type <%s>", v.Kind)
	}
}

// FromDocument looks up Key in doc. ok is false when the key is absent
// or its value cannot be read as a version.
func FromDocument(doc *plist.Document) (Version, bool) {
	if doc == nil {
		return Version{}, false
	}
	val, found := doc.Value(Key)
	if !found {
		return Version{}, false
	}
	v, err := FromValue(val)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// IsValid reports whether v holds a parsed version
func (v Version) IsValid() bool {
	return v.kind != kindNone
}

// IsZero reports whether v is a numeric zero. Such a version still takes
// part in comparisons but is displayed as unknown.
func (v Version) IsZero() bool {
	return v.num != nil && v.num.Sign() == 0
}

func (v Version) numeric() bool {
	return v.kind == kindInteger || v.kind == kindReal
}

// Compare returns -1, 0 or 1. An invalid version sorts before any valid
// one. NaN compares equal to everything.
func (v Version) Compare(o Version) int {
	switch {
	case !v.IsValid() && !o.IsValid():
		return 0
	case !v.IsValid():
		return -1
	case !o.IsValid():
		return 1
	case v.kind == kindString && o.kind == kindString:
		return v.sv.Compare(o.sv)
	case v.numeric() && o.numeric():
		if v.nan || o.nan {
			return 0
		}
		return v.num.Cmp(o.num)
	case v.numeric():
		return compareMixed(v, o)
	default:
		return -compareMixed(o, v)
	}
}

// compareMixed orders a numeric version n against a string version s
func compareMixed(n, s Version) int {
	f, err := strconv.ParseFloat(s.text, 64)
	if err == nil || math.IsInf(f, 0) {
		other, _ := ParseReal(s.text)
		return n.Compare(other)
	}
	nsv, err := semver.NewVersion(n.text)
	if err != nil {
		return -1
	}
	return nsv.Compare(s.sv)
}

// GreaterThan reports whether v is strictly newer than o. Nothing is
// newer than NaN, and NaN is newer than nothing.
func (v Version) GreaterThan(o Version) bool {
	if v.nan || o.nan {
		return false
	}
	return v.Compare(o) > 0
}

// String returns the version as displayed: integers in decimal, reals in
// shortest round-trip form with a fractional part ("2.0", "2.5",
// "1e+16"), and strings as written.
func (v Version) String() string {
	return v.text
}

// formatReal renders f the way install lines show real versions:
// fixed notation for decimal exponents in [-4, 16), scientific otherwise,
// and always a ".0" on whole fixed-notation values.
func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}
