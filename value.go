package xsdfacet

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/inf.v0"
)

// Kind is the runtime representation of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindDecimal
	KindDouble
	KindString
	KindDate
	KindGYearMonth
	KindGYear
	KindDateTime
	KindTime
	KindEnum
	KindList
	KindObject
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindBoolean:    "boolean",
	KindInteger:    "integer",
	KindDecimal:    "decimal",
	KindDouble:     "double",
	KindString:     "string",
	KindDate:       "date",
	KindGYearMonth: "gYearMonth",
	KindGYear:      "gYear",
	KindDateTime:   "dateTime",
	KindTime:       "time",
	KindEnum:       "enum",
	KindList:       "list",
	KindObject:     "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind resolves a kind by its name as printed by Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindInvalid {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// IsTemporal reports whether k is one of the date/time kinds.
func (k Kind) IsTemporal() bool { return k >= KindDate && k <= KindTime }

// IsNumeric reports whether values of kind k are ordered numbers.
func (k Kind) IsNumeric() bool { return k == KindInteger || k == KindDecimal || k == KindDouble }

// Value is an immutable tagged union over the representations a schema type
// can have. The zero Value is invalid. Accessors for the wrong kind panic
// with *RepresentationError.
type Value struct {
	kind  Kind
	b     bool
	i     *big.Int
	d     *inf.Dec
	f     float64
	s     string
	enum  TypeTag
	items []Value
	obj   any
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Integer returns an arbitrary precision integer value. i is copied.
func Integer(i *big.Int) Value {
	if i == nil {
		panic("xsdfacet: nil integer")
	}
	return Value{kind: KindInteger, i: new(big.Int).Set(i)}
}

// Int64 returns an integer value.
func Int64(n int64) Value { return Value{kind: KindInteger, i: big.NewInt(n)} }

// Decimal returns an exact decimal value. d is copied.
func Decimal(d *inf.Dec) Value {
	if d == nil {
		panic("xsdfacet: nil decimal")
	}
	return Value{kind: KindDecimal, d: new(inf.Dec).Set(d)}
}

// ParseDecimal parses an xs:decimal lexical form ("-12.50", "+.5").
func ParseDecimal(s string) (Value, error) {
	d, err := parseDec(s)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindDecimal, d: d}, nil
}

// MustDecimal is ParseDecimal for literals known to be valid.
func MustDecimal(s string) Value {
	v, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseInteger parses an xs:integer lexical form.
func ParseInteger(s string) (Value, error) {
	t := strings.TrimSpace(s)
	if !integerLexical.MatchString(t) {
		return Value{}, fmt.Errorf("xsdfacet: invalid integer %q", s)
	}
	i, ok := new(big.Int).SetString(strings.TrimPrefix(t, "+"), 10)
	if !ok {
		return Value{}, fmt.Errorf("xsdfacet: invalid integer %q", s)
	}
	return Value{kind: KindInteger, i: i}, nil
}

// Double returns an IEEE double value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// String returns a string value. Name, NCName, QName and anyURI values are
// strings too; their lexical constraints are facets.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Enum returns an enumeration literal owned by the enumeration type tag.
func Enum(tag TypeTag, literal string) Value { return Value{kind: KindEnum, enum: tag, s: literal} }

// List returns a list value. items are copied.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, items: cp}
}

// Object wraps a composite value for structural validation.
func Object(o any) Value { return Value{kind: KindObject, obj: o} }

// Temporal returns a date/time value after checking its lexical form.
func Temporal(k Kind, lexical string) (Value, error) {
	re, ok := temporalLexical[k]
	if !ok {
		return Value{}, fmt.Errorf("xsdfacet: %s is not a temporal kind", k)
	}
	t := strings.TrimSpace(lexical)
	m := re.FindStringSubmatch(t)
	if m == nil {
		return Value{}, fmt.Errorf("xsdfacet: invalid %s %q", k, lexical)
	}
	if k == KindDate || k == KindDateTime {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if d > daysIn(mo, y) {
			return Value{}, fmt.Errorf("xsdfacet: invalid %s %q: day out of range", k, lexical)
		}
	}
	return Value{kind: k, s: t}, nil
}

// MustTemporal is Temporal for literals known to be valid.
func MustTemporal(k Kind, lexical string) Value {
	v, err := Temporal(k, lexical)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind reports the representation of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

func (v Value) must(k Kind) {
	if v.kind != k {
		panic(&RepresentationError{Want: k, Got: v.kind})
	}
}

// Bool returns the boolean payload.
func (v Value) Bool() bool { v.must(KindBoolean); return v.b }

// Int returns a copy of the integer payload.
func (v Value) Int() *big.Int { v.must(KindInteger); return new(big.Int).Set(v.i) }

// Dec returns a copy of the decimal payload.
func (v Value) Dec() *inf.Dec { v.must(KindDecimal); return new(inf.Dec).Set(v.d) }

// Float returns the double payload.
func (v Value) Float() float64 { v.must(KindDouble); return v.f }

// Str returns the payload of string, enum and temporal values.
func (v Value) Str() string {
	if v.kind != KindString && v.kind != KindEnum && !v.kind.IsTemporal() {
		panic(&RepresentationError{Want: KindString, Got: v.kind})
	}
	return v.s
}

// EnumType returns the enumeration type owning an enum literal.
func (v Value) EnumType() TypeTag { v.must(KindEnum); return v.enum }

// Items returns a copy of the list items.
func (v Value) Items() []Value {
	v.must(KindList)
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Len returns the item count of a list or the character count of a string.
func (v Value) Len() int {
	switch {
	case v.kind == KindList:
		return len(v.items)
	case v.kind == KindString || v.kind == KindEnum:
		return len([]rune(v.s))
	default:
		panic(&RepresentationError{Want: KindList, Got: v.kind})
	}
}

// Object returns the composite payload.
func (v Value) Object() any { v.must(KindObject); return v.obj }

// Numeric returns the value as an exact decimal. Doubles go through their
// shortest round-trip form; ok is false for NaN and infinities.
func (v Value) Numeric() (d *inf.Dec, ok bool) {
	switch v.kind {
	case KindInteger:
		return new(inf.Dec).SetUnscaledBig(v.i), true
	case KindDecimal:
		return new(inf.Dec).Set(v.d), true
	case KindDouble:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, false
		}
		d, err := parseDec(strconv.FormatFloat(v.f, 'f', -1, 64))
		return d, err == nil
	default:
		panic(&RepresentationError{Want: KindDecimal, Got: v.kind})
	}
}

// String renders the canonical lexical form of v.
func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindInteger:
		return v.i.String()
	case KindDecimal:
		return v.d.String()
	case KindDouble:
		return formatDouble(v.f)
	case KindList:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return strings.Join(parts, " ")
	case KindObject:
		return fmt.Sprint(v.obj)
	case KindInvalid:
		return ""
	default:
		return v.s
	}
}

// MarshalJSON renders numbers and booleans natively, lists as arrays and
// everything else by its lexical form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInvalid:
		return []byte("null"), nil
	case KindBoolean, KindInteger, KindDecimal:
		return []byte(v.String()), nil
	case KindDouble:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return json.Marshal(formatDouble(v.f))
		}
		return []byte(v.String()), nil
	case KindList:
		return json.Marshal(v.items)
	case KindObject:
		return json.Marshal(v.obj)
	default:
		return json.Marshal(v.s)
	}
}

// Equal reports whether a and b have the same kind and value. Numbers of
// different scale compare equal ("1.0" == "1.00").
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBoolean:
		return a.b == b.b
	case KindInteger:
		return a.i.Cmp(b.i) == 0
	case KindDecimal:
		return a.d.Cmp(b.d) == 0
	case KindDouble:
		return a.f == b.f
	case KindEnum:
		return a.enum == b.enum && a.s == b.s
	case KindList:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return a.obj == b.obj
	default:
		return a.s == b.s
	}
}

func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var (
	integerLexical = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalLexical = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

func parseDec(s string) (*inf.Dec, error) {
	t := strings.TrimSpace(s)
	if !decimalLexical.MatchString(t) {
		return nil, fmt.Errorf("xsdfacet: invalid decimal %q", s)
	}
	t = strings.TrimPrefix(t, "+")
	if strings.HasPrefix(t, ".") {
		t = "0" + t
	} else if strings.HasPrefix(t, "-.") {
		t = "-0" + t[1:]
	}
	t = strings.TrimSuffix(t, ".")
	d, ok := new(inf.Dec).SetString(t)
	if !ok {
		return nil, fmt.Errorf("xsdfacet: invalid decimal %q", s)
	}
	return d, nil
}

const (
	yearPart  = `(-?(?:[1-9][0-9]{3,}|0[0-9]{3}))`
	monthPart = `(0[1-9]|1[0-2])`
	dayPart   = `(0[1-9]|[12][0-9]|3[01])`
	timePart  = `(?:(?:[01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9](?:\.[0-9]+)?|24:00:00(?:\.0+)?)`
	zonePart  = `(?:Z|[+-](?:(?:0[0-9]|1[0-3]):[0-5][0-9]|14:00))?`
)

var temporalLexical = map[Kind]*regexp.Regexp{
	KindDate:       regexp.MustCompile(`^` + yearPart + `-` + monthPart + `-` + dayPart + zonePart + `$`),
	KindGYearMonth: regexp.MustCompile(`^` + yearPart + `-` + monthPart + zonePart + `$`),
	KindGYear:      regexp.MustCompile(`^` + yearPart + zonePart + `$`),
	KindDateTime:   regexp.MustCompile(`^` + yearPart + `-` + monthPart + `-` + dayPart + `T` + timePart + zonePart + `$`),
	KindTime:       regexp.MustCompile(`^` + timePart + zonePart + `$`),
}

func daysIn(month, year int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
