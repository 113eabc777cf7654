package texttemplate

import (
	"strings"
	"testing"
)

func TestFromGoScalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(255), "255"},
		{3.14, "3.14"},
		{float32(2.5), "2.5"},
		{"hi", "hi"},
		{[]byte("raw"), "raw"},
	}
	for _, tc := range cases {
		got := FromGo(tc.in).String()
		if got != tc.want {
			t.Fatalf("FromGo(%#v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromGoMapIsSorted(t *testing.T) {
	v := FromGo(map[string]any{"c": 3, "a": 1, "b": 2})
	m, ok := v.(*MapValue)
	if !ok {
		t.Fatalf("want *MapValue, got %T", v)
	}
	if strings.Join(m.Keys(), ",") != "a,b,c" {
		t.Fatalf("keys not sorted: %v", m.Keys())
	}
}

func TestFromGoNested(t *testing.T) {
	v := FromGo([]any{map[string]any{"n": 1}, "x"})
	l, ok := v.(ListValue)
	if !ok || len(l) != 2 {
		t.Fatalf("unexpected value: %#v", v)
	}
	if _, ok := l[0].(*MapValue); !ok {
		t.Fatalf("element 0 not a map: %T", l[0])
	}
	if l[1].String() != "x" {
		t.Fatalf("element 1: %q", l[1].String())
	}
}

func TestFromGoNilPointer(t *testing.T) {
	var p *int
	if !isNull(FromGo(p)) {
		t.Fatal("nil pointer should convert to null")
	}
	n := 9
	if FromGo(&n).String() != "9" {
		t.Fatalf("pointer deref: %q", FromGo(&n).String())
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{nil, false},
		{NullValue{}, false},
		{StringValue(""), false},
		{StringValue("x"), true},
		{BoolValue(false), true},
		{IntValue(0), true},
		{FloatValue(0), true},
		{ListValue{}, true},
	}
	for _, tc := range cases {
		if got := isTruthy(tc.v); got != tc.want {
			t.Fatalf("isTruthy(%#v): got %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestValueLength(t *testing.T) {
	cases := []struct {
		v    Value
		want int
	}{
		{nil, 0},
		{NullValue{}, 0},
		{StringValue("Alice"), 5},
		{StringValue("héllo"), 5},
		{ListValue{IntValue(1), IntValue(2)}, 2},
		{NewMap().Set("a", IntValue(1)), 1},
		{IntValue(7), 0},
		{BoolValue(true), 0},
	}
	for _, tc := range cases {
		if got := valueLength(tc.v); got != tc.want {
			t.Fatalf("valueLength(%#v): got %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestHasManyPredicates(t *testing.T) {
	two := ListValue{IntValue(1), IntValue(2)}
	one := ListValue{IntValue(1)}
	m := NewMap().Set("a", IntValue(1)).Set("b", IntValue(2))

	if hasMany(nil) || hasMany(one) || hasMany(m) {
		t.Fatal("hasMany false positives")
	}
	if !hasMany(two) {
		t.Fatal("two elements should count as many")
	}
	if !hasAtMostOne(nil) || !hasAtMostOne(one) || !hasAtMostOne(ListValue{}) {
		t.Fatal("hasAtMostOne false negatives")
	}
	// Present non-sequence values satisfy neither predicate.
	if hasAtMostOne(m) || hasAtMostOne(IntValue(3)) {
		t.Fatal("non-sequences should fail hasAtMostOne")
	}
}

func TestAsInt(t *testing.T) {
	if n, ok := asInt(IntValue(5)); !ok || n != 5 {
		t.Fatalf("asInt(5): %d, %v", n, ok)
	}
	if n, ok := asInt(StringValue("12")); !ok || n != 12 {
		t.Fatalf("asInt(\"12\"): %d, %v", n, ok)
	}
	if _, ok := asInt(StringValue("5.0")); ok {
		t.Fatal("float projections must not parse as integers")
	}
	if _, ok := asInt(nil); ok {
		t.Fatal("nil must not parse")
	}
}

func TestMapValueOrder(t *testing.T) {
	m := NewMap().Set("z", IntValue(1)).Set("a", IntValue(2)).Set("z", IntValue(3))
	if strings.Join(m.Keys(), ",") != "z,a" {
		t.Fatalf("insertion order lost: %v", m.Keys())
	}
	if m.Get("z").String() != "3" {
		t.Fatalf("overwrite lost: %v", m.Get("z"))
	}
	if m.Get("missing") != nil {
		t.Fatal("missing key should be nil")
	}
}
