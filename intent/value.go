package intent

import (
	"fmt"
	"sort"
	"strings"
)

type ValueKind int

const (
	ValueInteger ValueKind = iota
	ValueString
	ValueTime
)

func (k ValueKind) String() string {
	switch k {
	case ValueInteger:
		return "integer"
	case ValueString:
		return "string"
	case ValueTime:
		return "time"
	}
	return fmt.Sprintf("<unknown value kind %d>", int(k))
}

type Time struct {
	Hour   int
	Minute int
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Value is the value an entity is bound to.
type Value struct {
	Kind ValueKind
	Int  int
	Str  string
	Time Time
}

func IntValue(v int) Value {
	return Value{Kind: ValueInteger, Int: v}
}

func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

func TimeValue(hour, minute int) Value {
	return Value{Kind: ValueTime, Time: Time{Hour: hour, Minute: minute}}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInteger:
		return fmt.Sprintf("%v", v.Int)
	case ValueTime:
		return v.Time.String()
	}
	return v.Str
}

// Bindings maps entity names to their values. A composite entity also
// exports its parts as <entity>.<field>, e.g. amytime.hour.
type Bindings map[string]Value

func (b Bindings) Int(key string) (int, bool) {
	v, ok := b[key]
	if !ok || v.Kind != ValueInteger {
		return 0, false
	}
	return v.Int, true
}

func (b Bindings) Time(key string) (Time, bool) {
	v, ok := b[key]
	if !ok || v.Kind != ValueTime {
		return Time{}, false
	}
	return v.Time, true
}

func (b Bindings) Str(key string) (string, bool) {
	v, ok := b[key]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Keys returns the names in b in ascending order.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders b as key=value pairs in key order.
func (b Bindings) String() string {
	var s strings.Builder
	for i, k := range b.Keys() {
		if i > 0 {
			s.WriteString(" ")
		}
		fmt.Fprintf(&s, "%v=%v", k, b[k])
	}
	return s.String()
}
