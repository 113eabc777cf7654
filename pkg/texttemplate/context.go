package texttemplate

// Lookup resolves a variable name to a value. A nil Value means the name
// is unbound, which variable rendering routes to the not-found fallback.
// The error return is used by derived (iteration) contexts, which treat
// names they cannot resolve as hard errors; caller-supplied root lookups
// should return (nil, nil) for missing names.
type Lookup func(name string) (Value, error)

// FromMap adapts a plain map to a root Lookup. Missing keys resolve to
// nil rather than an error.
func FromMap(ctx map[string]any) Lookup {
	return func(name string) (Value, error) {
		v, ok := ctx[name]
		if !ok {
			return nil, nil
		}
		return FromGo(v), nil
	}
}

// LookupFunc adapts a name-to-value function to a root Lookup.
func LookupFunc(fn func(name string) any) Lookup {
	return func(name string) (Value, error) {
		v := fn(name)
		if v == nil {
			return nil, nil
		}
		return FromGo(v), nil
	}
}

// Names bound by iteration constructs in derived contexts.
const (
	nameIt    = "it"
	nameKey   = "key"
	nameIndex = "_index"
	nameFirst = "_first"
	nameLast  = "_last"
)

// parentPrefix escapes one level up the scope chain.
const parentPrefix = "../"

// focusFallback resolves name against the focus object when it is a map.
// The bool reports whether a fallback applied; an absent key still counts
// and resolves to nil, which becomes the not-found fallback downstream.
func focusFallback(focus Value, name string) (Value, bool) {
	m, ok := focus.(*MapValue)
	if !ok {
		return nil, false
	}
	return m.Get(name), true
}

// derivedContext extends outer for a $first/$last body: it is bound to
// the element, unqualified names fall through to the element's keys when
// it is a map, and anything else is a hard error.
func derivedContext(item Value, outer Lookup) Lookup {
	return func(name string) (Value, error) {
		if len(name) >= 3 && name[:3] == parentPrefix {
			return outer(name[3:])
		}
		if name == nameIt {
			return item, nil
		}
		if v, ok := focusFallback(item, name); ok {
			return v, nil
		}
		return nil, &UnknownVariableError{Name: name}
	}
}

// derivedLoopContext extends outer for one $each step over a sequence,
// adding the loop metadata names.
func derivedLoopContext(item Value, outer Lookup, index, total int) Lookup {
	return func(name string) (Value, error) {
		if len(name) >= 3 && name[:3] == parentPrefix {
			return outer(name[3:])
		}
		switch name {
		case nameIt:
			return item, nil
		case nameIndex:
			return IntValue(index), nil
		case nameFirst:
			return BoolValue(index == 0), nil
		case nameLast:
			return BoolValue(index == total-1), nil
		}
		if v, ok := focusFallback(item, name); ok {
			return v, nil
		}
		return nil, &UnknownVariableError{Name: name}
	}
}

// derivedEntryContext extends outer for one $each step over a map entry:
// it is the entry value, key the entry key, plus the loop metadata. The
// map-key fallback applies to the entry value when it is itself a map.
func derivedEntryContext(key string, val Value, outer Lookup, index, total int) Lookup {
	return func(name string) (Value, error) {
		if len(name) >= 3 && name[:3] == parentPrefix {
			return outer(name[3:])
		}
		switch name {
		case nameIt:
			return val, nil
		case nameKey:
			return StringValue(key), nil
		case nameIndex:
			return IntValue(index), nil
		case nameFirst:
			return BoolValue(index == 0), nil
		case nameLast:
			return BoolValue(index == total-1), nil
		}
		if v, ok := focusFallback(val, name); ok {
			return v, nil
		}
		return nil, &UnknownVariableError{Name: name}
	}
}
