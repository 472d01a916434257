package nbt

import (
	"fmt"
	"reflect"
	"sort"
)

// FromValue converts a generic decoded tree, as produced by decoding into
// any with github.com/Tnze/go-mc/nbt or gophertunnel's nbt package, into
// the canonical values of this package. Maps become Compounds with sorted
// keys, untyped slices become Lists and fixed-size arrays become slices.
// The result encodes to the same bytes on every call.
func FromValue(v any) (any, error) {
	return fromValue(reflect.ValueOf(v))
}

func fromValue(v reflect.Value) (any, error) {
	v, err := indirect(v)
	if err != nil {
		return nil, err
	}
	switch x := v.Interface().(type) {
	case Compound:
		out := make(Compound, len(x))
		for i, e := range x {
			ev, err := FromValue(e.Value)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", e.Name, err)
			}
			out[i] = Entry{Name: e.Name, Value: ev}
		}
		return out, nil
	case List:
		out := List{Type: x.Type, Values: make([]any, len(x.Values))}
		for i, e := range x.Values {
			ev, err := FromValue(e)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			out.Values[i] = ev
		}
		return out, nil
	}

	t, err := tagOf(v)
	if err != nil {
		return nil, err
	}
	switch t {
	case TagByte:
		switch v.Kind() {
		case reflect.Bool:
			if v.Bool() {
				return uint8(1), nil
			}
			return uint8(0), nil
		case reflect.Int8:
			return uint8(v.Int()), nil
		}
		return uint8(v.Uint()), nil
	case TagShort:
		return int16(v.Int()), nil
	case TagInt:
		return int32(v.Int()), nil
	case TagLong:
		return v.Int(), nil
	case TagFloat:
		return float32(v.Float()), nil
	case TagDouble:
		return v.Float(), nil
	case TagString:
		return v.String(), nil
	case TagByteArray:
		out := make([]byte, v.Len())
		for i := range out {
			out[i] = byte(v.Index(i).Uint())
		}
		return out, nil
	case TagIntArray:
		out := make([]int32, v.Len())
		for i := range out {
			out[i] = int32(v.Index(i).Int())
		}
		return out, nil
	case TagLongArray:
		out := make([]int64, v.Len())
		for i := range out {
			out[i] = v.Index(i).Int()
		}
		return out, nil
	case TagCompound:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		out := make(Compound, 0, len(keys))
		for _, k := range keys {
			ev, err := fromValue(v.MapIndex(k))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k.String(), err)
			}
			out = append(out, Entry{Name: k.String(), Value: ev})
		}
		return out, nil
	case TagList:
		out := List{Values: make([]any, v.Len())}
		if et, ok := staticType(v.Type().Elem()); ok {
			out.Type = et
		}
		for i := range out.Values {
			ev, err := fromValue(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			out.Values[i] = ev
		}
		if out.Type == TagEnd && len(out.Values) > 0 {
			et, err := tagOf(reflect.ValueOf(out.Values[0]))
			if err != nil {
				return nil, err
			}
			out.Type = et
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, v.Type())
}

// CompoundFrom is FromValue for values that must decode to a compound.
func CompoundFrom(v any) (Compound, error) {
	c, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	compound, ok := c.(Compound)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a compound", ErrUnsupported, v)
	}
	return compound, nil
}
