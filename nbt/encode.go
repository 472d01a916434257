package nbt

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
)

// Encoder writes root tags to an io.Writer.
type Encoder struct {
	w     io.Writer
	order binary.ByteOrder
}

// NewEncoder returns an Encoder writing little-endian tags to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, order: binary.LittleEndian}
}

// NewEncoderWithOrder returns an Encoder using the given byte order.
// binary.BigEndian produces the Java Edition layout.
func NewEncoderWithOrder(w io.Writer, order binary.ByteOrder) *Encoder {
	return &Encoder{w: w, order: order}
}

// Encode writes v as an unnamed root tag. Nothing is written to the
// underlying writer if v cannot be encoded.
func (e *Encoder) Encode(v any) error {
	s := encodeState{order: e.order}
	if err := s.writeNamed("", reflect.ValueOf(v)); err != nil {
		return err
	}
	_, err := e.w.Write(s.Bytes())
	return err
}

// EncodePayload writes v without the leading type byte and name. It is
// meant for callers that frame the tag themselves.
func (e *Encoder) EncodePayload(v any) error {
	s := encodeState{order: e.order}
	rv, err := indirect(reflect.ValueOf(v))
	if err != nil {
		return err
	}
	t, err := tagOf(rv)
	if err != nil {
		return err
	}
	if err := s.writePayload(t, rv); err != nil {
		return err
	}
	_, err = e.w.Write(s.Bytes())
	return err
}

type encodeState struct {
	bytes.Buffer
	order   binary.ByteOrder
	scratch [8]byte
}

// Marshal encodes v as an unnamed root tag:
//
//	bool, int8, uint8         Byte
//	int16                     Short
//	int32                     Int
//	int64                     Long
//	float32, float64          Float, Double
//	string                    String
//	[]byte, [N]byte           ByteArray
//	[]int32, [N]int32         IntArray
//	[]int64, [N]int64         LongArray
//	Compound                  Compound, entry order kept
//	map[string]T              Compound, keys sorted
//	List, other slices        List
//
// Pointers and interfaces are followed. Any other value, and lists whose
// elements do not share one tag type, fail with ErrUnsupported.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBase64 is Marshal followed by standard base64 encoding.
func EncodeBase64(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

var (
	compoundType = reflect.TypeOf(Compound(nil))
	listType     = reflect.TypeOf(List{})
)

func indirect(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrUnsupported, v.Type())
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: nil", ErrUnsupported)
	}
	return v, nil
}

// staticType returns the tag type for values of t, if t alone decides it.
func staticType(t reflect.Type) (byte, bool) {
	switch t {
	case compoundType:
		return TagCompound, true
	case listType:
		return TagList, true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return TagByte, true
	case reflect.Int16:
		return TagShort, true
	case reflect.Int32:
		return TagInt, true
	case reflect.Int64:
		return TagLong, true
	case reflect.Float32:
		return TagFloat, true
	case reflect.Float64:
		return TagDouble, true
	case reflect.String:
		return TagString, true
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return TagCompound, true
		}
	case reflect.Slice, reflect.Array:
		switch t.Elem().Kind() {
		case reflect.Uint8:
			return TagByteArray, true
		case reflect.Int32:
			return TagIntArray, true
		case reflect.Int64:
			return TagLongArray, true
		}
		return TagList, true
	}
	return 0, false
}

func tagOf(v reflect.Value) (byte, error) {
	if t, ok := staticType(v.Type()); ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupported, v.Type())
}

func (s *encodeState) writeNamed(name string, v reflect.Value) error {
	v, err := indirect(v)
	if err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	t, err := tagOf(v)
	if err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	s.WriteByte(t)
	if err := s.writeString(name); err != nil {
		return err
	}
	if err := s.writePayload(t, v); err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	return nil
}

func (s *encodeState) writeString(str string) error {
	if len(str) > math.MaxUint16 {
		return fmt.Errorf("%w: string of %d bytes", ErrUnsupported, len(str))
	}
	s.order.PutUint16(s.scratch[:], uint16(len(str)))
	s.Write(s.scratch[:2])
	s.WriteString(str)
	return nil
}

func (s *encodeState) writeLen(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: length %d", ErrUnsupported, n)
	}
	s.order.PutUint32(s.scratch[:], uint32(n))
	s.Write(s.scratch[:4])
	return nil
}

func (s *encodeState) writePayload(t byte, v reflect.Value) error {
	scratch := s.scratch[:]
	switch t {
	case TagByte:
		switch v.Kind() {
		case reflect.Bool:
			if v.Bool() {
				s.WriteByte(1)
			} else {
				s.WriteByte(0)
			}
		case reflect.Int8:
			s.WriteByte(byte(v.Int()))
		default:
			s.WriteByte(byte(v.Uint()))
		}
	case TagShort:
		s.order.PutUint16(scratch[:], uint16(v.Int()))
		s.Write(scratch[:2])
	case TagInt:
		s.order.PutUint32(scratch[:], uint32(v.Int()))
		s.Write(scratch[:4])
	case TagLong:
		s.order.PutUint64(scratch[:], uint64(v.Int()))
		s.Write(scratch[:8])
	case TagFloat:
		s.order.PutUint32(scratch[:], math.Float32bits(float32(v.Float())))
		s.Write(scratch[:4])
	case TagDouble:
		s.order.PutUint64(scratch[:], math.Float64bits(v.Float()))
		s.Write(scratch[:8])
	case TagString:
		return s.writeString(v.String())
	case TagByteArray:
		if err := s.writeLen(v.Len()); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			s.WriteByte(byte(v.Index(i).Uint()))
		}
	case TagIntArray:
		if err := s.writeLen(v.Len()); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			s.order.PutUint32(scratch[:], uint32(v.Index(i).Int()))
			s.Write(scratch[:4])
		}
	case TagLongArray:
		if err := s.writeLen(v.Len()); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			s.order.PutUint64(scratch[:], uint64(v.Index(i).Int()))
			s.Write(scratch[:8])
		}
	case TagList:
		return s.writeList(v)
	case TagCompound:
		return s.writeCompound(v)
	default:
		return fmt.Errorf("%w: tag type %d", ErrUnsupported, t)
	}
	return nil
}

func (s *encodeState) writeCompound(v reflect.Value) error {
	if c, ok := v.Interface().(Compound); ok {
		for _, e := range c {
			if err := s.writeNamed(e.Name, reflect.ValueOf(e.Value)); err != nil {
				return err
			}
		}
		s.WriteByte(TagEnd)
		return nil
	}
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	for _, k := range keys {
		if err := s.writeNamed(k.String(), v.MapIndex(k)); err != nil {
			return err
		}
	}
	s.WriteByte(TagEnd)
	return nil
}

func (s *encodeState) writeList(v reflect.Value) error {
	var (
		elemType byte
		values   []reflect.Value
	)
	if l, ok := v.Interface().(List); ok {
		elemType = l.Type
		for _, e := range l.Values {
			values = append(values, reflect.ValueOf(e))
		}
	} else {
		for i := 0; i < v.Len(); i++ {
			values = append(values, v.Index(i))
		}
		if t, ok := staticType(v.Type().Elem()); ok {
			elemType = t
		}
	}

	// Resolve every element first so the element type byte is known before
	// anything is written.
	elems := make([]reflect.Value, len(values))
	for i, e := range values {
		e, err := indirect(e)
		if err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
		t, err := tagOf(e)
		if err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
		if i == 0 && elemType == TagEnd {
			elemType = t
		}
		if t != elemType {
			return fmt.Errorf("%w: list of %s holds %s at %d", ErrUnsupported, typeName(elemType), typeName(t), i)
		}
		elems[i] = e
	}
	s.WriteByte(elemType)
	if err := s.writeLen(len(elems)); err != nil {
		return err
	}
	for i, e := range elems {
		if err := s.writePayload(elemType, e); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}
