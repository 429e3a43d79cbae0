package properties

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. Object keys keep document order.
func (v *Value) UnmarshalJSON(data []byte) error {
	out, err := parse(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalJSON implements json.Marshaler. Entries are written in insertion order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	p.encode(&sb)
	return []byte(sb.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. It replaces the contents of p
// with the members of a JSON object; null leaves p empty.
func (p *Properties) UnmarshalJSON(data []byte) error {
	v, err := parse(data)
	if err != nil {
		return err
	}
	switch v.Kind() {
	case KindNull:
		*p = Properties{}
	case KindObject:
		*p = *v.obj
	default:
		return fmt.Errorf("properties: cannot decode JSON %s into an object", v.Kind())
	}
	return nil
}

func (v Value) encode(sb *strings.Builder) {
	switch v.kind {
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(string(v.num))
	case KindString:
		writeString(sb, v.str)
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.encode(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		if v.obj == nil {
			sb.WriteString("{}")
			return
		}
		v.obj.encode(sb)
	default:
		sb.WriteString("null")
	}
}

func (p *Properties) encode(sb *strings.Builder) {
	sb.WriteByte('{')
	i := 0
	for key, v := range p.All() {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeString(sb, key)
		sb.WriteByte(':')
		v.encode(sb)
		i++
	}
	sb.WriteByte('}')
}

func writeString(sb *strings.Builder, s string) {
	// Marshalling a string cannot fail.
	data, _ := json.Marshal(s)
	sb.Write(data)
}

// parse decodes a single JSON document, keeping object member order.
func parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("properties: unexpected data after JSON value")
	}
	return v, nil
}

func readValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Value{kind: KindNumber, num: t}, nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				item, err := readValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, arr: items}, nil
		case '{':
			obj := New()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("properties: invalid object key %v", keyTok)
				}
				item, err := readValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.SetValue(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindObject, obj: obj}, nil
		}
	}
	return Value{}, fmt.Errorf("properties: unexpected JSON token %v", tok)
}
