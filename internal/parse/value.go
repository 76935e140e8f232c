// internal/parse/value.go
package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind tags a decoded JSON node.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindArray
	KindObject
)

// Member is one object field. Members keep document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON tree.
// Exactly one payload field is meaningful, selected by Kind.
type Value struct {
	Kind    Kind
	Number  float64
	String  string
	Bool    bool
	Items   []Value
	Members []Member
}

var errTrailingData = errors.New("parse: trailing data after json value")

// Decode decodes raw as exactly one JSON value.
// Anything after the value (other than whitespace) makes the input non-JSON.
func Decode(raw string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case string:
		return Value{Kind: KindString, String: t}, nil
	case json.Number:
		// Out of float64 range still decodes, as ±Inf; FirstNumber skips it.
		f, err := t.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("parse: number %q: %w", t.String(), err)
		}
		return Value{Kind: KindNumber, Number: f}, nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
	}
	return Value{}, fmt.Errorf("parse: unexpected token %v", tok)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindArray}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindObject}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("parse: object key is %T", tok)
		}
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Members = append(v.Members, Member{Key: key, Value: item})
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// FirstNumber walks v depth-first and returns the first finite numeric leaf.
// Strings count when they contain a decimal number.
func FirstNumber(v Value) (float64, bool) {
	switch v.Kind {
	case KindNumber:
		if math.IsInf(v.Number, 0) || math.IsNaN(v.Number) {
			return 0, false
		}
		return v.Number, true
	case KindString:
		return scanNumber(v.String)
	case KindArray:
		for _, item := range v.Items {
			if n, ok := FirstNumber(item); ok {
				return n, true
			}
		}
	case KindObject:
		for _, m := range v.Members {
			if n, ok := FirstNumber(m.Value); ok {
				return n, true
			}
		}
	}
	return 0, false
}
