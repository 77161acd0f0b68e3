package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Entry is one key of a mapping Value, in payload order.
type Entry struct {
	Key   string
	Value Value
}

// Value is a dynamically typed cell value. Mappings keep the key order they
// had in the JSON payload. Numbers keep their literal text.
type Value struct {
	kind    Kind
	text    string
	boolean bool
	items   []Value
	entries []Entry
}

func Null() Value { return Value{kind: KindNull} }

func String(s string) Value { return Value{kind: KindString, text: s} }

// Number builds a number from its JSON literal, e.g. "3" or "1.5e3".
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

func Mapping(entries ...Entry) Value {
	if entries == nil {
		entries = []Entry{}
	}
	return Value{kind: KindMapping, entries: entries}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsScalar() bool {
	return v.kind != KindSequence && v.kind != KindMapping
}

// Str returns the contents of a string value, or the literal of a number.
func (v Value) Str() string { return v.text }

func (v Value) BoolValue() bool { return v.boolean }

func (v Value) Items() []Value { return v.items }

func (v Value) Entries() []Entry { return v.entries }

// Get looks up a mapping key.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Text is the raw display text: string contents unquoted, everything else as
// compact JSON.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.text
	}
	return v.JSON()
}

// JSON returns the compact JSON encoding of the value. Strings are quoted and
// HTML characters are left unescaped.
func (v Value) JSON() string {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.String()
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		buf.WriteString(quoteJSON(v.text))
	case KindNumber:
		buf.WriteString(v.text)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeJSON(buf)
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteJSON(e.Key))
			buf.WriteByte(':')
			e.Value.writeJSON(buf)
		}
		buf.WriteByte('}')
	}
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// MarshalJSON implements json.Marshaler, preserving mapping order.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.JSON()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler, preserving mapping order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.text}
	case KindNumber:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.text}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case KindSequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case KindMapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.entries {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				e.Value.yamlNode())
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// Interface converts the value to plain Go types for consumers such as gojq.
// Mapping order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return int(n)
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return v.text
		}
		return f
	case KindBool:
		return v.boolean
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			out[e.Key] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// ParseValue decodes a JSON document into a Value, keeping object key order.
func ParseValue(data []byte) (Value, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, fmt.Errorf("failed to parse JSON value: %w", err)
	}
	return fromParsed(value, dataType)
}

func fromParsed(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, fmt.Errorf("invalid string: %w", err)
		}
		return String(s), nil
	case jsonparser.Number:
		return Number(string(raw)), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, fmt.Errorf("invalid boolean: %w", err)
		}
		return Bool(b), nil
	case jsonparser.Array:
		items := []Value{}
		var itemErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			item, err := fromParsed(value, dt)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, item)
		})
		if err == nil {
			err = itemErr
		}
		if err != nil {
			return Value{}, fmt.Errorf("invalid array: %w", err)
		}
		return Sequence(items...), nil
	case jsonparser.Object:
		entries := []Entry{}
		// ObjectEach hands over keys already unescaped.
		err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
			item, err := fromParsed(value, dt)
			if err != nil {
				return err
			}
			entries = append(entries, Entry{Key: string(key), Value: item})
			return nil
		})
		if err != nil {
			return Value{}, fmt.Errorf("invalid object: %w", err)
		}
		return Mapping(entries...), nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value %q", string(raw))
	}
}
