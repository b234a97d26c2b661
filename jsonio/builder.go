package jsonio

import (
	"bytes"
	"encoding/json"
)

// Dict is a JSON object that marshals its keys in insertion order.
type Dict struct {
	keys   []string
	values map[string]any
}

// NewDict returns an empty ordered dict.
func NewDict() *Dict {
	return &Dict{values: map[string]any{}}
}

// Set stores a value under the key, appending the key on first use.
func (d *Dict) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under the key.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Len reports the number of keys.
func (d *Dict) Len() int { return len(d.keys) }

// MarshalJSON writes the dict with keys in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Array is a JSON array node.
type Array struct {
	items []any
}

// NewArray returns an empty array.
func NewArray() *Array { return &Array{} }

// Append adds a value to the end of the array.
func (a *Array) Append(value any) { a.items = append(a.items, value) }

// Len reports the number of items.
func (a *Array) Len() int { return len(a.items) }

// Items returns the underlying values.
func (a *Array) Items() []any { return a.items }

// MarshalJSON writes the array; an empty array marshals as [].
func (a *Array) MarshalJSON() ([]byte, error) {
	if len(a.items) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a.items)
}

// Builder assembles a single JSON value through a typestate protocol:
// ready, inside-array, inside-dict-expecting-key and
// inside-dict-expecting-value each admit a distinct operation set, and
// any other call order panics. The happy path chains:
//
//	node := NewBuilder().
//		StartDict().
//		Key("request_id").Value(7).
//		Key("buses").StartArray().Value("14").EndArray().
//		EndDict().
//		Build()
type Builder struct {
	root    any
	hasRoot bool
	stack   []builderFrame
}

type builderFrame struct {
	dict       *Dict
	array      *Array
	pendingKey string
	hasKey     bool
}

// NewBuilder returns a builder in the ready state.
func NewBuilder() *Builder { return &Builder{} }

// Value attaches a complete value: the document root, an array item or
// the value of the pending dict key.
func (b *Builder) Value(value any) *Builder {
	b.attach(value)
	return b
}

// StartDict opens an object where a value is expected.
func (b *Builder) StartDict() *Builder {
	dict := NewDict()
	b.attach(dict)
	b.stack = append(b.stack, builderFrame{dict: dict})
	return b
}

// Key names the next value inside the current dict.
func (b *Builder) Key(key string) *Builder {
	top := b.top()
	if top == nil || top.dict == nil {
		panic("jsonio: Key outside a dict")
	}
	if top.hasKey {
		panic("jsonio: Key after Key")
	}
	top.pendingKey = key
	top.hasKey = true
	return b
}

// EndDict closes the current dict.
func (b *Builder) EndDict() *Builder {
	top := b.top()
	if top == nil || top.dict == nil {
		panic("jsonio: EndDict without a matching StartDict")
	}
	if top.hasKey {
		panic("jsonio: EndDict with a dangling Key")
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// StartArray opens an array where a value is expected.
func (b *Builder) StartArray() *Builder {
	array := NewArray()
	b.attach(array)
	b.stack = append(b.stack, builderFrame{array: array})
	return b
}

// EndArray closes the current array.
func (b *Builder) EndArray() *Builder {
	top := b.top()
	if top == nil || top.array == nil {
		panic("jsonio: EndArray without a matching StartArray")
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Build returns the finished value. The document must be complete: one
// root value, every container closed.
func (b *Builder) Build() any {
	if len(b.stack) != 0 {
		panic("jsonio: Build with unclosed containers")
	}
	if !b.hasRoot {
		panic("jsonio: Build on an empty builder")
	}
	return b.root
}

func (b *Builder) top() *builderFrame {
	if len(b.stack) == 0 {
		return nil
	}
	return &b.stack[len(b.stack)-1]
}

func (b *Builder) attach(value any) {
	top := b.top()
	if top == nil {
		if b.hasRoot {
			panic("jsonio: value after the document root is complete")
		}
		b.root = value
		b.hasRoot = true
		return
	}
	if top.array != nil {
		top.array.Append(value)
		return
	}
	if !top.hasKey {
		panic("jsonio: dict value without a Key")
	}
	top.dict.Set(top.pendingKey, value)
	top.hasKey = false
	top.pendingKey = ""
}
