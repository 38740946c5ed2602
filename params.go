package client

import (
	"maps"
	"strconv"
)

// fieldKind identifies which sub-map of a ParameterBag owns a name.
type fieldKind int

const (
	kindField fieldKind = iota
	kindFile
	kindBinary
)

// ParameterBag holds the values sent with one request. A name lives in exactly
// one of three kinds: plain form fields, local file paths and in-memory binary
// blobs. Setting a name under another kind moves it there. Each kind keeps
// insertion order, which is the order parts are encoded in.
//
// A ParameterBag is not safe for concurrent use.
type ParameterBag struct {
	fields orderedMap[string]
	files  orderedMap[string]
	binary orderedMap[[]byte]
	owner  map[string]fieldKind
}

// NewParameterBag returns an empty bag.
func NewParameterBag() *ParameterBag {
	return &ParameterBag{owner: make(map[string]fieldKind)}
}

// Set stores a plain form field.
func (b *ParameterBag) Set(name, value string) {
	b.claim(name, kindField)
	b.fields.set(name, value)
}

// SetInt stores v in decimal form.
func (b *ParameterBag) SetInt(name string, v int) {
	b.Set(name, strconv.Itoa(v))
}

// SetBool stores v as "True" or "False".
func (b *ParameterBag) SetBool(name string, v bool) {
	b.Set(name, boolString(v))
}

// SetFile stores a reference to a local file whose bytes are read at encoding time.
func (b *ParameterBag) SetFile(name, path string) {
	b.claim(name, kindFile)
	b.files.set(name, path)
}

// SetBinary stores raw bytes sent as a file part named after the field.
func (b *ParameterBag) SetBinary(name string, data []byte) {
	b.claim(name, kindBinary)
	b.binary.set(name, data)
}

// Get returns the plain field value for name.
func (b *ParameterBag) Get(name string) (string, bool) {
	return b.fields.get(name)
}

// File returns the local path stored under name.
func (b *ParameterBag) File(name string) (string, bool) {
	return b.files.get(name)
}

// Binary returns the bytes stored under name.
func (b *ParameterBag) Binary(name string) ([]byte, bool) {
	return b.binary.get(name)
}

// Delete removes name from whichever kind owns it.
func (b *ParameterBag) Delete(name string) {
	kind, ok := b.owner[name]
	if !ok {
		return
	}
	switch kind {
	case kindField:
		b.fields.remove(name)
	case kindFile:
		b.files.remove(name)
	case kindBinary:
		b.binary.remove(name)
	}
	delete(b.owner, name)
}

// ClearFiles drops every file and binary entry, keeping plain fields.
func (b *ParameterBag) ClearFiles() {
	for _, name := range b.files.keys {
		delete(b.owner, name)
	}
	for _, name := range b.binary.keys {
		delete(b.owner, name)
	}
	b.files = orderedMap[string]{}
	b.binary = orderedMap[[]byte]{}
}

// HasFiles reports whether the bag needs multipart encoding.
func (b *ParameterBag) HasFiles() bool {
	return b.files.len() > 0 || b.binary.len() > 0
}

// Clone returns a copy of the bag. Binary payloads are shared, not copied.
func (b *ParameterBag) Clone() *ParameterBag {
	c := &ParameterBag{
		fields: b.fields.clone(),
		files:  b.files.clone(),
		binary: b.binary.clone(),
		owner:  maps.Clone(b.owner),
	}
	if c.owner == nil {
		c.owner = make(map[string]fieldKind)
	}
	return c
}

func (b *ParameterBag) claim(name string, kind fieldKind) {
	if b.owner == nil {
		b.owner = make(map[string]fieldKind)
	}
	if prev, ok := b.owner[name]; ok && prev != kind {
		b.Delete(name)
	}
	b.owner[name] = kind
}

// orderedMap is a string-keyed map that remembers first insertion order.
// Overwriting a key keeps its original position.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func (m *orderedMap[V]) set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[V]) remove(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *orderedMap[V]) len() int { return len(m.keys) }

func (m *orderedMap[V]) each(fn func(key string, value V) error) error {
	for _, k := range m.keys {
		if err := fn(k, m.values[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m orderedMap[V]) clone() orderedMap[V] {
	return orderedMap[V]{
		keys:   append([]string(nil), m.keys...),
		values: maps.Clone(m.values),
	}
}
