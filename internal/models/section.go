package models

import (
	"bytes"
	"encoding/json"
)

// ErrorKey is the label under which a degraded section records its failure.
const ErrorKey = "Error"

// Entry is one labelled value of a Section.
type Entry struct {
	Key   string
	Value any
}

// Section is an insertion-ordered mapping from metric label to value. Values
// are scalars, nil, or nested *Section payloads keyed by device name.
type Section struct {
	entries []Entry
	index   map[string]int
}

// NewSection returns an empty section.
func NewSection() *Section {
	return &Section{index: make(map[string]int)}
}

// Set stores value under key. Re-setting an existing key keeps its position.
func (s *Section) Set(key string, value any) *Section {
	if i, ok := s.index[key]; ok {
		s.entries[i].Value = value
		return s
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Value: value})
	return s
}

func (s *Section) Get(key string) (any, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.entries[i].Value, true
}

// Child returns the nested section under key, creating it when missing.
func (s *Section) Child(key string) *Section {
	if v, ok := s.Get(key); ok {
		if child, ok := v.(*Section); ok {
			return child
		}
	}
	child := NewSection()
	s.Set(key, child)
	return child
}

// Keys returns the labels in insertion order.
func (s *Section) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the entries in insertion order. Callers must not modify
// the returned slice.
func (s *Section) Entries() []Entry {
	return s.entries
}

func (s *Section) Len() int {
	return len(s.entries)
}

// MarkDegraded records err on the section so consumers can tell a failed
// collection apart from one that legitimately measured zero.
func (s *Section) MarkDegraded(err error) {
	if err == nil {
		return
	}
	s.Set(ErrorKey, err.Error())
}

func (s *Section) Degraded() bool {
	_, ok := s.index[ErrorKey]
	return ok
}

func (s *Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
