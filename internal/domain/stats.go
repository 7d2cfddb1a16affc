package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ConceptStat aggregates one concept over a corpus.
type ConceptStat struct {
	Concept  string
	Count    int
	Articles int
}

// ConceptStats is an ordered concept mapping. It serializes as a JSON object
// whose key order matches the slice order.
type ConceptStats []ConceptStat

type conceptStatJSON struct {
	Count    int `json:"count"`
	Articles int `json:"articles"`
}

// Lookup returns the stat for a concept, if present.
func (s ConceptStats) Lookup(concept string) (ConceptStat, bool) {
	for _, stat := range s {
		if stat.Concept == concept {
			return stat, true
		}
	}
	return ConceptStat{}, false
}

// Has reports whether the concept is a key of the mapping.
func (s ConceptStats) Has(concept string) bool {
	_, ok := s.Lookup(concept)
	return ok
}

// MarshalJSON writes the stats as an ordered object.
func (s ConceptStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, stat := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(stat.Concept)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(conceptStatJSON{Count: stat.Count, Articles: stat.Articles})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back, keeping document key order.
func (s *ConceptStats) UnmarshalJSON(data []byte) error {
	result := ConceptStats{}
	err := decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var v conceptStatJSON
		if err := dec.Decode(&v); err != nil {
			return err
		}
		result = append(result, ConceptStat{Concept: key, Count: v.Count, Articles: v.Articles})
		return nil
	})
	if err != nil {
		return fmt.Errorf("decode concept stats: %w", err)
	}
	*s = result
	return nil
}

// TermCount is a trend term with its occurrence count.
type TermCount struct {
	Term  string
	Count int
}

// TermCounts is an ordered term→count mapping serialized as a JSON object.
type TermCounts []TermCount

// Terms lists the terms in order.
func (t TermCounts) Terms() []string {
	terms := make([]string, 0, len(t))
	for _, tc := range t {
		terms = append(terms, tc.Term)
	}
	return terms
}

// MarshalJSON writes the counts as an ordered object.
func (t TermCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tc := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tc.Term)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", tc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back, keeping document key order.
func (t *TermCounts) UnmarshalJSON(data []byte) error {
	result := TermCounts{}
	err := decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var v int
		if err := dec.Decode(&v); err != nil {
			return err
		}
		result = append(result, TermCount{Term: key, Count: v})
		return nil
	})
	if err != nil {
		return fmt.Errorf("decode term counts: %w", err)
	}
	*t = result
	return nil
}

func decodeOrderedObject(data []byte, value func(key string, dec *json.Decoder) error) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		if err := value(key, dec); err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
