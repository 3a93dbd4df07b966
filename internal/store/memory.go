package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// MemoryCollection mirrors the Postgres collection contract on plain maps.
// It backs handler tests and local development without a database.
type MemoryCollection[T Document] struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
	keys []string
}

func NewMemoryCollection[T Document]() *MemoryCollection[T] {
	return &MemoryCollection[T]{docs: make(map[string]map[string]any)}
}

func (c *MemoryCollection[T]) List(_ context.Context, q Query) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]map[string]any, 0)
	for _, id := range c.keys {
		doc := c.docs[id]
		if matchesFilter(doc, q.Filter) {
			matched = append(matched, doc)
		}
	}

	if q.Sort != nil {
		s := *q.Sort
		sort.SliceStable(matched, func(i, j int) bool {
			if s.Desc {
				return fieldLess(matched[j][s.Field], matched[i][s.Field], s.Numeric)
			}
			return fieldLess(matched[i][s.Field], matched[j][s.Field], s.Numeric)
		})
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		typed, err := decodeDoc[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

func (c *MemoryCollection[T]) Get(_ context.Context, field, value string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	for _, id := range c.keys {
		doc := c.docs[id]
		if s, ok := doc[field].(string); ok && s == value {
			return decodeDoc[T](doc)
		}
	}
	return zero, ErrNotFound
}

func (c *MemoryCollection[T]) Insert(_ context.Context, doc T) error {
	encoded, err := encodeDoc(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := doc.DocumentID()
	if _, exists := c.docs[id]; exists {
		return ErrDuplicateKey
	}
	c.docs[id] = encoded
	c.keys = append(c.keys, id)
	return nil
}

func (c *MemoryCollection[T]) Update(_ context.Context, field, value string, patch Patch) (T, error) {
	encoded, err := encodeDoc(patch)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for _, id := range c.keys {
		doc := c.docs[id]
		if s, ok := doc[field].(string); ok && s == value {
			for k, v := range encoded {
				doc[k] = v
			}
			return decodeDoc[T](doc)
		}
	}
	return zero, ErrNotFound
}

func (c *MemoryCollection[T]) Delete(_ context.Context, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, id := range c.keys {
		doc := c.docs[id]
		if s, ok := doc[field].(string); ok && s == value {
			delete(c.docs, id)
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (c *MemoryCollection[T]) Count(_ context.Context, filter Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int64
	for _, doc := range c.docs {
		if matchesFilter(doc, filter) {
			count++
		}
	}
	return count, nil
}

// encodeDoc normalizes a value through JSON so stored field values have the
// same dynamic types the Postgres path produces.
func encodeDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func decodeDoc[T Document](doc map[string]any) (T, error) {
	var typed T
	raw, err := json.Marshal(doc)
	if err != nil {
		return typed, fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, &typed); err != nil {
		return typed, fmt.Errorf("decode document: %w", err)
	}
	return typed, nil
}

func matchesFilter(doc map[string]any, filter Filter) bool {
	for k, want := range filter {
		if !fieldEqual(doc[k], want) {
			return false
		}
	}
	return true
}

// fieldEqual compares through JSON encoding so bool/number/string filter
// values match their decoded counterparts.
func fieldEqual(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

func fieldLess(a, b any, numeric bool) bool {
	if numeric {
		return asFloat(a) < asFloat(b)
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
