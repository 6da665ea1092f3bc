package cache

import (
	"encoding/json"
)

// UnmarshalCacheValue converts a cache value to the requested type. The
// in-memory backend stores objects directly while Redis stores JSON strings,
// so both forms are handled. Returns nil and false when neither works.
func UnmarshalCacheValue[T any](value interface{}) (*T, bool) {
	if value == nil {
		return nil, false
	}

	if typed, ok := value.(*T); ok {
		return typed, true
	}
	if typed, ok := value.(T); ok {
		return &typed, true
	}

	if str, ok := value.(string); ok {
		var result T
		if err := json.Unmarshal([]byte(str), &result); err == nil {
			return &result, true
		}
	}

	return nil, false
}
