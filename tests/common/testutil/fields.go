//go:build unit || e2e

package testutil

// Field sets key on a DtoMap payload; a nil value removes the key.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// Blank sets each key to the empty string, which binds but fails required-field checks.
func Blank(keys ...string) func(m map[string]any) {
	return func(m map[string]any) {
		for _, k := range keys {
			m[k] = ""
		}
	}
}
