package model

// Profile is a stored profile document, kept as the raw key/value mapping read from disk.
type Profile map[string]any

// Field returns the value for key. present is false when the key is absent;
// ok is false when the key is present but does not hold a string (including null).
func (p Profile) Field(key string) (value string, present, ok bool) {
	v, present := p[key]
	if !present {
		return "", false, false
	}
	s, ok := v.(string)
	return s, true, ok
}
