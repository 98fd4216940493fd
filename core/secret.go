package core

// Secret wraps an API key so it cannot leak through fmt, JSON or YAML output.
//
//	key := NewSecret("rw-abc123")
//	fmt.Println(key)       // [REDACTED]
//	key.Expose()           // "rw-abc123"
type Secret struct {
	value string
}

const redacted = "[REDACTED]"

// NewSecret creates a new Secret from a string value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer for %#v.
func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// MarshalJSON always encodes the placeholder.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText always encodes the placeholder, which covers YAML encoders.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Expose returns the actual secret value. Only call it where the raw key is
// required, such as the Authorization header.
func (s Secret) Expose() string {
	return s.value
}

// Hint returns the last four characters prefixed with "...", or the placeholder
// when the key is too short to hint at safely.
func (s Secret) Hint() string {
	if len(s.value) < 12 {
		return redacted
	}
	return "..." + s.value[len(s.value)-4:]
}

// IsEmpty returns true if the secret value is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
