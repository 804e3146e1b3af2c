package nbt

// Compound is an ordered set of named tags
type Compound struct {
	keys   []string
	values map[string]Value
}

// NewCompound creates an empty compound
func NewCompound() *Compound {
	return &Compound{values: make(map[string]Value)}
}

// Kind implements Value
func (c *Compound) Kind() Kind { return KindCompound }

// Len returns the number of entries
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns the keys in order
func (c *Compound) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Has reports whether key is present
func (c *Compound) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.values[key]
	return ok
}

// Get returns the value stored under key
func (c *Compound) Get(key string) (Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Set stores v under key. An existing key keeps its position.
func (c *Compound) Set(key string, v Value) *Compound {
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
	return c
}

// Delete removes key if present
func (c *Compound) Delete(key string) {
	if !c.Has(key) {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			return
		}
	}
}

// Compound returns the child compound under key
func (c *Compound) Compound(key string) (*Compound, bool) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Compound)
	return child, ok
}

// List returns the child list under key
func (c *Compound) List(key string) (*List, bool) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*List)
	return child, ok
}

// GetString returns the string tag under key
func (c *Compound) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// Integer returns any integral tag under key widened to int64
func (c *Compound) Integer(key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	return AsInteger(v)
}

// Number returns any numeric tag under key widened to float64
func (c *Compound) Number(key string) (float64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	return AsNumber(v)
}

// EnsureCompound returns the child compound under key, creating it when
// missing or when the key holds a different kind.
func (c *Compound) EnsureCompound(key string) *Compound {
	if child, ok := c.Compound(key); ok {
		return child
	}
	child := NewCompound()
	c.Set(key, child)
	return child
}

// ReplaceWith makes c an exact deep copy of other, keeping c's identity so
// that references held by parents stay valid.
func (c *Compound) ReplaceWith(other *Compound) {
	clone := other.Clone()
	c.keys = clone.keys
	c.values = clone.values
}

// Clone deep-copies the compound
func (c *Compound) Clone() *Compound {
	if c == nil {
		return nil
	}
	out := &Compound{
		keys:   append([]string(nil), c.keys...),
		values: make(map[string]Value, len(c.values)),
	}
	for k, v := range c.values {
		out.values[k] = Clone(v)
	}
	return out
}
