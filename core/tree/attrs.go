package tree

// Attrs is an attribute list that keeps insertion order. Setting an existing
// key replaces its value in place.
type Attrs struct {
	keys   []string
	values map[string]string
}

// Set coerces value and stores it under key. A nil value, or one that
// coerces to nothing, removes the key.
func (a *Attrs) Set(key string, value any) {
	coerced := Coerce(value, true)
	s, ok := coerced.(string)
	if !ok {
		a.Delete(key)
		return
	}
	a.SetString(key, s)
}

// SetString stores a string value without coercion.
func (a *Attrs) SetString(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (a *Attrs) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is set.
func (a *Attrs) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Delete removes key. Missing keys are ignored.
func (a *Attrs) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	return len(a.keys)
}

// Clone returns an independent copy.
func (a *Attrs) Clone() Attrs {
	c := Attrs{keys: make([]string, len(a.keys))}
	copy(c.keys, a.keys)
	if a.values != nil {
		c.values = make(map[string]string, len(a.values))
		for k, v := range a.values {
			c.values[k] = v
		}
	}
	return c
}
