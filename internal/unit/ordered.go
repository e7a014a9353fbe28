package unit

import "slices"

// ordered is a string-keyed map that remembers insertion order. Replacing
// the value of an existing key keeps its position.
type ordered struct {
	keys []string
	vals map[string]*Unit
}

func newOrdered() *ordered {
	return &ordered{vals: make(map[string]*Unit)}
}

func (o *ordered) get(key string) (*Unit, bool) {
	u, ok := o.vals[key]
	return u, ok
}

func (o *ordered) set(key string, u *Unit) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = u
}

func (o *ordered) delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
}

func (o *ordered) clone() *ordered {
	vals := make(map[string]*Unit, len(o.vals))
	for k, v := range o.vals {
		vals[k] = v
	}
	return &ordered{keys: slices.Clone(o.keys), vals: vals}
}

func (o *ordered) entries() []Entry {
	out := make([]Entry, len(o.keys))
	for i, k := range o.keys {
		out[i] = Entry{Key: k, Unit: o.vals[k]}
	}
	return out
}
