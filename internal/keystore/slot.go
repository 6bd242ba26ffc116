package keystore

import "errors"

// Slot is a Store narrowed to a single key. It is the only handle the session
// layer gets on durable storage.
type Slot struct {
	store Store
	key   string
}

// Scope returns the slot for key in store.
func Scope(store Store, key string) Slot {
	return Slot{store: store, key: key}
}

// Key returns the slot's key.
func (s Slot) Key() string {
	return s.key
}

// Load returns the stored value, or "" when the slot is empty.
func (s Slot) Load() (string, error) {
	v, err := s.store.Get(s.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Save stores v. Saving "" clears the slot.
func (s Slot) Save(v string) error {
	if v == "" {
		return s.Clear()
	}
	return s.store.Set(s.key, v)
}

// Clear empties the slot.
func (s Slot) Clear() error {
	return s.store.Delete(s.key)
}
