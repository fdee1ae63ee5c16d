// Package store persists tracker state in a durable key-value slot.
//
// The whole State is written as one JSON document under a fixed key after
// every mutation and read back at startup. Load never substitutes data on
// its own: it reports ErrNotFound or a *LoadError and the caller picks the
// fallback.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Makepad-fr/safety360/internal/model"
)

// DefaultKey is the slot the tracker state lives under.
const DefaultKey = "safety360-state-v1"

// ErrNotFound is returned by a Slot when the key holds no value.
var ErrNotFound = errors.New("store: key not found")

// Slot is a durable key-value cell.
type Slot interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// LoadError reports a persisted document that could not be read or parsed.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// document mirrors the persisted shape with pointers, so a field that is
// absent (or null) can be told apart from an empty list.
type document struct {
	Checks *struct {
		Health *[]model.ChecklistItem `json:"health"`
		Fire   *[]model.ChecklistItem `json:"fire"`
	} `json:"checks"`
	Incidents *[]model.Incident `json:"incidents"`
}

// Load reads the state stored under key. Fields missing from the stored
// document are filled from seed(), which lets older or partial snapshots
// load. Item contents are not validated.
func Load(slot Slot, key string, seed func() model.State) (model.State, error) {
	b, err := slot.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.State{}, ErrNotFound
		}
		return model.State{}, &LoadError{Key: key, Err: err}
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return model.State{}, &LoadError{Key: key, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	return doc.reconcile(seed), nil
}

func (d document) reconcile(seed func() model.State) model.State {
	var (
		out      model.State
		fallback *model.State
	)
	base := func() model.State {
		if fallback == nil {
			s := seed()
			fallback = &s
		}
		return *fallback
	}
	if d.Checks != nil && d.Checks.Health != nil {
		out.Checks.Health = *d.Checks.Health
	} else {
		out.Checks.Health = base().Checks.Health
	}
	if d.Checks != nil && d.Checks.Fire != nil {
		out.Checks.Fire = *d.Checks.Fire
	} else {
		out.Checks.Fire = base().Checks.Fire
	}
	if d.Incidents != nil {
		out.Incidents = *d.Incidents
	} else {
		out.Incidents = base().Incidents
	}
	return out
}

// Save writes the whole state under key.
func Save(slot Slot, key string, s model.State) error {
	b, err := json.MarshalIndent(normalize(s), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := slot.Set(key, b); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// normalize writes empty sequences as [] rather than null, so a saved
// empty list is not mistaken for a missing field on the next load.
func normalize(s model.State) model.State {
	if s.Checks.Health == nil {
		s.Checks.Health = []model.ChecklistItem{}
	}
	if s.Checks.Fire == nil {
		s.Checks.Fire = []model.ChecklistItem{}
	}
	if s.Incidents == nil {
		s.Incidents = []model.Incident{}
	}
	return s
}
