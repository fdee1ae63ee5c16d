// Package checklist owns the tracker state and every operation on it.
//
// A Tracker is the single source of truth: it mutates the state, writes
// the snapshot after each change and then tells subscribers, which
// re-render from Tracker.State. It is not safe for concurrent use; the
// CLI and TUI drive it from one goroutine.
package checklist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/store"
)

// EventKind says what happened.
type EventKind string

const (
	EventToggled        EventKind = "toggled"
	EventSnoozed        EventKind = "snoozed"
	EventCheckAdded     EventKind = "check_added"
	EventIncidentLogged EventKind = "incident_logged"
	EventValidation     EventKind = "validation"
	EventSaveFailed     EventKind = "save_failed"
)

// Level is how a notification should be shown.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Event is a user-facing notification raised after an operation.
type Event struct {
	Kind    EventKind
	Level   Level
	Message string
}

// Listener is called after every operation with the event and the
// resulting state.
type Listener func(Event, model.State)

// Tracker holds the checklists and incident log.
type Tracker struct {
	slot      store.Slot
	key       string
	state     model.State
	clock     duedate.Clock
	newID     func() string
	log       *zap.Logger
	listeners map[int]Listener
	nextSub   int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock pins "now".
func WithClock(c duedate.Clock) Option { return func(t *Tracker) { t.clock = c } }

// WithIDs replaces the uuid generator.
func WithIDs(f func() string) Option { return func(t *Tracker) { t.newID = f } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(t *Tracker) { t.log = l } }

// WithKey changes the slot key.
func WithKey(k string) Option { return func(t *Tracker) { t.key = k } }

func newTracker(slot store.Slot, opts []Option) *Tracker {
	t := &Tracker{
		slot:      slot,
		key:       store.DefaultKey,
		clock:     duedate.SystemClock,
		newID:     uuid.NewString,
		log:       zap.NewNop(),
		listeners: make(map[int]Listener),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Open loads the persisted state from slot. An absent or unreadable
// snapshot is replaced by the seed data; that is logged, never fatal.
func Open(slot store.Slot, opts ...Option) *Tracker {
	t := newTracker(slot, opts)
	s, err := store.Load(slot, t.key, t.Seed)
	switch {
	case err == nil:
		t.log.Debug("state loaded", zap.String("key", t.key))
	case errors.Is(err, store.ErrNotFound):
		t.log.Info("no saved state, using seed data", zap.String("key", t.key))
		s = t.Seed()
	default:
		t.log.Error("failed to load state, using seed data", zap.String("key", t.key), zap.Error(err))
		s = t.Seed()
	}
	t.state = s
	return t
}

// New wraps an existing state without reading the slot.
func New(slot store.Slot, s model.State, opts ...Option) *Tracker {
	t := newTracker(slot, opts)
	t.state = s.Clone()
	return t
}

// Seed builds a fresh copy of the default data.
func (t *Tracker) Seed() model.State {
	return model.Seed(t.clock(), t.newID)
}

// State returns a copy of the current state.
func (t *Tracker) State() model.State { return t.state.Clone() }

// Now is the tracker's clock reading.
func (t *Tracker) Now() time.Time { return t.clock() }

// Today is the local calendar date at midnight.
func (t *Tracker) Today() time.Time { return duedate.Midnight(t.clock()) }

// Subscribe registers l and returns a function that removes it.
func (t *Tracker) Subscribe(l Listener) (unsubscribe func()) {
	id := t.nextSub
	t.nextSub++
	t.listeners[id] = l
	return func() { delete(t.listeners, id) }
}

func (t *Tracker) notify(ev Event) {
	snapshot := t.state.Clone()
	for i := 0; i < t.nextSub; i++ {
		if l, ok := t.listeners[i]; ok {
			l(ev, snapshot)
		}
	}
}

// commit persists the state and then notifies. A failed save is logged
// and reported, but the in-memory change stands.
func (t *Tracker) commit(ev Event) error {
	err := store.Save(t.slot, t.key, t.state)
	t.notify(ev)
	if err != nil {
		t.log.Error("failed to save state", zap.String("key", t.key), zap.Error(err))
		t.notify(Event{Kind: EventSaveFailed, Level: LevelError, Message: "Could not save changes"})
		return err
	}
	return nil
}

func (t *Tracker) find(c model.Category, id string) *model.ChecklistItem {
	items := t.state.Items(c)
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// Toggle flips the completed flag of the check. Unknown ids are ignored;
// changed reports whether anything happened.
func (t *Tracker) Toggle(c model.Category, id string) (changed bool, err error) {
	item := t.find(c, id)
	if item == nil {
		t.log.Debug("toggle: no such check", zap.String("category", string(c)), zap.String("id", id))
		return false, nil
	}
	item.Completed = !item.Completed
	msg := "Marked as outstanding"
	if item.Completed {
		msg = "Check completed"
	}
	t.log.Info("check toggled", zap.String("id", id), zap.Bool("completed", item.Completed))
	return true, t.commit(Event{Kind: EventToggled, Level: LevelSuccess, Message: msg})
}

// Snooze pushes the check's due date forward by days, starting from
// today when it has none. Unknown ids are ignored.
func (t *Tracker) Snooze(c model.Category, id string, days int) (due string, changed bool, err error) {
	item := t.find(c, id)
	if item == nil {
		t.log.Debug("snooze: no such check", zap.String("category", string(c)), zap.String("id", id))
		return "", false, nil
	}
	item.Due = duedate.AddDays(item.Due, days, t.clock())
	t.log.Info("check snoozed", zap.String("id", id), zap.String("due", item.Due), zap.Int("days", days))
	ev := Event{Kind: EventSnoozed, Level: LevelInfo, Message: "Snoozed to " + duedate.Format(item.Due)}
	return item.Due, true, t.commit(ev)
}

// NewCheck is the input to AddCheck.
type NewCheck struct {
	Category  model.Category
	Title     string
	Location  string
	Frequency string
	Owner     string
	Due       string
}

// AddCheck appends a new open check. Title, location and owner are
// required; when one is blank nothing is stored and a *ValidationError is
// returned.
func (t *Tracker) AddCheck(in NewCheck) (model.ChecklistItem, error) {
	if _, ok := model.ParseCategory(string(in.Category)); !ok {
		return model.ChecklistItem{}, fmt.Errorf("%w: %q", ErrUnknownCategory, in.Category)
	}
	item := model.ChecklistItem{
		Title:     strings.TrimSpace(in.Title),
		Location:  strings.TrimSpace(in.Location),
		Frequency: in.Frequency,
		Owner:     strings.TrimSpace(in.Owner),
		Due:       in.Due,
	}
	var missing []string
	if item.Title == "" {
		missing = append(missing, "title")
	}
	if item.Location == "" {
		missing = append(missing, "location")
	}
	if item.Owner == "" {
		missing = append(missing, "owner")
	}
	if len(missing) > 0 {
		t.notify(Event{Kind: EventValidation, Level: LevelError, Message: "Fill in all required fields"})
		return model.ChecklistItem{}, &ValidationError{Fields: missing}
	}

	item.ID = fmt.Sprintf("%s-%s", in.Category, t.newID())
	t.state.SetItems(in.Category, append(t.state.Items(in.Category), item))
	t.log.Info("check added", zap.String("category", string(in.Category)), zap.String("id", item.ID))
	return item, t.commit(Event{Kind: EventCheckAdded, Level: LevelSuccess, Message: "New check added"})
}

// NewIncident is the input to AddIncident.
type NewIncident struct {
	Category    string
	Severity    string
	Location    string
	Description string
}

// AddIncident logs an incident at the top of the log. Unlike AddCheck it
// performs no required-field validation.
func (t *Tracker) AddIncident(in NewIncident) (model.Incident, error) {
	inc := t.incident(in)
	return inc, t.commit(Event{Kind: EventIncidentLogged, Level: LevelInfo, Message: "Incident recorded"})
}

// QuickLog records a medium-severity health incident from a description
// alone. Blank descriptions are ignored.
func (t *Tracker) QuickLog(description string) (inc model.Incident, logged bool, err error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Incident{}, false, nil
	}
	inc = t.incident(NewIncident{
		Category:    model.Health.Label(),
		Severity:    model.SeverityMedium,
		Location:    "Not specified",
		Description: description,
	})
	return inc, true, t.commit(Event{Kind: EventIncidentLogged, Level: LevelInfo, Message: "Quick log captured"})
}

func (t *Tracker) incident(in NewIncident) model.Incident {
	inc := model.Incident{
		ID:          t.newID(),
		Category:    in.Category,
		Severity:    in.Severity,
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		ReportedOn:  duedate.ISO(t.clock()),
		Status:      model.StatusLogged,
	}
	t.state.Incidents = append([]model.Incident{inc}, t.state.Incidents...)
	t.log.Info("incident logged", zap.String("id", inc.ID), zap.String("category", inc.Category), zap.String("severity", inc.Severity))
	return inc
}
