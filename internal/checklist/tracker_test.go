package checklist

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/store"
)

var now = time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC)

func ids() func() string {
	n := 0
	return func() string {
		n++
		return "id" + strconv.Itoa(n)
	}
}

func newTestTracker(t *testing.T, slot store.Slot) *Tracker {
	t.Helper()
	return Open(slot, WithClock(func() time.Time { return now }), WithIDs(ids()))
}

func saved(t *testing.T, m *store.Memory) model.State {
	t.Helper()
	s, err := store.Load(m, store.DefaultKey, func() model.State {
		t.Fatal("saved state incomplete")
		return model.State{}
	})
	require.NoError(t, err)
	return s
}

func TestOpenEmptySlotUsesSeed(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())
	s := tr.State()
	assert.Len(t, s.Checks.Health, 4)
	assert.Len(t, s.Checks.Fire, 4)
	assert.Len(t, s.Incidents, 2)
}

func TestOpenCorruptSlotUsesSeed(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.Set(store.DefaultKey, []byte("<<<")))
	tr := newTestTracker(t, m)
	assert.Equal(t, "H-001", tr.State().Checks.Health[0].ID)
}

func TestOpenPartialSnapshot(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.Set(store.DefaultKey, []byte(`{"checks":{"health":[{"id":"H-77","title":"Defib pads","frequency":"Monthly","location":"Gym","owner":"Jo","completed":true}]}}`)))

	s := newTestTracker(t, m).State()
	assert.Equal(t, []model.ChecklistItem{{ID: "H-77", Title: "Defib pads", Frequency: "Monthly", Location: "Gym", Owner: "Jo", Completed: true}}, s.Checks.Health)
	assert.Len(t, s.Checks.Fire, 4)
	require.Len(t, s.Incidents, 2)
	assert.Equal(t, "Breakout space", s.Incidents[0].Location)
}

func TestStateIsACopy(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())
	s := tr.State()
	s.Checks.Health[0].Completed = true
	assert.False(t, tr.State().Checks.Health[0].Completed)
}

func TestToggleTwiceRestores(t *testing.T) {
	m := store.NewMemory()
	tr := newTestTracker(t, m)
	before := tr.State().Checks.Fire[2]

	changed, err := tr.Toggle(model.Fire, before.ID)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, !before.Completed, saved(t, m).Checks.Fire[2].Completed)

	_, err = tr.Toggle(model.Fire, before.ID)
	require.NoError(t, err)
	assert.Equal(t, before, tr.State().Checks.Fire[2])
	assert.Equal(t, before, saved(t, m).Checks.Fire[2])
}

func TestToggleUnknownIsNoop(t *testing.T) {
	m := store.NewMemory()
	tr := newTestTracker(t, m)
	var events []Event
	tr.Subscribe(func(ev Event, _ model.State) { events = append(events, ev) })

	changed, err := tr.Toggle(model.Health, "F-001")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tr.Toggle("electrical", "H-001")
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Empty(t, events)
	_, err = m.Get(store.DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound, "nothing should be persisted")
}

func TestSnoozeIsAdditive(t *testing.T) {
	a := newTestTracker(t, store.NewMemory())
	b := newTestTracker(t, store.NewMemory())

	_, _, err := a.Snooze(model.Health, "H-002", 3)
	require.NoError(t, err)
	due, _, err := a.Snooze(model.Health, "H-002", 4)
	require.NoError(t, err)

	want, changed, err := b.Snooze(model.Health, "H-002", 7)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, want, due)
	assert.Equal(t, "2024-02-09", due)
}

func TestSnoozeWithoutDueStartsToday(t *testing.T) {
	tr := New(store.NewMemory(), model.State{Checks: model.Checks{
		Health: []model.ChecklistItem{{ID: "h", Title: "x", Location: "y", Owner: "z"}},
	}}, WithClock(func() time.Time { return now }))

	due, changed, err := tr.Snooze(model.Health, "h", 3)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "2024-01-08", due)
}

func TestSnoozeUnknownIsNoop(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())
	before := tr.State()
	_, changed, err := tr.Snooze(model.Fire, "nope", 3)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, tr.State())
}

func TestAddCheckRejectsBlankOwner(t *testing.T) {
	m := store.NewMemory()
	tr := newTestTracker(t, m)
	before := tr.State()
	var events []Event
	tr.Subscribe(func(ev Event, _ model.State) { events = append(events, ev) })

	_, err := tr.AddCheck(NewCheck{
		Category: model.Health, Title: "Eyewash station", Location: "Lab 2",
		Frequency: "Weekly", Owner: "   ",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"owner"}, ve.Fields)
	assert.Equal(t, before, tr.State())
	require.Len(t, events, 1)
	assert.Equal(t, EventValidation, events[0].Kind)
	assert.Equal(t, LevelError, events[0].Level)

	_, err = m.Get(store.DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddCheckRejectsUnknownCategory(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())
	_, err := tr.AddCheck(NewCheck{Category: "electrical", Title: "a", Location: "b", Owner: "c"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestAddCheck(t *testing.T) {
	m := store.NewMemory()
	tr := newTestTracker(t, m)
	var got []model.State
	tr.Subscribe(func(_ Event, s model.State) { got = append(got, s) })

	item, err := tr.AddCheck(NewCheck{
		Category: model.Fire, Title: "  Hose reel check ", Location: "Yard",
		Frequency: "Monthly", Owner: "Dee", Due: "2024-01-20",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ChecklistItem{
		ID: "fire-id3", Title: "Hose reel check", Frequency: "Monthly",
		Location: "Yard", Owner: "Dee", Due: "2024-01-20",
	}, item)

	fire := tr.State().Checks.Fire
	require.Len(t, fire, 5)
	assert.Equal(t, item, fire[4])
	assert.Equal(t, item, saved(t, m).Checks.Fire[4])
	require.Len(t, got, 1)
	assert.Len(t, got[0].Checks.Fire, 5)
}

func TestAddIncidentPrependsWithoutValidation(t *testing.T) {
	m := store.NewMemory()
	tr := newTestTracker(t, m)

	inc, err := tr.AddIncident(NewIncident{Category: "Fire", Severity: "high"})
	require.NoError(t, err)
	assert.Equal(t, model.Incident{
		ID: "id3", Category: "Fire", Severity: "high",
		ReportedOn: "2024-01-05", Status: "Logged",
	}, inc)

	s := tr.State()
	require.Len(t, s.Incidents, 3)
	assert.Equal(t, inc, s.Incidents[0])
	assert.Equal(t, inc, saved(t, m).Incidents[0])
}

func TestQuickLog(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())

	_, logged, err := tr.QuickLog("   ")
	require.NoError(t, err)
	assert.False(t, logged)
	assert.Len(t, tr.State().Incidents, 2)

	inc, logged, err := tr.QuickLog(" Trailing cable by door ")
	require.NoError(t, err)
	assert.True(t, logged)
	assert.Equal(t, "Health", inc.Category)
	assert.Equal(t, "medium", inc.Severity)
	assert.Equal(t, "Not specified", inc.Location)
	assert.Equal(t, "Trailing cable by door", inc.Description)
	assert.Equal(t, inc, tr.State().Incidents[0])
}

func TestSaveFailureKeepsChange(t *testing.T) {
	m := store.NewMemory()
	tr := newTestTracker(t, m)
	m.FailWrites = errors.New("disk full")
	var kinds []EventKind
	tr.Subscribe(func(ev Event, _ model.State) { kinds = append(kinds, ev.Kind) })

	changed, err := tr.Toggle(model.Health, "H-001")
	assert.True(t, changed)
	assert.ErrorContains(t, err, "disk full")
	assert.True(t, tr.State().Checks.Health[0].Completed)
	assert.Equal(t, []EventKind{EventToggled, EventSaveFailed}, kinds)
}

func TestUnsubscribe(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())
	calls := 0
	stop := tr.Subscribe(func(Event, model.State) { calls++ })
	_, _ = tr.Toggle(model.Health, "H-001")
	stop()
	_, _ = tr.Toggle(model.Health, "H-001")
	assert.Equal(t, 1, calls)
}

func TestEventMessages(t *testing.T) {
	tr := newTestTracker(t, store.NewMemory())
	var msgs []string
	tr.Subscribe(func(ev Event, _ model.State) { msgs = append(msgs, ev.Message) })

	_, _ = tr.Toggle(model.Health, "H-001")
	_, _ = tr.Toggle(model.Health, "H-001")
	_, _, _ = tr.Snooze(model.Health, "H-001", 3)

	assert.Equal(t, []string{"Check completed", "Marked as outstanding", "Snoozed to 10 Jan 2024"}, msgs)
}
