package store

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/safety360/internal/model"
)

var now = time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)

func seed() model.State {
	n := 0
	return model.Seed(now, func() string {
		n++
		return "seed-" + strconv.Itoa(n)
	})
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(NewMemory(), DefaultKey, seed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(DefaultKey, []byte("{not json")))

	_, err := Load(m, DefaultKey, seed)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, DefaultKey, le.Key)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type brokenSlot struct{ Memory }

func (*brokenSlot) Get(string) ([]byte, error) { return nil, errors.New("disk on fire") }

func TestLoadReadFailure(t *testing.T) {
	_, err := Load(&brokenSlot{}, DefaultKey, seed)
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestRoundTrip(t *testing.T) {
	m := NewMemory()
	want := seed()
	want.Checks.Fire[1].Completed = true
	want.Checks.Health = append(want.Checks.Health, model.ChecklistItem{
		ID: "health-x", Title: "Ladder check", Frequency: "Monthly",
		Location: "Loading bay", Owner: "Sam Reid",
	})

	require.NoError(t, Save(m, DefaultKey, want))
	got, err := Load(m, DefaultKey, func() model.State {
		t.Fatal("seed must not be consulted for a complete snapshot")
		return model.State{}
	})
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripEmptyLists(t *testing.T) {
	m := NewMemory()
	require.NoError(t, Save(m, DefaultKey, model.State{}))

	got, err := Load(m, DefaultKey, seed)
	require.NoError(t, err)
	if diff := cmp.Diff(model.State{}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("empty state should stay empty (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFallsBackPerField(t *testing.T) {
	m := NewMemory()
	doc := `{"checks":{"health":[{"id":"H-9","title":"Only one","frequency":"Daily","location":"Lab","owner":"Kim","due":"2024-02-01","completed":false}]}}`
	require.NoError(t, m.Set(DefaultKey, []byte(doc)))

	got, err := Load(m, DefaultKey, seed)
	require.NoError(t, err)

	want := seed()
	assert.Equal(t, []model.ChecklistItem{{
		ID: "H-9", Title: "Only one", Frequency: "Daily", Location: "Lab",
		Owner: "Kim", Due: "2024-02-01",
	}}, got.Checks.Health)
	assert.Equal(t, want.Checks.Fire, got.Checks.Fire)
	assert.Equal(t, want.Incidents, got.Incidents)
}

func TestLoadNullFieldsFallBack(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(DefaultKey, []byte(`{"checks":null,"incidents":[]}`)))

	got, err := Load(m, DefaultKey, seed)
	require.NoError(t, err)
	assert.Len(t, got.Checks.Health, 4)
	assert.Len(t, got.Checks.Fire, 4)
	assert.Empty(t, got.Incidents)
	assert.NotNil(t, got.Incidents)
}

func TestLoadPassesMalformedItemsThrough(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(DefaultKey, []byte(`{"checks":{"health":[{"id":"","due":"someday"}],"fire":[]},"incidents":[]}`)))

	got, err := Load(m, DefaultKey, seed)
	require.NoError(t, err)
	require.Len(t, got.Checks.Health, 1)
	assert.Equal(t, "someday", got.Checks.Health[0].Due)
}

func TestSaveWriteFailure(t *testing.T) {
	m := NewMemory()
	m.FailWrites = errors.New("read-only")
	err := Save(m, DefaultKey, seed())
	assert.ErrorContains(t, err, "read-only")
}
