package planner

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesLoadOnLogin(t *testing.T) {
	env := newTestEnv(t)
	env.docs.setDoc("uid-ana", "userPreferences", []byte(
		`{"cuisines":["Thai","Italian"],"dietaryRestrictions":["Vegan"],"healthGoals":["Heart Health"]}`))

	env.login(t, "ana@example.com")

	got := env.app.Preferences.Snapshot()
	assert.Equal(t, []string{"Thai", "Italian"}, got.Cuisines)
	assert.Equal(t, []string{"Vegan"}, got.DietaryRestrictions)
	assert.Equal(t, []string{"Heart Health"}, got.HealthGoals)
}

func TestPreferencesMissingDocumentDefaultsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ana@example.com")

	got := env.app.Preferences.Snapshot()
	assert.Empty(t, got.Cuisines)
	assert.Empty(t, got.DietaryRestrictions)
	assert.Empty(t, got.HealthGoals)
}

func TestPreferencesBurstCoalescesIntoOneWrite(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ana@example.com")

	env.app.Preferences.SetCuisines([]string{"Thai"})
	env.app.Preferences.SetCuisines([]string{"Thai", "Italian"})
	env.app.Preferences.SetCuisines([]string{"Thai", "Italian", "Mexican"})
	settle()

	require.Equal(t, 1, env.docs.putCount("uid-ana", "userPreferences"),
		"rapid edits inside the quiet period must produce one remote write")

	var doc PreferenceSet
	require.NoError(t, json.Unmarshal(env.docs.doc("uid-ana", "userPreferences"), &doc))
	assert.Equal(t, []string{"Thai", "Italian", "Mexican"}, doc.Cuisines,
		"the write must carry the state at fire time")
}

func TestPreferencesSnapshotImmediatelyReflectsEdits(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ana@example.com")

	env.app.Preferences.SetHealthGoals([]string{"Low Carb"})
	// No settle: reads never wait for the remote write.
	assert.Equal(t, []string{"Low Carb"}, env.app.Preferences.Snapshot().HealthGoals)
}

func TestPreferencesSnapshotDoesNotAliasStore(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ana@example.com")
	env.app.Preferences.SetCuisines([]string{"Thai"})

	snap := env.app.Preferences.Snapshot()
	snap.Cuisines[0] = "tampered"
	assert.Equal(t, []string{"Thai"}, env.app.Preferences.Snapshot().Cuisines)
}

func TestPreferencesReloadFailureKeepsLocalState(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ana@example.com")
	env.app.Preferences.SetCuisines([]string{"Korean"})
	settle()

	env.docs.failNextGets(1)
	err := env.app.Preferences.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Korean"}, env.app.Preferences.Snapshot().Cuisines,
		"a failed reload must not clobber local state")
}

func TestLogoutDiscardsPendingPreferenceWrite(t *testing.T) {
	// A wide quiet window keeps the timer from firing before Logout runs.
	env := newTestEnv(t, func(cfg *Config) { cfg.QuietPeriod = 300 * time.Millisecond })
	env.login(t, "ana@example.com")

	env.app.Preferences.SetCuisines([]string{"French"})
	env.app.Session.Logout(context.Background())
	time.Sleep(500 * time.Millisecond)

	assert.Zero(t, env.docs.putCount("uid-ana", "userPreferences"),
		"teardown cancels the pending write rather than flushing it")
	assert.Empty(t, env.app.Preferences.Snapshot().Cuisines)
}

func TestPreferencesIdentityIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.login(t, "ana@example.com")
	env.app.Preferences.SetCuisines([]string{"Thai"})
	settle()

	env.app.Session.Logout(ctx)
	_, err := env.app.Session.Login(ctx, "ben@example.com", "pw")
	require.NoError(t, err)

	got := env.app.Preferences.Snapshot()
	assert.Empty(t, got.Cuisines, "a new identity must never observe the previous one's data")
}

func TestAnonymousEditsStayLocal(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.app.Start(context.Background()))

	env.app.Preferences.SetCuisines([]string{"Italian"})
	settle()

	assert.Equal(t, []string{"Italian"}, env.app.Preferences.Snapshot().Cuisines)
	assert.Zero(t, env.docs.putCount("", "userPreferences"))
	assert.Zero(t, env.docs.putCount("uid-ana", "userPreferences"))
}
