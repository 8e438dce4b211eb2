package timezones

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primaryOf(t *testing.T, app *App, userID int) string {
	t.Helper()
	tzs, err := app.ListByUser(context.Background(), userID)
	require.NoError(t, err)

	var name string
	count := 0
	for _, tz := range tzs {
		if tz.IsPrimary {
			name = tz.Name
			count++
		}
	}
	require.LessOrEqual(t, count, 1, "at most one primary timezone per user")
	return name
}

func TestApp_CreatePrimaryDemotesPrevious(t *testing.T) {
	ctx := context.Background()
	app := NewApp(NewMemRepository())

	_, err := app.Create(ctx, CreateTimezoneRequest{UserID: 1, Name: "London", Timezone: "Europe/London", IsPrimary: true})
	require.NoError(t, err)
	_, err = app.Create(ctx, CreateTimezoneRequest{UserID: 1, Name: "Tokyo", Timezone: "Asia/Tokyo", IsPrimary: true})
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", primaryOf(t, app, 1))
}

func TestApp_SetPrimary(t *testing.T) {
	ctx := context.Background()
	app := NewApp(NewMemRepository())

	london, err := app.Create(ctx, CreateTimezoneRequest{UserID: 1, Name: "London", Timezone: "Europe/London", IsPrimary: true})
	require.NoError(t, err)
	tokyo, err := app.Create(ctx, CreateTimezoneRequest{UserID: 1, Name: "Tokyo", Timezone: "Asia/Tokyo"})
	require.NoError(t, err)

	require.NoError(t, app.SetPrimary(ctx, tokyo.ID, 1))
	assert.Equal(t, "Tokyo", primaryOf(t, app, 1))

	// Another user's id must not flip this user's rows.
	require.NoError(t, app.SetPrimary(ctx, london.ID, 99))
	assert.Equal(t, "Tokyo", primaryOf(t, app, 1))
}

func TestApp_DeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	app := NewApp(NewMemRepository())

	tz, err := app.Create(ctx, CreateTimezoneRequest{UserID: 1, Name: "London", Timezone: "Europe/London"})
	require.NoError(t, err)

	require.NoError(t, app.Delete(ctx, tz.ID, 2))
	tzs, err := app.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, tzs, 1, "another user's delete is a no-op")

	require.NoError(t, app.Delete(ctx, tz.ID, 1))
	tzs, err = app.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tzs)
}

func TestApp_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	app := NewApp(NewMemRepository())

	require.NoError(t, app.SeedDefaults(ctx, 1))

	tzs, err := app.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, tzs, 4)
	assert.Equal(t, "New York", primaryOf(t, app, 1))
}
