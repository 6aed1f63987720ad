package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkops/events-backend/pkg/database/dbtest"
)

func TestLoadFixture_Bundled(t *testing.T) {
	f, err := LoadFixture(filepath.Join("..", "..", "data", "seed.yaml"))
	require.NoError(t, err)
	assert.Len(t, f.Parks, 4)
	require.Len(t, f.Volunteers, 4)
	assert.Equal(t, "active", f.Volunteers[0].Status, "status defaults to active")
	assert.Equal(t, "inactive", f.Volunteers[3].Status)
	assert.Equal(t, "555-0101", f.Volunteers[0].Phone)
}

func TestParseFixture_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", "parks: []\n", ErrNoData},
		{"park without name", "parks:\n  - address: x\n", ErrParkMissingName},
		{"volunteer without name", "volunteers:\n  - email: a@b.c\n", ErrVolunteerNoName},
		{"bad status", "volunteers:\n  - full_name: A\n    status: retired\n", ErrVolunteerBadStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseFixture([]byte("parks: [unclosed"))
	assert.Error(t, err)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFixtureApply_Idempotent(t *testing.T) {
	pool := dbtest.Postgres(t)
	ctx := context.Background()
	f, err := ParseFixture([]byte("parks:\n  - name: Parque Central\n  - name: Bosque Norte\nvolunteers:\n  - full_name: Marta\n"))
	require.NoError(t, err)

	parks, volunteers, err := f.Apply(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), parks)
	assert.Equal(t, int64(1), volunteers)

	parks, volunteers, err = f.Apply(ctx, pool)
	require.NoError(t, err)
	assert.Zero(t, parks)
	assert.Zero(t, volunteers)
}
