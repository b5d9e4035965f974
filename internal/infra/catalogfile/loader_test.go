//go:build unit

package catalogfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"dorm-services/internal/domain/space"
	"dorm-services/internal/infra/catalogfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCatalog = `
spaces:
  - id: ROOM_A
    name: 스터디룸 A
    capacity: 2
  - id: LOUNGE
    name: 라운지
    capacity: 6
timeSlots:
  - "18:00-19:00"
  - "19:00-20:00"
`

func TestParse(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		catalog, err := catalogfile.Parse([]byte(validCatalog))
		require.NoError(t, err)

		assert.Len(t, catalog.Spaces(), 2)
		lounge, ok := catalog.Space("LOUNGE")
		require.True(t, ok)
		assert.Equal(t, 6, lounge.Capacity())
		assert.Equal(t, []string{"18:00-19:00", "19:00-20:00"}, catalog.TimeSlots())
	})

	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "zero capacity", input: "spaces: [{id: A, name: a, capacity: 0}]\ntimeSlots: [\"09:00-10:00\"]", errIs: space.ErrInvalidCapacity},
		{name: "no time slots", input: "spaces: [{id: A, name: a, capacity: 1}]", errIs: space.ErrNoTimeSlots},
		{name: "no spaces", input: "timeSlots: [\"09:00-10:00\"]", errIs: space.ErrNoSpaces},
		{name: "duplicate space", input: "spaces: [{id: A, name: a, capacity: 1}, {id: A, name: b, capacity: 1}]\ntimeSlots: [\"09:00-10:00\"]", errIs: space.ErrDuplicateSpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalogfile.Parse([]byte(tt.input))
			assert.ErrorIs(t, err, tt.errIs)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := catalogfile.Parse([]byte("spaces: ["))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path keeps the default catalog", func(t *testing.T) {
		catalog, err := catalogfile.Load("")
		require.NoError(t, err)
		assert.Len(t, catalog.TimeSlots(), 12)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o600))

		catalog, err := catalogfile.Load(path)
		require.NoError(t, err)
		_, ok := catalog.Space("LOUNGE")
		assert.True(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalogfile.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
