package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityKey(t *testing.T) {
	key, err := NewEntityKey(KindDriver, "D42")
	require.NoError(t, err)
	assert.Equal(t, "driver:d42", key.String())

	key, err = NewEntityKey(KindRider, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "user:alice", key.String())
}

func TestNewEntityKeyInvalid(t *testing.T) {
	_, err := NewEntityKey(EntityKind("robot"), "r1")
	require.Error(t, err)

	_, err = NewEntityKey(KindDriver, "   ")
	require.Error(t, err)
}

func TestParseEntityKind(t *testing.T) {
	cases := []struct {
		input string
		want  EntityKind
	}{
		{"driver", KindDriver},
		{"DRIVER", KindDriver},
		{"user", KindRider},
		{"rider", KindRider},
	}
	for _, tc := range cases {
		kind, err := ParseEntityKind(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, kind)
	}

	_, err := ParseEntityKind("machine")
	require.Error(t, err)
}
