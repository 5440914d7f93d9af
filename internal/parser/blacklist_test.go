package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklist_FullStringMatch(t *testing.T) {
	t.Parallel()

	b := NewBlacklist([]string{"Лист*"})

	assert.True(t, b.Matches("Лист"))
	assert.True(t, b.Matches("Лист стальной 2мм"))
	assert.False(t, b.Matches("Нижний Лист")) // not a substring match
}

func TestBlacklist_QuestionMark(t *testing.T) {
	t.Parallel()

	b := NewBlacklist([]string{"Корпус ?"})

	assert.True(t, b.Matches("Корпус А"))
	assert.False(t, b.Matches("Корпус АБ"))
	assert.False(t, b.Matches("Корпус"))
}

func TestBlacklist_CaseSensitive(t *testing.T) {
	t.Parallel()

	b := NewBlacklist([]string{"Схема*"})

	assert.True(t, b.Matches("Схема подключения"))
	assert.False(t, b.Matches("схема подключения"))
}

func TestBlacklist_Empty(t *testing.T) {
	t.Parallel()

	b := NewBlacklist(nil)
	assert.False(t, b.Matches("Лист"))
	assert.Equal(t, 0, b.Len())
}

func TestBlacklist_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	patterns := []string{"Лист*"}
	b := NewBlacklist(patterns)
	patterns[0] = "Корпус*"

	assert.True(t, b.Matches("Лист стальной"))
	assert.False(t, b.Matches("Корпус"))
}

func TestBlacklist_MalformedPatternNeverMatches(t *testing.T) {
	t.Parallel()

	b := NewBlacklist([]string{"[унзакрытый"})
	assert.False(t, b.Matches("условный"))
}
