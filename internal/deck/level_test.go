package deck_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hzcli/internal/deck"
	"hzcli/internal/services"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"-1", -1, false},
		{"0", 0, false},
		{" 10 ", 10, false},
		{"11", 0, true},
		{"-2", 0, true},
		{"high", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := deck.ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, services.ErrArgument)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLevelAdjustmentBounds(t *testing.T) {
	require.Equal(t, 10, deck.LevelUp(10))
	require.Equal(t, 10, deck.LevelUp(9))
	require.Equal(t, 0, deck.LevelUp(deck.LevelUnset))
	require.Equal(t, 0, deck.LevelDown(0))
	require.Equal(t, 0, deck.LevelDown(deck.LevelUnset))
	require.Equal(t, 4, deck.LevelDown(5))
}

func TestValidateLevel(t *testing.T) {
	require.NoError(t, deck.ValidateLevel(-1))
	require.NoError(t, deck.ValidateLevel(10))
	require.ErrorIs(t, deck.ValidateLevel(11), services.ErrArgument)
	require.ErrorIs(t, deck.ValidateLevel(-2), services.ErrArgument)
}

func TestLevelFilter(t *testing.T) {
	words := map[string]deck.Word{
		"a": {Level: deck.LevelUnset},
		"b": {Level: 0},
		"c": {Level: 3},
	}

	require.Len(t, deck.AnyLevel().Apply(words), 3)
	require.Equal(t, []string{"b"}, deck.SortedHeadwords(deck.ExactLevel(0).Apply(words)))
	require.Equal(t, []string{"a"}, deck.SortedHeadwords(deck.ExactLevel(deck.LevelUnset).Apply(words)))
	require.Empty(t, deck.ExactLevel(7).Apply(words))
}
