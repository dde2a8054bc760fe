package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdjustmentArgs(t *testing.T) {
	adj, err := ParseAdjustmentArgs([]string{"111", "222", "-500"})
	require.NoError(t, err)
	assert.Equal(t, AdjustmentArgs{GuildID: 111, DiscordID: 222, Delta: -500}, adj)
}

func TestParseAdjustmentArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"too few", []string{"1", "2"}, "usage"},
		{"bad guild", []string{"guild", "2", "3"}, "invalid guild ID"},
		{"bad user", []string{"1", "user", "3"}, "invalid user ID"},
		{"bad amount", []string{"1", "2", "lots"}, "invalid amount"},
		{"zero", []string{"1", "2", "0"}, "must not be zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAdjustmentArgs(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMigrate_UnknownCommand(t *testing.T) {
	err := Migrate([]string{"sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")

	require.Error(t, Migrate(nil))
}
