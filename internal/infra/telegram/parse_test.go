package telegram

import (
	"testing"

	"birthday_notification_bot/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestParseSignupArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		day       int
		month     int
		year      int
		wantYear  bool
		wantError bool
	}{
		{name: "day and month", args: []string{"15", "3"}, day: 15, month: 3},
		{name: "with year", args: []string{"15", "3", "1990"}, day: 15, month: 3, year: 1990, wantYear: true},
		{name: "slash form", args: []string{"29/02/2000"}, day: 29, month: 2, year: 2000, wantYear: true},
		{name: "dot form", args: []string{"1.12"}, day: 1, month: 12},
		{name: "out of range is left to the service", args: []string{"40", "13"}, day: 40, month: 13},
		{name: "too few", args: []string{"15"}, wantError: true},
		{name: "too many", args: []string{"1", "2", "3", "4"}, wantError: true},
		{name: "not a number", args: []string{"fifteen", "3"}, wantError: true},
		{name: "empty", args: nil, wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSignupArgs(tt.args)
			if tt.wantError {
				require.ErrorIs(t, err, domain.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.day, got.Day)
			require.Equal(t, tt.month, got.Month)
			if tt.wantYear {
				require.NotNil(t, got.Year)
				require.Equal(t, tt.year, *got.Year)
			} else {
				require.Nil(t, got.Year)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage(nil)
	require.NoError(t, err)
	require.Equal(t, 1, page)

	page, err = ParsePage([]string{"3"})
	require.NoError(t, err)
	require.Equal(t, 3, page)

	_, err = ParsePage([]string{"two"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = ParsePage([]string{"1", "2"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestParseDestination(t *testing.T) {
	id, err := ParseDestination(nil, -100)
	require.NoError(t, err)
	require.Equal(t, int64(-100), id)

	id, err = ParseDestination([]string{"-1001234567890"}, -100)
	require.NoError(t, err)
	require.Equal(t, int64(-1001234567890), id)

	_, err = ParseDestination([]string{"general"}, -100)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = ParseDestination([]string{"0"}, -100)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}
