// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"testing"
	"time"
)

func TestSeasonForMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.November, SeasonAutumn},
		{time.December, SeasonWinter},
	}

	for _, tt := range tests {
		if got := SeasonForMonth(tt.month); got != tt.want {
			t.Errorf("SeasonForMonth(%v) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestSeasonTable_Matches(t *testing.T) {
	t.Parallel()

	table := NewSeasonTable([]SeasonRule{
		{Season: "Winter", Categories: []string{" Outerwear ", ""}},
		{Months: []time.Month{time.December}, Categories: []string{"gifts"}},
	})

	tests := []struct {
		name     string
		category string
		month    time.Month
		season   string
		want     bool
	}{
		{"season match", "outerwear", time.January, SeasonWinter, true},
		{"case insensitive", "OUTERWEAR", time.January, "WINTER", true},
		{"wrong season", "outerwear", time.July, SeasonSummer, false},
		{"month match", "gifts", time.December, SeasonWinter, true},
		{"month mismatch", "gifts", time.January, SeasonWinter, false},
		{"unlisted category", "books", time.December, SeasonWinter, false},
		{"empty category", "", time.December, SeasonWinter, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := table.Bonus(tt.category, tt.month, tt.season) > 0; got != tt.want {
				t.Errorf("Bonus(%q, %v, %q) > 0 = %v, want %v", tt.category, tt.month, tt.season, got, tt.want)
			}
		})
	}
}

func TestSeasonTable_Bonus(t *testing.T) {
	t.Parallel()

	table := NewSeasonTable([]SeasonRule{
		{Season: SeasonWinter, Categories: []string{"outerwear"}},
		{Months: []time.Month{time.December}, Categories: []string{"outerwear"}, Bonus: 0.25},
	})

	if got := table.Bonus("outerwear", time.January, SeasonWinter); got != DefaultSeasonalBonus {
		t.Errorf("Bonus(january) = %v, want %v", got, DefaultSeasonalBonus)
	}
	if got := table.Bonus("outerwear", time.December, SeasonWinter); got != 0.25 {
		t.Errorf("Bonus(december) = %v, want 0.25 (largest matching rule)", got)
	}
	if got := table.Bonus("outerwear", time.July, SeasonSummer); got != 0 {
		t.Errorf("Bonus(july) = %v, want 0", got)
	}
}

func TestNewSeasonTable_Empty(t *testing.T) {
	t.Parallel()

	if NewSeasonTable(nil).Bonus("outdoor", time.July, SeasonSummer) != 0 {
		t.Error("empty table should never match")
	}
}
