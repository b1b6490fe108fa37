// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"strings"
	"time"
)

// Season names.
const (
	SeasonWinter = "winter"
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
)

// DefaultSeasonalBonus is awarded by rules that do not set their own bonus.
const DefaultSeasonalBonus = 0.1

// SeasonalPolicy returns the seasonal bonus for a category, or 0 when the
// category is out of season.
type SeasonalPolicy interface {
	Bonus(category string, month time.Month, season string) float64
}

// SeasonRule marks categories as seasonal for a season or a set of months.
// A rule matches when either its Season equals the request season or the
// request month is listed in Months.
type SeasonRule struct {
	Season     string       `koanf:"season" json:"season"`
	Months     []time.Month `koanf:"months" json:"months"`
	Categories []string     `koanf:"categories" json:"categories"`
	Bonus      float64      `koanf:"bonus" json:"bonus"`
}

// SeasonTable is a SeasonalPolicy backed by a static rule list.
type SeasonTable struct {
	rules []SeasonRule
}

// NewSeasonTable creates a policy from rules. Category matching is
// case-insensitive and a zero Bonus means DefaultSeasonalBonus.
func NewSeasonTable(rules []SeasonRule) *SeasonTable {
	normalized := make([]SeasonRule, 0, len(rules))
	for _, r := range rules {
		cats := make([]string, 0, len(r.Categories))
		for _, c := range r.Categories {
			if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
				cats = append(cats, c)
			}
		}
		bonus := r.Bonus
		if bonus <= 0 {
			bonus = DefaultSeasonalBonus
		}
		normalized = append(normalized, SeasonRule{
			Season:     strings.ToLower(strings.TrimSpace(r.Season)),
			Months:     append([]time.Month(nil), r.Months...),
			Categories: cats,
			Bonus:      bonus,
		})
	}
	return &SeasonTable{rules: normalized}
}

// DefaultSeasonRules returns the built-in seasonal merchandising table.
func DefaultSeasonRules() []SeasonRule {
	return []SeasonRule{
		{Season: SeasonWinter, Categories: []string{"outerwear", "heating", "winter sports"}},
		{Season: SeasonSummer, Categories: []string{"outdoor", "garden", "swimwear", "cooling"}},
		{Months: []time.Month{time.November, time.December}, Categories: []string{"gifts", "toys", "decorations"}},
		{Months: []time.Month{time.August, time.September}, Categories: []string{"office supplies", "stationery"}},
	}
}

// Bonus implements SeasonalPolicy. Overlapping rules do not stack; the
// largest matching bonus wins.
func (t *SeasonTable) Bonus(category string, month time.Month, season string) float64 {
	category = strings.ToLower(strings.TrimSpace(category))
	season = strings.ToLower(strings.TrimSpace(season))
	if category == "" {
		return 0
	}

	var best float64
	for i := range t.rules {
		r := &t.rules[i]
		if r.Bonus <= best || !r.matchesPeriod(month, season) {
			continue
		}
		for _, c := range r.Categories {
			if c == category {
				best = r.Bonus
				break
			}
		}
	}
	return best
}

func (r *SeasonRule) matchesPeriod(month time.Month, season string) bool {
	if r.Season != "" && r.Season == season {
		return true
	}
	for _, m := range r.Months {
		if m == month {
			return true
		}
	}
	return false
}

// SeasonForMonth returns the northern-hemisphere meteorological season.
func SeasonForMonth(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}
