package phh

import "time"

// HandHistory is one hand in Poker Hand History form. Per-player slices are
// indexed by PHH position, small blind first.
type HandHistory struct {
	Variant string `toml:"variant"`
	Table   string `toml:"table,omitempty"`
	HandID  string `toml:"hand"`

	SeatCount int      `toml:"seat_count,omitempty"`
	Seats     []int    `toml:"seats,omitempty"`
	Players   []string `toml:"players,omitempty"`

	Antes             []int `toml:"antes"`
	BlindsOrStraddles []int `toml:"blinds_or_straddles"`
	MinBet            int   `toml:"min_bet"`
	StartingStacks    []int `toml:"starting_stacks"`

	Actions []string `toml:"actions"`

	FinishingStacks []int `toml:"finishing_stacks,omitempty"`
	Winnings        []int `toml:"winnings,omitempty"`

	Time     string `toml:"time,omitempty"`
	TimeZone string `toml:"time_zone,omitempty"`
	Day      int    `toml:"day,omitempty"`
	Month    int    `toml:"month,omitempty"`
	Year     int    `toml:"year,omitempty"`

	board []string // community cards dealt so far
}

// Stamp sets the date and time fields from t, in UTC. A zero time leaves
// them empty.
func (h *HandHistory) Stamp(t time.Time) {
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	h.Time = utc.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = utc.Day()
	h.Month = int(utc.Month())
	h.Year = utc.Year()
}
