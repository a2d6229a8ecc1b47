package gauntlet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true)
)

// EnemyResult is the challenger's record against one enemy
type EnemyResult struct {
	Enemy    string
	Wins     int
	Attempts int
}

// WinPercentage returns wins as a percentage of attempts
func (r EnemyResult) WinPercentage() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return 100 * float64(r.Wins) / float64(r.Attempts)
}

// Report grades a challenger against each enemy it played
type Report struct {
	Challenger string
	Percentage float64
	Results    []EnemyResult
}

// NewReport returns an empty report; percentage is the win rate needed to
// pass.
func NewReport(challenger string, percentage float64) *Report {
	return &Report{Challenger: challenger, Percentage: percentage}
}

// Record adds one match against enemy
func (r *Report) Record(enemy string, won bool) {
	i := r.index(enemy)
	r.Results[i].Attempts++
	if won {
		r.Results[i].Wins++
	}
}

func (r *Report) index(enemy string) int {
	for i, res := range r.Results {
		if res.Enemy == enemy {
			return i
		}
	}
	r.Results = append(r.Results, EnemyResult{Enemy: enemy})
	return len(r.Results) - 1
}

// Passed reports whether the challenger met the bar against enemy
func (r *Report) Passed(enemy string) bool {
	for _, res := range r.Results {
		if res.Enemy == enemy {
			return res.Attempts > 0 && res.WinPercentage() >= r.Percentage
		}
	}
	return false
}

// AllPassed reports whether every enemy was beaten often enough
func (r *Report) AllPassed() bool {
	for _, res := range r.Results {
		if !r.Passed(res.Enemy) {
			return false
		}
	}
	return true
}

func (r *Report) String() string {
	lines := []string{headerStyle.Render("Challenger: " + r.Challenger)}
	for _, res := range r.Results {
		grade := failStyle.Render("FAIL")
		if r.Passed(res.Enemy) {
			grade = passStyle.Render("PASS")
		}
		lines = append(lines, fmt.Sprintf("    %s  %-12s - %d/%d (%.1f%%)",
			grade, res.Enemy, res.Wins, res.Attempts, res.WinPercentage()))
	}
	return strings.Join(lines, "\n")
}
