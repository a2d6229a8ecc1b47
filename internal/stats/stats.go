// Package stats aggregates per-match hand statistics from game events.
package stats

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/lox/pokerarena/internal/game"
)

// endings lists where a hand can finish, in table order, with report labels
var endings = []struct {
	phase game.Phase
	label string
}{
	{game.PhasePreflopBetting, "Preflop"},
	{game.PhaseFlopBetting, "Flop"},
	{game.PhaseTurnBetting, "Turn"},
	{game.PhaseRiverBetting, "River"},
	{game.PhaseShowdown, "Showdown"},
}

// Collector tracks hand outcomes for a match. It subscribes to the event
// bus and is safe to read while a match is running.
type Collector struct {
	mu sync.Mutex

	hands   int
	sumPot  float64
	sumPot2 float64 // sum of squares for variance
	maxPot  int
	pots    []int
	endings map[game.Phase]int
	wins    map[game.Seat]int

	showdownWins    int
	nonShowdownWins int
}

// NewCollector returns an empty collector
func NewCollector() *Collector {
	return &Collector{
		endings: make(map[game.Phase]int),
		wins:    make(map[game.Seat]int),
	}
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.GameEvent) {
	if e, ok := event.(game.HandEndEvent); ok {
		c.Record(e.Result)
	}
}

// Record adds a finished hand
func (c *Collector) Record(result game.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pot := result.Pot
	c.hands++
	c.sumPot += float64(pot)
	c.sumPot2 += float64(pot) * float64(pot)
	c.maxPot = max(c.maxPot, pot)
	c.pots = append(c.pots, pot)
	c.endings[result.EndPhase]++

	for _, s := range result.Winners {
		c.wins[s]++
		if result.EndPhase == game.PhaseShowdown {
			c.showdownWins++
		} else {
			c.nonShowdownWins++
		}
	}
}

// Hands returns the number of hands recorded
func (c *Collector) Hands() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hands
}

// AveragePot returns the mean pot size
func (c *Collector) AveragePot() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mean()
}

func (c *Collector) mean() float64 {
	if c.hands == 0 {
		return 0
	}
	return c.sumPot / float64(c.hands)
}

// PotStdDev returns the sample standard deviation of pot sizes
func (c *Collector) PotStdDev() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hands < 2 {
		return 0
	}
	mean := c.mean()
	return math.Sqrt((c.sumPot2 - float64(c.hands)*mean*mean) / float64(c.hands-1))
}

// MedianPot returns the median pot size
func (c *Collector) MedianPot() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pots) == 0 {
		return 0
	}
	sorted := slices.Clone(c.pots)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// MaxPot returns the largest pot seen
func (c *Collector) MaxPot() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxPot
}

// Ended returns how many hands finished in phase
func (c *Collector) Ended(phase game.Phase) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endings[phase]
}

// Wins returns how many hands seat won a share of the main pot in
func (c *Collector) Wins(seat game.Seat) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wins[seat]
}

// ShowdownSplit returns main pot wins taken at showdown and without one
func (c *Collector) ShowdownSplit() (showdown, uncontested int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showdownWins, c.nonShowdownWins
}

func (c *Collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Match Hand Stats:\n hands=%d, avg_pot=%.2f, max_pot=%d", c.hands, c.mean(), c.maxPot)
	for _, e := range endings {
		count := c.endings[e.phase]
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n %s=%d (%.2f%%)", e.label, count, percentage(count, c.hands))
	}
	return b.String()
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
