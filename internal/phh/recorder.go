package phh

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokerarena/internal/game"
)

const (
	defaultVariant  = "NT"
	defaultFilename = "session.phhs"
	maxFailures     = 3
)

// RecorderConfig configures a Recorder
type RecorderConfig struct {
	Table            string // written to each hand's table field
	OutputDir        string
	Filename         string
	FlushHands       int // flush after this many completed hands; 0 waits for Flush
	IncludeHoleCards bool
	Variant          string
	Clock            quartz.Clock
}

// Recorder rebuilds hands from game events and appends them to a PHH file
// as numbered sections. After repeated write failures it disables itself
// rather than stall the match.
type Recorder struct {
	cfg     RecorderConfig
	logger  zerolog.Logger
	outPath string

	mu       sync.Mutex
	flushMu  sync.Mutex
	buffer   []*HandHistory
	current  *handState
	failures int
	disabled bool
	section  int
}

type handState struct {
	history *HandHistory
	index   map[game.Seat]int // PHH player position, small blind first
	street  map[game.Seat]int // chips put in on the current street
	total   map[game.Seat]int // chips put in over the hand
}

// NewRecorder creates the output directory and continues numbering after
// any sections already in the file.
func NewRecorder(cfg RecorderConfig, logger zerolog.Logger) (*Recorder, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("phh: OutputDir is required")
	}
	if cfg.Filename == "" {
		cfg.Filename = defaultFilename
	}
	if cfg.Variant == "" {
		cfg.Variant = defaultVariant
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("phh: create dir: %w", err)
	}

	outPath := filepath.Join(cfg.OutputDir, cfg.Filename)
	section, err := readLastSection(outPath)
	if err != nil {
		return nil, fmt.Errorf("phh: read sections: %w", err)
	}

	return &Recorder{
		cfg:     cfg,
		logger:  logger,
		outPath: outPath,
		section: section,
	}, nil
}

// Path returns the file hands are written to
func (r *Recorder) Path() string { return r.outPath }

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	if r.disabled {
		r.mu.Unlock()
		return
	}

	flush := false
	switch e := event.(type) {
	case game.HandStartEvent:
		r.handStart(e)
	case game.BlindsPostedEvent:
		r.blindsPosted(e)
	case game.PlayerActionEvent:
		r.playerAction(e)
	case game.StreetChangeEvent:
		r.streetChange(e)
	case game.HandEndEvent:
		flush = r.handEnd(e)
	}
	r.mu.Unlock()

	if flush {
		if err := r.Flush(); err != nil {
			r.logger.Error().Err(err).Str("path", r.outPath).Msg("hand history flush failed")
		}
	}
}

func (r *Recorder) handStart(e game.HandStartEvent) {
	n := len(e.Seats)
	history := &HandHistory{
		Variant:           r.cfg.Variant,
		Table:             r.cfg.Table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            e.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Actions:           make([]string, 0, n+16),
		Players:           make([]string, n),
		HandID:            e.HandID,
	}
	history.Stamp(r.cfg.Clock.Now())

	state := &handState{
		history: history,
		index:   make(map[game.Seat]int, n),
		street:  make(map[game.Seat]int, n),
		total:   make(map[game.Seat]int, n),
	}
	for i, seat := range e.Seats {
		state.index[seat] = i
		history.Seats[i] = i + 1
		history.Players[i] = string(seat)
		history.StartingStacks[i] = e.Stacks[seat]
		history.FinishingStacks[i] = e.Stacks[seat]

		cards := "????"
		if r.cfg.IncludeHoleCards && len(e.Hole[seat]) > 0 {
			cards = Cards(e.Hole[seat])
		}
		history.Actions = append(history.Actions, fmt.Sprintf("d dh p%d %s", i+1, cards))
	}
	r.current = state
}

func (r *Recorder) blindsPosted(e game.BlindsPostedEvent) {
	state := r.current
	if state == nil || state.history.HandID != e.HandID {
		return
	}
	for _, blind := range []struct {
		seat   game.Seat
		amount int
	}{{e.SmallBlindSeat, e.SmallBlind}, {e.BigBlindSeat, e.BigBlind}} {
		idx, ok := state.index[blind.seat]
		if !ok {
			continue
		}
		state.history.BlindsOrStraddles[idx] = blind.amount
		state.street[blind.seat] += blind.amount
		state.total[blind.seat] += blind.amount
	}
}

func (r *Recorder) playerAction(e game.PlayerActionEvent) {
	state := r.current
	if state == nil || state.history.HandID != e.HandID {
		return
	}
	idx, ok := state.index[e.Seat]
	if !ok {
		return
	}
	state.street[e.Seat] += e.Amount
	state.total[e.Seat] += e.Amount
	if formatted, ok := FormatAction(idx, e.Action.Kind, state.street[e.Seat]); ok {
		state.history.Actions = append(state.history.Actions, formatted)
	}
}

func (r *Recorder) streetChange(e game.StreetChangeEvent) {
	state := r.current
	if state == nil || state.history.HandID != e.HandID {
		return
	}
	clear(state.street)

	hist := state.history
	prev := min(len(hist.board), len(e.Board))
	added := e.Board[prev:]
	hist.board = hist.board[:0]
	for _, c := range e.Board {
		hist.board = append(hist.board, c.String())
	}
	if len(added) > 0 {
		hist.Actions = append(hist.Actions, "d db "+Cards(added))
	}
}

// handEnd buffers the finished hand and reports whether a flush is due
func (r *Recorder) handEnd(e game.HandEndEvent) bool {
	state := r.current
	if state == nil || state.history.HandID != e.HandID {
		return false
	}
	hist := state.history

	shown := make([]game.Seat, 0, len(e.Showdown))
	for seat := range e.Showdown {
		shown = append(shown, seat)
	}
	slices.SortFunc(shown, func(a, b game.Seat) int { return state.index[a] - state.index[b] })
	for _, seat := range shown {
		hist.Actions = append(hist.Actions,
			fmt.Sprintf("p%d sm %s", state.index[seat]+1, Cards(e.Showdown[seat].Hole)))
	}

	for seat, idx := range state.index {
		hist.FinishingStacks[idx] = hist.StartingStacks[idx] - state.total[seat] + e.Won[seat]
		hist.Winnings[idx] = e.Won[seat]
	}

	r.buffer = append(r.buffer, hist)
	r.current = nil
	return r.cfg.FlushHands > 0 && len(r.buffer) >= r.cfg.FlushHands
}

// Flush writes buffered hands to disk.
func (r *Recorder) Flush() error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	if r.disabled || len(r.buffer) == 0 {
		r.mu.Unlock()
		return nil
	}
	hands := slices.Clone(r.buffer)
	base := r.section
	r.mu.Unlock()

	written, err := r.write(hands, base)
	r.finishFlush(written, base+written, err)
	return err
}

// Close flushes remaining data.
func (r *Recorder) Close() error {
	return r.Flush()
}

// Disabled reports whether the recorder gave up after repeated failures
func (r *Recorder) Disabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled
}

func (r *Recorder) write(hands []*HandHistory, base int) (int, error) {
	file, err := os.OpenFile(r.outPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	for i, hand := range hands {
		if err := writeHand(file, base+i+1, hand, i < len(hands)-1); err != nil {
			return i, err
		}
	}
	return len(hands), nil
}

func (r *Recorder) finishFlush(written, lastSection int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = r.buffer[written:]
	r.section = max(r.section, lastSection)

	if err == nil {
		r.failures = 0
		return
	}
	r.failures++
	if r.failures >= maxFailures {
		r.logger.Warn().Int("dropped", len(r.buffer)).Msg("hand history disabled after repeated failures")
		r.buffer = nil
		r.disabled = true
	}
}

func writeHand(file *os.File, section int, hand *HandHistory, needBlank bool) error {
	if _, err := fmt.Fprintf(file, "[%d]\n", section); err != nil {
		return err
	}
	if err := Encode(file, hand); err != nil {
		return err
	}
	if _, err := file.WriteString("\n"); err != nil {
		return err
	}
	if needBlank {
		if _, err := file.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}

func readLastSection(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	last := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) >= 3 && line[0] == '[' && line[len(line)-1] == ']' {
			if n, err := strconv.Atoi(line[1 : len(line)-1]); err == nil && n > last {
				last = n
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return last, nil
}
