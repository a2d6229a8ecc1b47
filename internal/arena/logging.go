package arena

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/game"
)

// LogSubscriber writes game events to an operator log. Actions and streets
// are debug output; hand results and blind changes are info.
type LogSubscriber struct {
	logger    *log.Logger
	formatter *game.EventFormatter
}

// NewLogSubscriber returns a subscriber logging to logger
func NewLogSubscriber(logger *log.Logger, showHoleCards bool) *LogSubscriber {
	return &LogSubscriber{
		logger:    logger.WithPrefix("events"),
		formatter: game.NewEventFormatter(game.FormattingOptions{ShowHoleCards: showHoleCards}),
	}
}

// OnEvent implements game.EventSubscriber
func (s *LogSubscriber) OnEvent(event game.GameEvent) {
	msg := s.formatter.Format(event)
	switch event.(type) {
	case game.HandEndEvent, game.BlindLevelEvent:
		s.logger.Info(msg)
	default:
		s.logger.Debug(msg, "type", event.EventType())
	}
}
