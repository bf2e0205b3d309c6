package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typearena/internal/game"
)

const (
	maxMessages = 4
	messageTTL  = 3 * time.Second
	comboAlert  = 10
)

type message struct {
	text  string
	style lipgloss.Style
	at    time.Time
}

func (m *Model) pushMessage(style lipgloss.Style, format string, args ...any) {
	m.messages = append(m.messages, message{
		text:  fmt.Sprintf(format, args...),
		style: style,
		at:    m.clock.Now(),
	})
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}

// activeMessages drops expired messages and returns the rest, oldest first.
func (m *Model) activeMessages() []message {
	cutoff := m.clock.Now().Add(-messageTTL)
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.at.After(cutoff) {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return kept
}

// subscribeMessages turns engine events into the floating message log.
func (m *Model) subscribeMessages() {
	e := m.engine
	e.On(game.EventIncorrectKeystroke, func(p any) {
		if ev, ok := p.(game.IncorrectKeystrokeEvent); ok && ev.PreviousCombo >= comboAlert {
			m.pushMessage(alertStyle, "COMBO BROKEN (%d)", ev.PreviousCombo)
		}
	})
	e.On(game.EventFeverModeStart, func(any) {
		m.pushMessage(feverStyle, "FEVER MODE!")
	})
	e.On(game.EventFeverModeEnd, func(any) {
		m.pushMessage(alertStyle, "fever lost")
	})
	e.On(game.EventMultiplierChange, func(p any) {
		if ev, ok := p.(game.MultiplierChangeEvent); ok && ev.Multiplier > 1 {
			m.pushMessage(infoStyle, "x%d multiplier", ev.Multiplier)
		}
	})
	e.On(game.EventLevelUp, func(p any) {
		if ev, ok := p.(game.LevelUpEvent); ok {
			m.pushMessage(infoStyle, "LEVEL %d", ev.Level)
		}
	})
	e.On(game.EventDifficultyChange, func(p any) {
		if ev, ok := p.(game.DifficultyChangeEvent); ok {
			m.pushMessage(infoStyle, "difficulty: %s", ev.Difficulty)
		}
	})
	e.On(game.EventLifeLost, func(p any) {
		if ev, ok := p.(game.LifeLostEvent); ok {
			m.pushMessage(alertStyle, "-1 life (%d left)", ev.LivesRemaining)
		}
	})
	e.On(game.EventBossAppear, func(p any) {
		if ev, ok := p.(game.BossAppearEvent); ok {
			m.pushMessage(bossStyle, "%s APPEARS!", ev.Boss.Name)
		}
	})
	e.On(game.EventBossAttack, func(p any) {
		if ev, ok := p.(game.BossAttackEvent); ok {
			m.pushMessage(alertStyle, "%s attacks!", ev.BossName)
		}
	})
	e.On(game.EventBossDamage, func(p any) {
		if ev, ok := p.(game.BossDamageEvent); ok {
			m.pushMessage(infoStyle, "-%d HP", ev.Damage)
		}
	})
	e.On(game.EventBossDefeated, func(p any) {
		if ev, ok := p.(game.BossDefeatedEvent); ok {
			m.pushMessage(feverStyle, "%s DEFEATED! +%d", ev.Boss, ev.Bonus)
		}
	})
}
