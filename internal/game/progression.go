package game

import (
	"math"

	"github.com/verte-zerg/typearena/internal/clock"
)

func (e *Engine) generateWord() string {
	s := &e.state
	var pool []string
	switch {
	case s.Level > 0 && s.Level%programmingLevelGap == 0:
		pool = e.banks[TierProgramming]
	case s.Level >= gibberishLevel:
		base := e.banks[s.CurrentDifficulty]
		pool = make([]string, 0, len(base)+gibberishPerPool)
		pool = append(pool, base...)
		pool = append(pool, e.gen.Gibberish(gibberishPerPool)...)
	default:
		pool = e.banks[s.CurrentDifficulty]
	}
	return e.gen.Pick(pool)
}

func (e *Engine) fillWordQueue() {
	s := &e.state
	for len(s.WordQueue) < e.opts.WordQueueSize {
		w := e.generateWord()
		if w == "" {
			return
		}
		s.WordQueue = append(s.WordQueue, w)
	}
}

func (e *Engine) nextWord() {
	s := &e.state
	if len(s.WordQueue) > 0 {
		s.CurrentWord = s.WordQueue[0]
		s.WordQueue = s.WordQueue[1:]
	} else {
		s.CurrentWord = e.generateWord()
	}
	s.CurrentWordIndex = 0
	e.fillWordQueue()

	e.Emit(EventNewWord, NewWordEvent{
		Word:  s.CurrentWord,
		Queue: append([]string{}, s.WordQueue...),
	})
}

func (e *Engine) handleWordComplete() {
	s := &e.state
	word := s.CurrentWord
	s.WordsCompleted++

	bonus := len([]rune(word)) * wordBonusPerChar * s.Multiplier
	s.Score += bonus
	e.Emit(EventWordComplete, WordCompleteEvent{
		Word:           word,
		Bonus:          bonus,
		WordsCompleted: s.WordsCompleted,
	})

	wasBossPhrase := s.CurrentBoss != nil
	if !e.mode.IsBossBattle && s.WordsCompleted%wordsPerLevel == 0 {
		e.levelUp()
	}

	switch {
	case wasBossPhrase:
		e.damageBoss(len([]rune(word)) * bossDamagePerChar)
	case s.CurrentBoss != nil:
		// levelUp opened an encounter and installed its phrase.
	default:
		e.nextWord()
	}
}

func (e *Engine) increaseDifficulty() {
	s := &e.state
	for i, tier := range difficultyOrder {
		if tier == s.CurrentDifficulty && i < len(difficultyOrder)-1 {
			s.CurrentDifficulty = difficultyOrder[i+1]
			e.Emit(EventDifficultyChange, DifficultyChangeEvent{Difficulty: s.CurrentDifficulty})
			break
		}
	}

	s.WordSpeed = math.Min(s.WordSpeed+difficultySpeedStep, maxWordSpeed)
	e.Emit(EventSpeedChange, SpeedChangeEvent{Speed: s.WordSpeed})
}

func (e *Engine) levelUp() {
	s := &e.state
	s.Level++

	if s.Level%levelsPerDifficulty == 0 {
		e.increaseDifficulty()
	}
	if e.mode.SpeedIncrease {
		s.WordSpeed = math.Min(s.WordSpeed+levelSpeedStep, maxWordSpeed)
	}
	if s.GameMode == ModeSurvival && s.Level%levelsPerDifficulty == 0 && s.CurrentBoss == nil {
		e.initBossBattle(min(s.Level/levelsPerDifficulty, MaxBossLevel))
	}

	e.Emit(EventLevelUp, LevelUpEvent{Level: s.Level})
	e.emitState()
}

// --- boss encounters ---

func (e *Engine) initBossBattle(level int) {
	boss, ok := e.bosses[level]
	if !ok {
		return
	}
	s := &e.state
	s.CurrentBoss = &boss
	s.BossHP = boss.MaxHP
	s.BossMaxHP = boss.MaxHP
	s.BossLevel = level

	s.CurrentWord = e.randomBossPhrase()
	s.CurrentWordIndex = 0
	s.WordQueue = []string{}

	e.startBossAttackTimer()

	e.log.Debug().Str("boss", boss.Name).Int("level", level).Msg("boss appeared")
	e.Emit(EventBossAppear, BossAppearEvent{Boss: BossInfo{
		Name:   boss.Name,
		Banner: boss.Banner,
		HP:     boss.MaxHP,
		Level:  level,
	}})
	e.Emit(EventNewWord, NewWordEvent{Word: s.CurrentWord, Queue: []string{}, IsBossAttack: true})
}

func (e *Engine) randomBossPhrase() string {
	return e.gen.Pick(e.state.CurrentBoss.Phrases)
}

func (e *Engine) startBossAttackTimer() {
	interval := e.state.CurrentBoss.AttackInterval
	e.startTimer(timerBossAttack, clock.Every(e.clock, interval, e.bossAttack))
}

func (e *Engine) bossAttack() {
	s := &e.state
	if s.CurrentBoss == nil || !s.IsRunning {
		return
	}
	s.Lives--
	e.Emit(EventBossAttack, BossAttackEvent{
		Damage:         1,
		LivesRemaining: s.Lives,
		BossName:       s.CurrentBoss.Name,
	})
	e.Emit(EventLifeLost, LifeLostEvent{LivesRemaining: s.Lives})

	if s.Lives <= 0 {
		e.EndGame(ReasonBossDefeatedYou)
		return
	}

	s.CurrentWord = e.randomBossPhrase()
	s.CurrentWordIndex = 0
	e.Emit(EventNewWord, NewWordEvent{Word: s.CurrentWord, Queue: []string{}, IsBossAttack: true})
	e.emitState()
}

func (e *Engine) damageBoss(damage int) {
	s := &e.state
	if s.CurrentBoss == nil {
		return
	}
	actual := damage * s.Multiplier
	s.BossHP = max(s.BossHP-actual, 0)
	e.Emit(EventBossDamage, BossDamageEvent{
		Damage:      actual,
		RemainingHP: s.BossHP,
		MaxHP:       s.BossMaxHP,
	})

	if s.BossHP <= 0 {
		e.defeatBoss()
	} else {
		s.CurrentWord = e.randomBossPhrase()
		s.CurrentWordIndex = 0
		e.Emit(EventNewWord, NewWordEvent{Word: s.CurrentWord, Queue: []string{}, IsBossAttack: true})
	}
	e.emitState()
}

func (e *Engine) defeatBoss() {
	s := &e.state
	e.stopTimer(timerBossAttack)

	name, level := s.CurrentBoss.Name, s.BossLevel
	bonus := s.BossMaxHP * bossBonusFactor * level
	s.Score += bonus
	s.BossesDefeated++
	s.Stats.BossesDefeated++

	e.log.Debug().Str("boss", name).Int("bonus", bonus).Msg("boss defeated")
	e.Emit(EventBossDefeated, BossDefeatedEvent{Boss: name, Bonus: bonus, Level: level})
	e.clearBoss()

	if s.GameMode != ModeBossBattle {
		e.fillWordQueue()
		e.nextWord()
		return
	}
	if _, ok := e.bosses[level+1]; !ok {
		e.EndGame(ReasonVictory)
		return
	}
	// No word is active until the next tier arrives.
	s.CurrentWord = ""
	s.CurrentWordIndex = 0
	e.pendingBossLevel = level + 1
	e.scheduleBossTransition()
}

func (e *Engine) clearBoss() {
	s := &e.state
	s.CurrentBoss = nil
	s.BossHP = 0
	s.BossMaxHP = 0
	s.BossLevel = 0
}

func (e *Engine) scheduleBossTransition() {
	e.startTimer(timerBossTransition, e.clock.AfterFunc(bossTransitionDelay, func() {
		delete(e.timers, timerBossTransition)
		level := e.pendingBossLevel
		e.pendingBossLevel = 0
		if !e.state.IsRunning || level == 0 {
			return
		}
		e.initBossBattle(level)
		e.emitState()
	}))
}
