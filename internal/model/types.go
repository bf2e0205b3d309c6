// Package model defines shared data structures.
package model

import "time"

// PlayConfig defines interactive play settings.
type PlayConfig struct {
	Mode string
	Seed int64
}

// SimConfig defines headless bot settings.
type SimConfig struct {
	Mode        string
	WPM         float64
	Accuracy    float64
	Runs        int
	Seed        int64
	MaxDuration time.Duration
	WeakTop     int
}

// RunFilter narrows run listings.
type RunFilter struct {
	Mode string
	Last int
}

// RunRecord captures a finished game.
type RunRecord struct {
	ID             string
	Mode           string
	Reason         string
	StartedAt      time.Time
	EndedAt        time.Time
	Score          int
	WordsCompleted int
	MaxCombo       int
	Accuracy       float64
	PeakWPM        int
	AverageWPM     int
	Level          int
	CorrectChars   int
	IncorrectChars int
	BossesDefeated int
	DurationMs     int64
}

// CharStats stores per-character stats for a run.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across runs.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}
