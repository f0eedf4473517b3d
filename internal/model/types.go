// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	Seed        int64
	PartialRate float64
	FocusWeak   bool
	WeakTop     int
	WeakFactor  float64
	WeakWindow  int
	AutoDelay   time.Duration
	ShakeDelay  time.Duration
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Kana        []int
}

// GameRecord captures a completed game.
type GameRecord struct {
	StartedAt   time.Time
	EndedAt     time.Time
	Seed        int64
	PartialRate float64
	FocusWeak   bool
	Score       int
	Matches     int
	DurationMs  int64
}

// KanaStats stores per-kana stats for one game.
type KanaStats struct {
	KanaIndex  int
	Attempts   int
	Incorrect  int
	ResponseMs int64
}

// KanaAggregate aggregates kana stats across games.
type KanaAggregate struct {
	KanaIndex  int
	Attempts   int
	Incorrect  int
	ResponseMs int64
}

// SessionAggregate summarizes a game for reporting.
type SessionAggregate struct {
	SessionID  string
	EndedAt    time.Time
	Score      int
	Matches    int
	Attempts   int
	Incorrect  int
	DurationMs int64
}
