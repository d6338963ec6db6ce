// Package model defines shared data structures.
package model

import "time"

// Config defines play settings after flags and the config file are merged.
type Config struct {
	Alphabet      []string
	Code          []string
	AlphabetFile  string
	Start         []int
	DragThreshold float64
	TapWindowMs   int
	TapDistance   float64
	CooldownMs    int
	CellWidth     float64
	CellHeight    float64
	RevealDelayMs int
	Mute          bool
	Volume        float64
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// RunRecord captures a solved run.
type RunRecord struct {
	RunID         string
	StartedAt     time.Time
	EndedAt       time.Time
	Dials         int
	AlphabetSize  int
	Taps          int
	Drags         int
	Advances      int
	Misses        int
	CooldownDrops int
	DurationMs    int64
}

// RunAggregate is a stored run as read back for reporting.
type RunAggregate struct {
	ID int64
	RunRecord
}
