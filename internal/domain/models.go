package domain

import (
	"time"
)

type CheckoutMode string

const (
	DoubleOut CheckoutMode = "double_out"
	SingleOut CheckoutMode = "single_out"
	MasterOut CheckoutMode = "master_out"
)

func (m CheckoutMode) Valid() bool {
	switch m {
	case DoubleOut, SingleOut, MasterOut:
		return true
	}
	return false
}

type MatchStatus string

const (
	MatchActive   MatchStatus = "active"
	MatchFinished MatchStatus = "finished"
)

// Dart is a single dart: Segment is 0 (miss), 1-20, or 25 (bull).
type Dart struct {
	Segment    int `json:"segment"`
	Multiplier int `json:"multiplier"`
}

func (d Dart) Score() int {
	return d.Segment * d.Multiplier
}

// Bullseye reports the inner bull (50).
func (d Dart) Bullseye() bool {
	return d.Segment == 25 && d.Multiplier == 2
}

func (d Dart) Valid() bool {
	switch {
	case d.Segment == 0:
		return d.Multiplier == 1
	case d.Segment == 25:
		return d.Multiplier == 1 || d.Multiplier == 2
	case d.Segment >= 1 && d.Segment <= 20:
		return d.Multiplier >= 1 && d.Multiplier <= 3
	}
	return false
}

func Sum(darts []Dart) int {
	total := 0
	for _, d := range darts {
		total += d.Score()
	}
	return total
}

type PlayerSlot struct {
	Name        string
	Score       int
	Legs        int
	DartsThrown int
	Average     float64 // 3-dart average over scored (non-bust) points
}

type ThrowRecord struct {
	ID        string
	Player    int // 1 or 2
	Darts     []Dart
	Total     int // raw sum of the darts, busts included
	Remaining int // fold value for Player after this record
	Leg       int
	Bust      bool
	Checkout  bool
	CreatedAt time.Time
}

// Scored is the record's effect on the remaining score.
func (t ThrowRecord) Scored() int {
	if t.Bust {
		return 0
	}
	return t.Total
}

type MatchRules struct {
	StartingScore int
	LegsToWin     int
	CheckoutMode  CheckoutMode
}

type Match struct {
	ID            string
	BoardID       string
	Players       [2]PlayerSlot
	CurrentPlayer int // 1 or 2
	CurrentLeg    int
	Rules         MatchRules
	Throws        []ThrowRecord
	Status        MatchStatus
	Winner        int // 0 while active
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *Match) Player(n int) *PlayerSlot {
	return &m.Players[n-1]
}
