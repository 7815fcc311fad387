// Package model defines the domain types used across the application.
package model

import "time"

// Division is one of the three league groups duels are played in.
type Division string

// The league divisions. Feed rows carrying any other label are discarded.
const (
	DivisionElite Division = "Elite"
	DivisionRojo  Division = "Rojo"
	DivisionVerde Division = "Verde"
)

// Divisions lists all divisions in display order.
var Divisions = []Division{DivisionElite, DivisionRojo, DivisionVerde}

// ParseDivision maps a feed label onto a Division.
// The second return value is false for labels outside the league.
func ParseDivision(label string) (Division, bool) {
	switch d := Division(label); d {
	case DivisionElite, DivisionRojo, DivisionVerde:
		return d, true
	default:
		return "", false
	}
}

// Result represents a finished duel from the results feed.
type Result struct {
	Division Division
	Date     string
	Score    string
	Home     string
	Away     string
	DuelURL  string
}

// Fixture represents an upcoming duel from the schedule or calendar feed.
type Fixture struct {
	Division Division
	Home     string
	Away     string
	Time     string
	HomeURL  string
	AwayURL  string
	DuelURL  string
}

// Delivery records one broadcast attempt to one chat.
type Delivery struct {
	ID        int64
	Cycle     string
	ChatID    int64
	OK        bool
	ErrorKind string
	ErrorText string
	SentAt    time.Time
}

// Broadcast cycle names, used in the delivery journal and logs.
const (
	CycleResults  = "results"
	CycleSchedule = "schedule"
)
