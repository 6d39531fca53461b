package booking

import (
	"fmt"
	"time"
)

const (
	openingMinute = 9 * 60
	lastSlot      = 17*60 + 30
	SlotStep      = 30 // minutes
	LeadTime      = 30 // minutes, same-day bookings only
)

type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
	SlotPast      SlotState = "past"
)

type Slot struct {
	Time  string    `json:"time"`
	State SlotState `json:"state"`
}

// DayAvailability is the slot grid of one professional on one date. Available
// is never nil, so an empty day encodes as [] rather than null.
type DayAvailability struct {
	Date      string   `json:"date"`
	Slots     []Slot   `json:"slots"`
	Available []string `json:"available"`
}

// Slots returns every bookable start time of a business day, 09:00 through
// 17:30 in 30 minute steps. Slot length does not depend on the service.
func Slots() []string {
	slots := make([]string, 0, (lastSlot-openingMinute)/SlotStep+1)
	for m := openingMinute; m <= lastSlot; m += SlotStep {
		slots = append(slots, formatMinute(m))
	}
	return slots
}

// OnGrid reports whether t is one of the values produced by Slots.
func OnGrid(t string) bool {
	m, err := parseMinute(t)
	if err != nil || formatMinute(m) != t {
		return false
	}
	return m >= openingMinute && m <= lastSlot && (m-openingMinute)%SlotStep == 0
}

// Filter classifies each slot of all for the given date. Booked times are
// excluded on any date; when date equals today, slots at or before now plus
// LeadTime are excluded as well. Order of all is preserved.
func Filter(all, booked []string, date, today string, now time.Time) DayAvailability {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	cutoff := -1
	if date == today {
		cutoff = now.Hour()*60 + now.Minute() + LeadTime
	}

	day := DayAvailability{
		Date:      date,
		Slots:     make([]Slot, 0, len(all)),
		Available: make([]string, 0, len(all)),
	}
	for _, t := range all {
		state := SlotAvailable
		switch {
		case taken[t]:
			state = SlotBooked
		case cutoff >= 0 && slotMinute(t) <= cutoff:
			state = SlotPast
		}
		day.Slots = append(day.Slots, Slot{Time: t, State: state})
		if state == SlotAvailable {
			day.Available = append(day.Available, t)
		}
	}
	return day
}

// StateOf returns the state of one time within a filtered day.
func (d DayAvailability) StateOf(t string) (SlotState, bool) {
	for _, s := range d.Slots {
		if s.Time == t {
			return s.State, true
		}
	}
	return "", false
}

func slotMinute(t string) int {
	m, err := parseMinute(t)
	if err != nil {
		return -1
	}
	return m
}

func parseMinute(t string) (int, error) {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
