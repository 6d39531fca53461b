package booking

import (
	"testing"
	"time"
)

func TestSlots_Grid(t *testing.T) {
	slots := Slots()
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" || slots[17] != "17:30" {
		t.Fatalf("expected 09:00..17:30, got %s..%s", slots[0], slots[17])
	}
	for i := 1; i < len(slots); i++ {
		if slotMinute(slots[i])-slotMinute(slots[i-1]) != 30 {
			t.Fatalf("slots %s and %s are not 30 minutes apart", slots[i-1], slots[i])
		}
	}
	// Every call yields the same grid.
	again := Slots()
	for i := range slots {
		if slots[i] != again[i] {
			t.Fatalf("grid changed between calls at %d", i)
		}
	}
}

func TestOnGrid(t *testing.T) {
	for _, s := range Slots() {
		if !OnGrid(s) {
			t.Fatalf("%s should be on grid", s)
		}
	}
	for _, s := range []string{"08:30", "18:00", "09:15", "9:00", "", "25:00", "10:00:00"} {
		if OnGrid(s) {
			t.Fatalf("%s should not be on grid", s)
		}
	}
}

func TestFilter_ExcludesBooked(t *testing.T) {
	booked := []string{"09:00", "12:30", "17:30"}
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	day := Filter(Slots(), booked, "2026-10-25", "2026-10-19", now)

	if len(day.Available) != 15 {
		t.Fatalf("expected 15 available, got %d", len(day.Available))
	}
	for _, a := range day.Available {
		for _, b := range booked {
			if a == b {
				t.Fatalf("booked slot %s returned as available", a)
			}
		}
	}
	if st, _ := day.StateOf("12:30"); st != SlotBooked {
		t.Fatalf("expected 12:30 booked, got %s", st)
	}
	if len(day.Slots) != 18 {
		t.Fatalf("every slot stays visible, got %d", len(day.Slots))
	}
}

func TestFilter_SameDayLeadTime(t *testing.T) {
	now := time.Date(2026, 10, 19, 14, 10, 0, 0, time.UTC)
	day := Filter(Slots(), nil, "2026-10-19", "2026-10-19", now)

	for _, tc := range []struct {
		time string
		want SlotState
	}{
		{"09:00", SlotPast},
		{"14:00", SlotPast},
		{"14:30", SlotPast},
		{"15:00", SlotAvailable},
		{"17:30", SlotAvailable},
	} {
		if st, _ := day.StateOf(tc.time); st != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.time, tc.want, st)
		}
	}
	if day.Available[0] != "15:00" {
		t.Fatalf("expected first available 15:00, got %s", day.Available[0])
	}
}

func TestFilter_LeadTimeBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	day := Filter(Slots(), nil, "2026-10-19", "2026-10-19", now)
	if st, _ := day.StateOf("10:30"); st != SlotPast {
		t.Fatalf("slot exactly at now+30 must be excluded, got %s", st)
	}
	if st, _ := day.StateOf("11:00"); st != SlotAvailable {
		t.Fatalf("expected 11:00 available, got %s", st)
	}
}

func TestFilter_FutureDateIgnoresClock(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 50, 0, 0, time.UTC)
	day := Filter(Slots(), []string{"10:00"}, "2026-10-20", "2026-10-19", now)
	if len(day.Available) != 17 {
		t.Fatalf("expected 17 available, got %d", len(day.Available))
	}
}

func TestFilter_EmptyDayIsNotNil(t *testing.T) {
	now := time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)
	day := Filter(Slots(), nil, "2026-10-19", "2026-10-19", now)
	if day.Available == nil || len(day.Available) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", day.Available)
	}
}
