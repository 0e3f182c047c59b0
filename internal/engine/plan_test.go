package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/mnemo-app/mnemo/internal/srs"
)

func planQueue() []QueueEntry {
	entry := func(id int64, tt srs.TrackableType) QueueEntry {
		return QueueEntry{
			Item: srs.Item{ID: id, TrackableType: tt, Title: "item"},
			Tier: TierDue,
		}
	}
	return []QueueEntry{
		entry(1, srs.TrackableEntry),   // 5 min
		entry(2, srs.TrackablePattern), // 15 min
		entry(3, srs.TrackableEntry),   // 5 min
		entry(4, srs.TrackablePattern), // 15 min
	}
}

func TestBuildDailyPlanBudgetWalk(t *testing.T) {
	e := testEngine(t)

	plan := e.BuildDailyPlan(planQueue(), 25, testNow)

	// 5 + 15 = 20 fits; the next entry (5) fits too at 25; the last
	// pattern would blow the budget.
	if len(plan.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3", len(plan.Tasks))
	}
	if plan.TotalMinutes != 25 {
		t.Errorf("TotalMinutes = %d, want 25", plan.TotalMinutes)
	}
	for i, want := range []int64{1, 2, 3} {
		if plan.Tasks[i].ItemID != want {
			t.Errorf("Tasks[%d].ItemID = %d, want %d", i, plan.Tasks[i].ItemID, want)
		}
	}
}

func TestBuildDailyPlanStopsAtFirstOverflow(t *testing.T) {
	e := testEngine(t)

	// The pattern at position 2 does not fit; the walk stops there even
	// though the entry after it would. Prefix semantics, no bin-packing.
	plan := e.BuildDailyPlan(planQueue(), 12, testNow)
	if len(plan.Tasks) != 1 {
		t.Fatalf("len(Tasks) = %d, want 1", len(plan.Tasks))
	}
	if plan.Tasks[0].ItemID != 1 {
		t.Errorf("Tasks[0].ItemID = %d, want 1", plan.Tasks[0].ItemID)
	}
}

func TestBuildDailyPlanFocusArea(t *testing.T) {
	e := testEngine(t)

	plan := e.BuildDailyPlan(planQueue(), 40, testNow)
	// 5+15+5+15 = 40: two of each, entries win the tie.
	if plan.FocusArea != "entry" {
		t.Errorf("FocusArea = %q, want entry", plan.FocusArea)
	}
	if !strings.Contains(plan.Summary, "4 reviews") {
		t.Errorf("Summary = %q, want it to mention 4 reviews", plan.Summary)
	}

	patterns := []QueueEntry{
		{Item: srs.Item{ID: 1, TrackableType: srs.TrackablePattern}, Tier: TierDue},
		{Item: srs.Item{ID: 2, TrackableType: srs.TrackablePattern}, Tier: TierDue},
	}
	plan = e.BuildDailyPlan(patterns, 30, testNow)
	if plan.FocusArea != "pattern" {
		t.Errorf("FocusArea = %q, want pattern", plan.FocusArea)
	}
}

func TestBuildDailyPlanEmptyQueue(t *testing.T) {
	e := testEngine(t)

	plan := e.BuildDailyPlan(nil, 30, testNow)
	if len(plan.Tasks) != 0 {
		t.Fatalf("empty queue produced tasks: %v", plan.Tasks)
	}
	if !strings.Contains(plan.Summary, "Nothing due") {
		t.Errorf("Summary = %q, want a nothing-due message", plan.Summary)
	}
	if plan.Greeting == "" || plan.Motivation == "" {
		t.Error("greeting and motivation should still be set on an empty plan")
	}
}

func TestBuildDailyPlanDeterministicForDate(t *testing.T) {
	e := testEngine(t)

	a := e.BuildDailyPlan(nil, 30, testNow)
	b := e.BuildDailyPlan(nil, 30, testNow.Add(3*time.Hour))
	if a.Greeting != b.Greeting || a.Motivation != b.Motivation {
		t.Error("same-day plans should carry the same greeting and motivation")
	}

	c := e.BuildDailyPlan(nil, 30, testNow.AddDate(0, 0, 1))
	if a.Greeting == c.Greeting {
		t.Error("next-day plan should rotate to a different greeting")
	}
}

func TestBuildDailyPlanDefaultBudget(t *testing.T) {
	e := testEngine(t)

	plan := e.BuildDailyPlan(planQueue(), 0, testNow)
	if plan.BudgetMinutes != e.Options().DailyMinutes {
		t.Errorf("BudgetMinutes = %d, want default %d", plan.BudgetMinutes, e.Options().DailyMinutes)
	}
}
