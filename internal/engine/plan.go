package engine

import (
	"fmt"
	"time"

	"github.com/mnemo-app/mnemo/internal/srs"
)

// Greeting and motivation lines rotate by day of year so the plan is
// deterministic for a given date.
var planGreetings = []string{
	"Good morning! Ready to strengthen your knowledge?",
	"Welcome back! Let's prevent some skill decay today.",
	"Hello! Time to level up your expertise.",
	"Hey there! Your brain is ready for some exercise.",
	"Good to see you! Let's make today count.",
}

var planMotivations = []string{
	"Every review strengthens your neural pathways. Keep going!",
	"Consistency beats intensity. You're doing great!",
	"Small daily progress leads to massive long-term gains.",
	"Your future self will thank you for reviewing today.",
	"The best time to review was yesterday. The next best time is now.",
}

// PlanTask is one scheduled piece of the daily plan.
type PlanTask struct {
	ItemID        int64             `json:"item_id"`
	Title         string            `json:"title"`
	TrackableType srs.TrackableType `json:"trackable_type"`
	Tier          int               `json:"tier"`
	Minutes       int               `json:"minutes"`
}

// DailyPlan is the morning standup view: a time-budgeted prefix of the
// review queue with a focus area and summary.
type DailyPlan struct {
	Date          string     `json:"date"`
	Greeting      string     `json:"greeting"`
	Tasks         []PlanTask `json:"tasks"`
	TotalMinutes  int        `json:"total_minutes"`
	BudgetMinutes int        `json:"budget_minutes"`
	FocusArea     string     `json:"focus_area"`
	Summary       string     `json:"summary"`
	Motivation    string     `json:"motivation"`
}

// BuildDailyPlan walks the ranked queue in order, accumulating per-type
// minute costs until the next task would not fit. It never reorders to
// pack the budget; predictability beats optimality here.
func (e *Engine) BuildDailyPlan(queue []QueueEntry, budgetMinutes int, now time.Time) DailyPlan {
	if budgetMinutes <= 0 {
		budgetMinutes = e.opts.DailyMinutes
	}

	plan := DailyPlan{
		Date:          now.UTC().Format("2006-01-02"),
		Greeting:      planGreetings[now.YearDay()%len(planGreetings)],
		Motivation:    planMotivations[now.YearDay()%len(planMotivations)],
		BudgetMinutes: budgetMinutes,
	}

	typeCounts := map[srs.TrackableType]int{}
	for _, entry := range queue {
		cost := e.minutesFor(entry.Item.TrackableType)
		if plan.TotalMinutes+cost > budgetMinutes {
			break
		}
		plan.Tasks = append(plan.Tasks, PlanTask{
			ItemID:        entry.Item.ID,
			Title:         entry.Item.Title,
			TrackableType: entry.Item.TrackableType,
			Tier:          entry.Tier,
			Minutes:       cost,
		})
		plan.TotalMinutes += cost
		typeCounts[entry.Item.TrackableType]++
	}

	if len(plan.Tasks) == 0 {
		plan.Summary = "Nothing due today - you're all caught up!"
		return plan
	}

	plan.FocusArea = focusArea(typeCounts)
	plan.Summary = fmt.Sprintf("%d reviews planned, about %d minutes. Focus: %ss.",
		len(plan.Tasks), plan.TotalMinutes, plan.FocusArea)
	return plan
}

// focusArea picks the most frequent trackable type in the selection.
// Entries win ties; they are the cheaper, more common unit.
func focusArea(counts map[srs.TrackableType]int) string {
	if counts[srs.TrackablePattern] > counts[srs.TrackableEntry] {
		return string(srs.TrackablePattern)
	}
	return string(srs.TrackableEntry)
}

// Plan builds the ranked queue and folds it into a daily plan.
func (e *Engine) Plan(now time.Time, budgetMinutes int) (DailyPlan, error) {
	queue, _, err := e.Queue(now, 0)
	if err != nil {
		return DailyPlan{}, err
	}
	return e.BuildDailyPlan(queue, budgetMinutes, now), nil
}
