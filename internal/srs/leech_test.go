package srs

import "testing"

func TestIsLeech(t *testing.T) {
	sched := NewScheduler(Config{})

	cases := []struct {
		name    string
		lapses  int
		reviews int
		want    bool
	}{
		{"chronic failure", 9, 20, true},
		{"ratio guard saves old item", 9, 40, false},
		{"below lapse threshold", 8, 10, false},
		{"few reviews high ratio", 9, 9, true},
		{"zero reviews", 0, 0, false},
		{"lapses with zero review count floor", 9, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := Item{LapseCount: tc.lapses, ReviewCount: tc.reviews}
			if got := sched.IsLeech(item); got != tc.want {
				t.Errorf("IsLeech(lapses=%d, reviews=%d) = %v, want %v",
					tc.lapses, tc.reviews, got, tc.want)
			}
		})
	}
}

func TestLeechFlagLatches(t *testing.T) {
	sched := NewScheduler(Config{})
	item := NewItem(TrackableEntry, 1, "off-by-one in loops", testNow)

	// Fail it past the leech threshold.
	for i := 0; i < 9; i++ {
		var err error
		item, err = sched.Apply(item, 1, testNow.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	if !item.IsLeech {
		t.Fatalf("item with %d lapses over %d reviews not flagged as leech",
			item.LapseCount, item.ReviewCount)
	}

	// One good review later the flag must still be set.
	item, err := sched.Apply(item, 5, testNow.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !item.IsLeech {
		t.Error("leech flag cleared by a successful review; it should latch")
	}
}
