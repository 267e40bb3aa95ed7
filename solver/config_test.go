package solver

import "testing"

func TestTrainingScheduleValidate(t *testing.T) {
	valid := TrainingSchedule{Ticks: 100, StrategyInterval: 10, PruneTickThreshold: 20, LCFRThreshold: 40, DiscountInterval: 5}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid schedule to pass, got %v", err)
	}

	cases := []TrainingSchedule{
		{Ticks: 0, StrategyInterval: 10, DiscountInterval: 5},
		{Ticks: 100, StrategyInterval: 0, DiscountInterval: 5},
		{Ticks: 100, StrategyInterval: 10, DiscountInterval: 0},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected error for %+v, got nil", i, c)
		}
	}
}
