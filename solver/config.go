package solver

import "fmt"

// TrainingSchedule is the outer-loop schedule passed to Engine.MCCFRP, kept
// separate from Config (which only carries update_strategy's round bound)
// since these parameters vary run-to-run while Config is fixed by the
// abstraction being trained.
type TrainingSchedule struct {
	Ticks              int
	StrategyInterval   int
	PruneTickThreshold int
	LCFRThreshold      int
	DiscountInterval   int
}

// Validate checks the schedule is well-formed before training starts.
func (s TrainingSchedule) Validate() error {
	if s.Ticks <= 0 {
		return fmt.Errorf("solver: ticks must be > 0")
	}
	if s.StrategyInterval <= 0 {
		return fmt.Errorf("solver: strategy_interval must be > 0")
	}
	if s.DiscountInterval <= 0 {
		return fmt.Errorf("solver: discount_interval must be > 0")
	}
	return nil
}
