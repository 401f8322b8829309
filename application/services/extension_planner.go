package services

import "generate-video-lambda/domain"

// ExtensionPlanner works out, up front, how many continuation rounds a run
// needs to reach the requested duration and which resolution tier the run
// must use to make those rounds possible.
type ExtensionPlanner struct{}

// Plan computes ceil((target-base)/increment) rounds. When rounds are needed
// and the requested tier does not support continuation, the whole run is
// downgraded to the continuation tier, so the initial segment and every
// extension share one resolution.
func (ExtensionPlanner) Plan(targetDurationSeconds, baseDurationSeconds, perRoundIncrementSeconds int,
	requested domain.Resolution) domain.ExtensionPlan {

	if targetDurationSeconds <= baseDurationSeconds || perRoundIncrementSeconds <= 0 {
		return domain.ExtensionPlan{}
	}

	remaining := targetDurationSeconds - baseDurationSeconds
	rounds := (remaining + perRoundIncrementSeconds - 1) / perRoundIncrementSeconds

	plan := domain.ExtensionPlan{TotalRounds: rounds}
	if requested != domain.ContinuationResolution {
		plan.ResolutionOverride = domain.ContinuationResolution
	}
	return plan
}
