package component

// AIGoal runs Script every RepathFrames frames to pick a new goal tile.
type AIGoal struct {
	Script       string
	RepathFrames int
	FrameCounter int
	Seed         int
}

var AIGoalComponent = NewComponent[AIGoal]()
