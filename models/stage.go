package models

// Stage is the phase a match belongs to.
type Stage string

const (
	StageGroup        Stage = "group_stage"
	StageQuarterFinal Stage = "quarter_final"
	StageSemiFinal    Stage = "semi_final"
	StageFinal        Stage = "final"
)

// BracketStage is the coarse progression pointer of a whole tournament.
// It extends Stage with the terminal "done" value.
type BracketStage string

const (
	BracketGroupStage   BracketStage = BracketStage(StageGroup)
	BracketQuarterFinal BracketStage = BracketStage(StageQuarterFinal)
	BracketSemiFinal    BracketStage = BracketStage(StageSemiFinal)
	BracketFinal        BracketStage = BracketStage(StageFinal)
	BracketDone         BracketStage = "done"
)

var stageOrder = map[Stage]int{
	StageGroup:        0,
	StageQuarterFinal: 1,
	StageSemiFinal:    2,
	StageFinal:        3,
}

var bracketStageOrder = map[BracketStage]int{
	BracketGroupStage:   0,
	BracketQuarterFinal: 1,
	BracketSemiFinal:    2,
	BracketFinal:        3,
	BracketDone:         4,
}

// KnockoutStages lists the single-elimination stages in play order.
var KnockoutStages = []Stage{StageQuarterFinal, StageSemiFinal, StageFinal}

func (s Stage) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

func (s Stage) IsKnockout() bool {
	return s == StageQuarterFinal || s == StageSemiFinal || s == StageFinal
}

// Next returns the stage that follows s. ok is false for the final and for unknown stages.
func (s Stage) Next() (next Stage, ok bool) {
	switch s {
	case StageGroup:
		return StageQuarterFinal, true
	case StageQuarterFinal:
		return StageSemiFinal, true
	case StageSemiFinal:
		return StageFinal, true
	}
	return "", false
}

// Before reports whether s is played strictly before other.
func (s Stage) Before(other Stage) bool {
	return stageOrder[s] < stageOrder[other]
}

func (b BracketStage) IsValid() bool {
	_, ok := bracketStageOrder[b]
	return ok
}

// Before reports whether b comes strictly before other in the tournament progression.
func (b BracketStage) Before(other BracketStage) bool {
	return bracketStageOrder[b] < bracketStageOrder[other]
}
