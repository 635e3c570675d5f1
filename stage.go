package studio

// Stage is a step of the content workflow, in execution order.
type Stage int

const (
	StageNone Stage = iota
	StageIntake
	StageResearch
	StageDraft
	StageQualityCheck
	StageMultiChannel
	StagePackage
)

// Stages lists the workflow stages in execution order.
var Stages = []Stage{
	StageIntake,
	StageResearch,
	StageDraft,
	StageQualityCheck,
	StageMultiChannel,
	StagePackage,
}

func (s Stage) String() string {
	switch s {
	case StageIntake:
		return "Intake"
	case StageResearch:
		return "Research"
	case StageDraft:
		return "Draft"
	case StageQualityCheck:
		return "Quality Check"
	case StageMultiChannel:
		return "Multi-Channel"
	case StagePackage:
		return "Package"
	default:
		return "None"
	}
}

var agentStages = map[string]Stage{
	"intake_agent":                  StageIntake,
	"topic_research_agent":          StageResearch,
	"content_drafter_agent":         StageDraft,
	"quality_checker_agent":         StageQualityCheck,
	"content_improver_agent":        StageQualityCheck,
	"blog_post_writer_agent":        StageMultiChannel,
	"social_media_creator_agent":    StageMultiChannel,
	"email_newsletter_writer_agent": StageMultiChannel,
	"seo_metadata_agent":            StageMultiChannel,
	"final_packager_agent":          StagePackage,
}

// StageOf returns the stage the named agent belongs to, or StageNone for
// coordinators and unknown agents.
func StageOf(author string) Stage {
	return agentStages[author]
}

// Stage returns the furthest stage any activity entry in the log reached.
func (s State) Stage() Stage {
	furthest := StageNone
	for _, e := range s.Log {
		if e.Kind != EntryActivity {
			continue
		}
		if st := StageOf(e.Author); st > furthest {
			furthest = st
		}
	}
	return furthest
}
