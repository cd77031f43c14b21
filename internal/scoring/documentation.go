// Package scoring - documentation completeness scoring.
package scoring

import (
	"github.com/portview/portview-backend/model"
)

// SignalWeight holds the signed contributions of one documentation signal.
// Present is added when the signal exists, Missing when it does not; Missing
// values are expected to be zero or negative.
type SignalWeight struct {
	Present int `json:"present" yaml:"present"`
	Missing int `json:"missing" yaml:"missing"`
}

func (w SignalWeight) score(present bool) int {
	if present {
		return w.Present
	}
	return w.Missing
}

// DocumentationWeights configures the extended documentation scorer. The sum
// of signal contributions is clamped to [MaxPenalty, MaxBonus].
type DocumentationWeights struct {
	ReadmePresent        SignalWeight `json:"readme_present" yaml:"readme_present"`
	ReadmeQuality        SignalWeight `json:"readme_quality" yaml:"readme_quality"`
	ArchitectureDiagram  SignalWeight `json:"architecture_diagram" yaml:"architecture_diagram"`
	SystemDocumentation  SignalWeight `json:"system_documentation" yaml:"system_documentation"`
	UserDocumentation    SignalWeight `json:"user_documentation" yaml:"user_documentation"`
	SupportDocumentation SignalWeight `json:"support_documentation" yaml:"support_documentation"`
	MaxPenalty           int          `json:"max_penalty" yaml:"max_penalty"`
	MaxBonus             int          `json:"max_bonus" yaml:"max_bonus"`
}

// DefaultDocumentationWeights returns the weights used when the extended
// scorer is enabled without explicit configuration.
func DefaultDocumentationWeights() DocumentationWeights {
	return DocumentationWeights{
		ReadmePresent:        SignalWeight{Present: 2, Missing: -2},
		ReadmeQuality:        SignalWeight{Present: 2, Missing: 0},
		ArchitectureDiagram:  SignalWeight{Present: 6, Missing: -8},
		SystemDocumentation:  SignalWeight{Present: 6, Missing: -8},
		UserDocumentation:    SignalWeight{Present: 3, Missing: -4},
		SupportDocumentation: SignalWeight{Present: 3, Missing: -3},
		MaxPenalty:           -25,
		MaxBonus:             20,
	}
}

// DocumentationAdjustment is the default-mode scorer: only the architecture
// diagram and system documentation flags participate.
func DocumentationAdjustment(doc model.Documentation) int {
	switch {
	case doc.HasArchitectureDiagram && doc.HasSystemDocumentation:
		return 10
	case !doc.HasArchitectureDiagram && !doc.HasSystemDocumentation:
		return -15
	default:
		return -10
	}
}

// DocumentationAdjustmentWeighted is the extended-mode scorer. Repository
// readme signals only contribute when a repository is linked; an application
// without source control is not penalized for a readme it cannot have.
func DocumentationAdjustmentWeighted(doc model.Documentation, repo *model.Repository, w DocumentationWeights) int {
	sum := w.ArchitectureDiagram.score(doc.HasArchitectureDiagram) +
		w.SystemDocumentation.score(doc.HasSystemDocumentation) +
		w.UserDocumentation.score(doc.HasUserDocumentation) +
		w.SupportDocumentation.score(doc.HasSupportDocumentation)

	if repo != nil {
		sum += w.ReadmePresent.score(repo.HasReadme)
		if repo.HasReadme {
			sum += w.ReadmeQuality.score(repo.ReadmeQualityGood)
		}
	}

	if sum < w.MaxPenalty {
		return w.MaxPenalty
	}
	if sum > w.MaxBonus {
		return w.MaxBonus
	}
	return sum
}
