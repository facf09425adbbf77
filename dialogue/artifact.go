package dialogue

import "strings"

// Artifact names.
const (
	ArtifactResponse = "Response"
	ArtifactError    = "Error"
)

// FailureMessage is the only text an Error artifact carries.
const FailureMessage = "failed to complete task"

// Artifact is the named output of one Respond call.
type Artifact struct {
	Name  string
	Parts []string
}

// OK reports whether the artifact carries a model answer.
func (a Artifact) OK() bool {
	return a.Name == ArtifactResponse
}

// Text joins the artifact's parts.
func (a Artifact) Text() string {
	return strings.Join(a.Parts, "")
}

// ResponseArtifact wraps a completion.
func ResponseArtifact(text string) Artifact {
	return Artifact{Name: ArtifactResponse, Parts: []string{text}}
}

// ErrorArtifact returns the generic failure artifact.
func ErrorArtifact() Artifact {
	return Artifact{Name: ArtifactError, Parts: []string{FailureMessage}}
}
