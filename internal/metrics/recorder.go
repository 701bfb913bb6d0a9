package metrics

import "time"

// Fallback sources for record dates.
const (
	FallbackFrontMatter = "frontmatter"
	FallbackMidnight    = "midnight"
)

// Recorder defines observability hooks for index builds.
type Recorder interface {
	IncFilesIndexed(scope, kind string)
	IncDuplicate(scope string)
	IncDateFallback(field, source string)
	IncFrontMatterWarning(kind string)
	ObserveIndexDuration(scope string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFilesIndexed(string, string)              {}
func (NoopRecorder) IncDuplicate(string)                         {}
func (NoopRecorder) IncDateFallback(string, string)              {}
func (NoopRecorder) IncFrontMatterWarning(string)                {}
func (NoopRecorder) ObserveIndexDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)          {}
