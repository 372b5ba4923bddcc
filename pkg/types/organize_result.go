package types

import "time"

// CopyResult holds the outcome of copying a single file
type CopyResult struct {
	Task   CopyTask `json:"task"`
	Copied bool     `json:"copied"`
	Bytes  int64    `json:"bytes"`
	Error  error    `json:"error,omitempty"`
}

// RunSummary aggregates one invocation.
type RunSummary struct {
	Results  []CopyResult  `json:"results"`
	Copied   int           `json:"copied"`
	Failed   int           `json:"failed"`
	Filtered int           `json:"filtered"`
	Warnings []error       `json:"-"`
	Bytes    int64         `json:"bytes"`
	DryRun   bool          `json:"dry_run"`
	Duration time.Duration `json:"duration"`
}

// Candidates is the number of files that reached the copy step.
func (s *RunSummary) Candidates() int {
	return len(s.Results)
}

// Failures returns the results that carry an error.
func (s *RunSummary) Failures() []CopyResult {
	var failed []CopyResult
	for _, r := range s.Results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// ExitCode is 1 when there were files to copy and every one failed.
func (s *RunSummary) ExitCode() int {
	if s.Candidates() > 0 && s.Failed == s.Candidates() {
		return 1
	}
	return 0
}
