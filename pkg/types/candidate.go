package types

// Candidate is one file discovered by the walker.
type Candidate struct {
	AbsPath string `json:"abs_path"`
	// RelPath is relative to the source directory, using OS separators.
	RelPath string `json:"rel_path"`
}

// CopyTask pairs a candidate with the destination name reserved for it.
type CopyTask struct {
	Seq    int    `json:"seq"`
	Source string `json:"source"`
	Rel    string `json:"rel"`
	Name   string `json:"name"`
	Dest   string `json:"dest"`
}
