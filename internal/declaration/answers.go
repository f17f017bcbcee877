// Package declaration manages a supplier's answers to a framework
// declaration and derives its completion status.
package declaration

// Declaration statuses.
const (
	StatusUnstarted = "unstarted"
	StatusStarted   = "started"
	StatusComplete  = "complete"
)

const statusKey = "status"

// Answers maps question id to answer value.
type Answers map[string]any

// Status is the stored status, or unstarted when there is none.
func (a Answers) Status() string {
	return StatusOf(a)
}

// StatusOf reads the status of a stored declaration.
func StatusOf(declaration map[string]any) string {
	if len(declaration) == 0 {
		return StatusUnstarted
	}
	status, _ := declaration[statusKey].(string)
	if status == "" {
		return StatusUnstarted
	}
	return status
}

// Merge overlays submitted on saved and returns a new answer set. Keys absent
// from submitted keep their saved values.
func Merge(saved, submitted map[string]any) Answers {
	merged := make(Answers, len(saved)+len(submitted))
	for k, v := range saved {
		merged[k] = v
	}
	for k, v := range submitted {
		merged[k] = v
	}
	return merged
}
