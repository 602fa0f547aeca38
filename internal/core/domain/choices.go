package domain

import "strings"

// ParseChoices splits the raw multi-line choice text submitted with a new poll
// into an ordered list of unique, non-empty labels. Blank lines are dropped and
// a repeated label keeps its first position.
func ParseChoices(raw string) ([]string, error) {
	seen := make(map[string]struct{})
	var labels []string
	for _, line := range strings.Split(raw, "\n") {
		label := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return nil, ErrNoChoices
	}
	return labels, nil
}

// ValidateNewPoll checks the creation invariants shared by every PollStore:
// a non-empty title and a non-empty set of unique, non-empty labels.
func ValidateNewPoll(title string, labels []string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(labels) == 0 {
		return ErrNoChoices
	}
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if label == "" {
			return ErrNoChoices
		}
		if _, dup := seen[label]; dup {
			return ErrDuplicateChoice
		}
		seen[label] = struct{}{}
	}
	return nil
}
