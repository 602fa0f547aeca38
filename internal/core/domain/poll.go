package domain

import (
	"time"

	"github.com/google/uuid"
)

// Poll is a titled, owner-bound set of choices. Choices keep the order they
// were created in: votes address them by position.
type Poll struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Owner     uuid.UUID `json:"owner"`
	Choices   []Choice  `json:"choices"`
	CreatedAt time.Time `json:"created_at"`
}

type Choice struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ChoiceAt returns the choice at position i, or false when i is out of range.
func (p *Poll) ChoiceAt(i int) (Choice, bool) {
	if p == nil || i < 0 || i >= len(p.Choices) {
		return Choice{}, false
	}
	return p.Choices[i], true
}

// NewChoices builds the zero-count choice list for a new poll.
func NewChoices(labels []string) []Choice {
	choices := make([]Choice, 0, len(labels))
	for _, label := range labels {
		choices = append(choices, Choice{Label: label})
	}
	return choices
}

// PollView is the detail representation handed to the presentation layer.
type PollView struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Owner  uuid.UUID `json:"owner"`
	Labels []string  `json:"labels"`
	Votes  []int64   `json:"votes"`
	Total  int64     `json:"total"`
}

func NewPollView(p *Poll) PollView {
	view := PollView{
		ID:     p.ID,
		Title:  p.Title,
		Owner:  p.Owner,
		Labels: make([]string, 0, len(p.Choices)),
		Votes:  make([]int64, 0, len(p.Choices)),
		Total:  Tally(p),
	}
	for _, c := range p.Choices {
		view.Labels = append(view.Labels, c.Label)
		view.Votes = append(view.Votes, c.Count)
	}
	return view
}

// PollSummary is the list-view representation of a poll.
type PollSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Owner     uuid.UUID `json:"owner"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPollSummary(p *Poll) PollSummary {
	return PollSummary{
		ID:        p.ID,
		Title:     p.Title,
		Owner:     p.Owner,
		Votes:     Tally(p),
		CreatedAt: p.CreatedAt,
	}
}
