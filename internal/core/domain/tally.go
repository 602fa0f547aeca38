package domain

// Tally returns the number of votes cast on p across all of its choices.
// A nil poll or a poll without choices tallies to zero.
func Tally(p *Poll) int64 {
	if p == nil {
		return 0
	}
	var total int64
	for _, c := range p.Choices {
		total += c.Count
	}
	return total
}
