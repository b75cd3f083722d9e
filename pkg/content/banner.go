package content

import "strings"

const (
	// DefaultTitle is used when the site has no title.
	DefaultTitle = "PORTFOLIO"
	// Separator joins repeated banner labels.
	Separator = " • "

	bannerRepeats = 8
	bannerBlocks  = 2
)

// NameBanner returns the name row: the upper-cased site title repeated
// eight times, joined and terminated by Separator, emitted as two blocks.
func NameBanner(site Site) []string {
	label := strings.ToUpper(strings.TrimSpace(site.Title))
	if label == "" {
		label = DefaultTitle
	}
	labels := make([]string, bannerRepeats)
	for i := range labels {
		labels[i] = label
	}
	block := strings.Join(labels, Separator) + Separator
	blocks := make([]string, bannerBlocks)
	for i := range blocks {
		blocks[i] = block
	}
	return blocks
}

// Card is one entry of the projects row.
type Card struct {
	// Key selects the preview; empty for cards that open nothing.
	Key   string
	Title string
	Label string
}

// Text returns the card as a single line. Cards that open a preview carry
// an arrow.
func (c Card) Text() string {
	s := c.Title
	if c.Key != "" {
		s += " ↗"
	}
	if c.Label != "" {
		s = c.Label + "  " + s
	}
	return s
}

// ProjectCards returns the projects row. The list is emitted twice so the
// row already holds two copies of its content. An empty list yields a
// single placeholder card.
func ProjectCards(projects []Project) []Card {
	if len(projects) == 0 {
		return []Card{{Title: "Projects coming soon"}}
	}
	cards := make([]Card, 0, 2*len(projects))
	for i := 0; i < 2; i++ {
		for _, p := range projects {
			title := p.Title
			if title == "" {
				title = "Untitled"
			}
			cards = append(cards, Card{Key: p.Key(), Title: title, Label: p.Label})
		}
	}
	return cards
}
