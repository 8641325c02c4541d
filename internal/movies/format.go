package movies

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const maxStars = 5

// StarCount maps a 0–10 vote average to 0–5 filled stars.
func StarCount(vote float64) int {
	n := int(math.Round(vote / 2))
	if n < 0 {
		return 0
	}
	if n > maxStars {
		return maxStars
	}
	return n
}

// Stars renders StarCount as five glyphs, filled first.
func Stars(vote float64) string {
	n := StarCount(vote)
	return strings.Repeat("★", n) + strings.Repeat("☆", maxStars-n)
}

// Detail is the expanded view of one movie.
type Detail struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Genres   string `json:"genres"`
	Year     string `json:"year"`
	Runtime  string `json:"runtime"`
	Budget   string `json:"budget"`
	Revenue  string `json:"revenue"`
	Stars    string `json:"stars"`
}

// Formatter renders details with locale-specific digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Money formats an amount in whole dollars, e.g. "$1,500,000" for English.
func (f *Formatter) Money(n int64) string {
	return f.p.Sprintf("$%d", n)
}

// Detail builds the expanded view of m.
func (f *Formatter) Detail(m Movie) Detail {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return Detail{
		ID:       m.ID,
		Title:    m.Title,
		Overview: m.Overview,
		Genres:   strings.Join(names, " - "),
		Year:     year,
		Runtime:  f.p.Sprintf("%d min", m.Runtime),
		Budget:   f.Money(m.Budget),
		Revenue:  f.Money(m.Revenue),
		Stars:    Stars(m.VoteAverage),
	}
}
