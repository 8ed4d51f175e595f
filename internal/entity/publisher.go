package entity

import (
	"slices"
	"strings"
)

// UnknownPublisher is the name given to a publisher built from a blank name.
const UnknownPublisher = "N/A"

type Publisher struct {
	name    string
	bookIDs []int
}

// NewPublisher never fails: a blank name becomes UnknownPublisher.
func NewPublisher(name string) *Publisher {
	name = strings.TrimSpace(name)
	if name == "" {
		name = UnknownPublisher
	}
	return &Publisher{name: name}
}

func (p *Publisher) Name() string { return p.name }

// BookIDs lists the books attributed to this publisher. It is informational;
// repositories answer publisher queries from their own indexes.
func (p *Publisher) BookIDs() []int { return slices.Clone(p.bookIDs) }

func (p *Publisher) AddBook(bookID int) {
	p.bookIDs = appendUnique(p.bookIDs, bookID)
}

func (p *Publisher) String() string { return "<Publisher " + p.name + ">" }

func ComparePublishers(a, b *Publisher) int {
	return strings.Compare(a.name, b.name)
}
