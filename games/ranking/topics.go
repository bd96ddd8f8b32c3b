/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"slices"

	"github.com/samber/lo"
)

// Topic is a premade prompt with the options a spotlight ranks.
type Topic struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Question is what a round is played on, premade or written by the spotlight.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

func (t Topic) question() Question {
	return Question{Prompt: t.Prompt, Options: slices.Clone(t.Options)}
}

var defaultTopics = []Topic{
	{ID: "t1", Prompt: "Rank these Weekend Activities:", Options: []string{"Netflix Binge", "Clubbing", "Hiking", "Gaming", "Sleep"}},
	{ID: "t2", Prompt: "Rank these 'Red Flags':", Options: []string{"Chews Loudly", "Rude to Waiter", "Talks About Ex", "Bad Texter", "Always Late"}},
	{ID: "t3", Prompt: "Rank these Superpowers:", Options: []string{"Invisibility", "Flight", "Telepathy", "Strength", "Time Travel"}},
	{ID: "t4", Prompt: "Rank these Fast Food chains:", Options: []string{"McDonald's", "KFC", "Subway", "Domino's", "Taco Bell"}},
	{ID: "t5", Prompt: "Rank these Movie Genres:", Options: []string{"Horror", "Rom-Com", "Sci-Fi", "Action", "Documentary"}},
	{ID: "t6", Prompt: "Rank these Pizza Toppings:", Options: []string{"Pineapple", "Pepperoni", "Mushrooms", "Olives", "Extra Cheese"}},
	{ID: "t7", Prompt: "Rank these Holidays:", Options: []string{"Beach Resort", "City Break", "Road Trip", "Camping", "Staycation"}},
	{ID: "t8", Prompt: "Rank these Household Chores:", Options: []string{"Dishes", "Laundry", "Vacuuming", "Cooking", "Taking Out Trash"}},
	{ID: "t9", Prompt: "Rank these Pets:", Options: []string{"Dog", "Cat", "Goldfish", "Parrot", "Snake"}},
	{ID: "t10", Prompt: "Rank these Ways to Travel:", Options: []string{"Plane", "Train", "Car", "Bike", "Boat"}},
}

// Catalog is a fixed, read-only set of premade topics.
type Catalog struct {
	topics []Topic
	byID   map[string]Topic
}

func NewCatalog(topics []Topic) *Catalog {
	return &Catalog{
		topics: slices.Clone(topics),
		byID:   lo.KeyBy(topics, func(t Topic) string { return t.ID }),
	}
}

// DefaultCatalog returns the built-in topics.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultTopics)
}

func (c *Catalog) Lookup(id string) (Topic, bool) {
	t, ok := c.byID[id]

	return t, ok
}

func (c *Catalog) Len() int {
	return len(c.topics)
}

// Sample returns up to n distinct topics in random order.
func (c *Catalog) Sample(n int, s *Shuffler) []Topic {
	ids := lo.Map(c.topics, func(t Topic, _ int) string { return t.ID })
	s.Shuffle(ids)

	if n < len(ids) {
		ids = ids[:n]
	}

	return lo.Map(ids, func(id string, _ int) Topic { return c.byID[id] })
}
