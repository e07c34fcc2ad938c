package store

import "gift-suggest-core/internal/domain/entity"

// DefaultOccasions is the fixed set of occasions clients may reference.
var DefaultOccasions = []entity.Occasion{
	{ID: 1, Name: "Geburtstag"},
	{ID: 2, Name: "Weihnachten"},
	{ID: 3, Name: "Allgemein"},
}

// StaticOccasions resolves occasions from an in-memory list. It is read-only
// after construction and safe for concurrent use.
type StaticOccasions struct {
	byID map[int]entity.Occasion
}

func NewStaticOccasions(occasions []entity.Occasion) *StaticOccasions {
	byID := make(map[int]entity.Occasion, len(occasions))
	for _, o := range occasions {
		byID[o.ID] = o
	}
	return &StaticOccasions{byID: byID}
}

func (s *StaticOccasions) FindOccasion(id int) (entity.Occasion, bool) {
	o, ok := s.byID[id]
	return o, ok
}
