package records

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
)

// Filter yields the records whose display name or any tag contains query,
// compared with Unicode case folding. An empty query yields every record.
// The sequence is lazy and can be ranged over more than once.
func (s *Store) Filter(query string) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		// Caser хранит состояние, поэтому создаем его на каждый проход
		fold := cases.Fold()
		q := fold.String(query)

		for _, rec := range s.records {
			if q != "" && !matches(fold, rec, q) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func matches(fold cases.Caser, rec *Record, q string) bool {
	if strings.Contains(fold.String(rec.Name), q) {
		return true
	}
	for _, tag := range rec.Tags {
		if strings.Contains(fold.String(tag), q) {
			return true
		}
	}
	return false
}
