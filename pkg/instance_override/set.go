package instance_override

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/klokku/cashflow/pkg/calendar"
)

// Set holds the overrides of one item keyed by original date. Methods never modify the
// receiver; With and Without return new sets.
type Set map[string]Override

// NewSet builds a set; a later override replaces an earlier one with the same original date.
func NewSet(overrides ...Override) Set {
	s := make(Set, len(overrides))
	for _, o := range overrides {
		s[o.OriginalDate.String()] = o
	}
	return s
}

// Resolve returns the override recorded for the occurrence originally due on originalDate.
func (s Set) Resolve(originalDate calendar.Date) (Override, bool) {
	o, ok := s[originalDate.String()]
	return o, ok
}

func (s Set) With(o Override) Set {
	next := maps.Clone(s)
	if next == nil {
		next = make(Set, 1)
	}
	next[o.OriginalDate.String()] = o
	return next
}

func (s Set) Without(originalDate calendar.Date) Set {
	if _, ok := s[originalDate.String()]; !ok {
		return s
	}
	next := maps.Clone(s)
	delete(next, originalDate.String())
	return next
}

// Sorted lists the overrides by original date.
func (s Set) Sorted() []Override {
	keys := slices.Sorted(maps.Keys(s))
	sorted := make([]Override, 0, len(keys))
	for _, k := range keys {
		sorted = append(sorted, s[k])
	}
	return sorted
}

// InboundTo returns the non-skipped overrides whose original date lies outside month but
// that place at least one payment inside it.
func (s Set) InboundTo(month calendar.YearMonth) []Override {
	var inbound []Override
	for _, o := range s.Sorted() {
		if o.IsSkipped() || month.Contains(o.OriginalDate) {
			continue
		}
		for _, p := range o.Placements(o.NewAmount.Decimal) {
			if month.Contains(p.Date) {
				inbound = append(inbound, o)
				break
			}
		}
	}
	return inbound
}

func (s Set) MarshalJSON() ([]byte, error) {
	sorted := s.Sorted()
	return json.Marshal(sorted)
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var overrides []Override
	if err := json.Unmarshal(data, &overrides); err != nil {
		return err
	}
	if overrides == nil {
		*s = nil
		return nil
	}
	*s = NewSet(overrides...)
	return nil
}
