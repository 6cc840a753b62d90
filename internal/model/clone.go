package model

import (
	"sort"

	"github.com/google/uuid"
)

// CloneQuestion returns a deep copy of q, ids included. Slices and the
// validation config are copied so the clone never aliases the original.
func CloneQuestion(q Question) Question {
	out := q
	out.Options = cloneStrings(q.Options)
	out.BulletPoints = cloneStrings(q.BulletPoints)
	out.TableColumns = cloneStrings(q.TableColumns)
	out.TableRowHeaders = cloneStrings(q.TableRowHeaders)
	if q.TableRows != nil {
		out.TableRows = make([][]string, len(q.TableRows))
		for i, row := range q.TableRows {
			out.TableRows[i] = cloneStrings(row)
		}
	}
	if q.Validation != nil {
		v := *q.Validation
		if q.Validation.Min != nil {
			min := *q.Validation.Min
			v.Min = &min
		}
		if q.Validation.Max != nil {
			max := *q.Validation.Max
			v.Max = &max
		}
		out.Validation = &v
	}
	return out
}

// CloneSection returns a deep copy of s, ids included.
func CloneSection(s Section) Section {
	out := s
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = CloneQuestion(q)
	}
	return out
}

// FreshSectionCopy returns a deep copy of s with new ids for the section
// and every question it contains. Questions are renumbered 1..N in their
// original relative order. The section's own Order is left for the
// caller to assign.
func FreshSectionCopy(s Section) Section {
	out := CloneSection(s)
	out.ID = uuid.New()
	sort.SliceStable(out.Questions, func(i, j int) bool {
		return out.Questions[i].Order < out.Questions[j].Order
	})
	for i := range out.Questions {
		out.Questions[i].ID = uuid.New()
		out.Questions[i].Order = i + 1
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
