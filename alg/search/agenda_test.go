package search

import "testing"

type scored struct {
	score float64
	seq   int
}

func (s *scored) Score() float64 {
	return s.score
}

func better(a, b Candidate) bool {
	sa, sb := a.(*scored), b.(*scored)
	if sa.score != sb.score {
		return sa.score > sb.score
	}
	return sa.seq < sb.seq
}

func TestAgendaKeepsBest(t *testing.T) {
	agenda := NewAgenda(3, better)
	for i, score := range []float64{-5, -1, -9, -2, -7, -3} {
		agenda.AddCandidate(&scored{score, i})
	}
	if agenda.Len() != 3 {
		t.Fatal("Agenda should hold 3 candidates, has", agenda.Len())
	}
	sorted := agenda.Sorted()
	want := []float64{-1, -2, -3}
	for i, cand := range sorted {
		if cand.Score() != want[i] {
			t.Error("Rank", i, "should score", want[i], "got", cand.Score())
		}
	}
}

func TestAgendaTieBreakDeterministic(t *testing.T) {
	agenda := NewAgenda(2, better)
	agenda.AddCandidate(&scored{-1, 1})
	agenda.AddCandidate(&scored{-1, 0})
	agenda.AddCandidate(&scored{-1, 2})
	sorted := agenda.Sorted()
	if sorted[0].(*scored).seq != 0 || sorted[1].(*scored).seq != 1 {
		t.Error("Equal scores should rank by insertion order, got",
			sorted[0].(*scored).seq, sorted[1].(*scored).seq)
	}
}
