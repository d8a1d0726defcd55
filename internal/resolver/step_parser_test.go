package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStepParser_PlanOrder(t *testing.T) {
	words := []string{"A", "B", "C"}
	s := NewStepParser(3)

	var got []string
	for _, w := range s.Plan(len(words)) {
		got = append(got, w.Text(words))
	}

	want := []string{"A B C", "A B", "B C", "C", "B", "A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plan(3) order mismatch (-want +got):\n%s", diff)
	}
}

func TestStepParser_PlanSizes(t *testing.T) {
	s := NewStepParser(10)
	if s.MaxWords() != 10 {
		t.Fatalf("MaxWords() = %d, want 10", s.MaxWords())
	}

	for n := 1; n <= 10; n++ {
		want := n * (n + 1) / 2
		if got := len(s.Plan(n)); got != want {
			t.Errorf("len(Plan(%d)) = %d, want %d", n, got, want)
		}
	}

	if got := s.Plan(0); got != nil {
		t.Errorf("Plan(0) = %v, want nil", got)
	}
	if got := s.Plan(11); got != nil {
		t.Errorf("Plan(11) = %v, want nil", got)
	}
}

func TestStepParser_LevelOne(t *testing.T) {
	s := NewStepParser(1)
	want := []Window{{Start: 0, Length: 1}}
	if diff := cmp.Diff(want, s.Plan(1)); diff != "" {
		t.Errorf("Plan(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStepParser_DefaultCeiling(t *testing.T) {
	if got := NewStepParser(0).MaxWords(); got != DefaultMaxWords {
		t.Errorf("NewStepParser(0).MaxWords() = %d, want %d", got, DefaultMaxWords)
	}
}
