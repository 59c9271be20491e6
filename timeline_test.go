package motion

import (
	"context"
	"errors"
	"testing"
)

var (
	_ Player = (*Motion)(nil)
	_ Player = (*Timeline)(nil)
)

// scripted is a Player that appends its name to a shared log when played.
type scripted struct {
	name string
	log  *[]string
	err  error
}

func (s *scripted) Play(ctx context.Context) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestTimelineOrder(t *testing.T) {
	var log []string
	tl := NewTimeline().
		Add(&scripted{name: "a", log: &log}).
		Add(&scripted{name: "b", log: &log}).
		Add(&scripted{name: "c", log: &log})

	if err := tl.Play(context.Background()); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Entry %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

func TestTimelineNested(t *testing.T) {
	var log []string
	inner := NewTimeline().
		Add(&scripted{name: "inner-1", log: &log}).
		Add(&scripted{name: "inner-2", log: &log})
	tl := NewTimeline().
		Add(&scripted{name: "first", log: &log}).
		Add(inner).
		Add(&scripted{name: "last", log: &log})

	if err := tl.Play(context.Background()); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	want := []string{"first", "inner-1", "inner-2", "last"}
	for i := range want {
		if i >= len(log) || log[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, log)
		}
	}
}

func TestTimelineClear(t *testing.T) {
	var log []string
	tl := NewTimeline().
		Add(&scripted{name: "a", log: &log}).
		Clear()

	if err := tl.Play(context.Background()); err != nil {
		t.Fatalf("Play after Clear failed: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("Expected no entries executed, got %v", log)
	}
}

func TestTimelineFailureAborts(t *testing.T) {
	var log []string
	cause := errors.New("entry failed")
	tl := NewTimeline().
		Add(&scripted{name: "a", log: &log}).
		Add(&scripted{name: "b", log: &log, err: cause}).
		Add(&scripted{name: "c", log: &log})

	err := tl.Play(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("Expected wrapped entry error, got %v", err)
	}
	if len(log) != 2 {
		t.Errorf("Expected playback to stop at the failing entry, got %v", log)
	}
}

func TestTimelineSequencesMotionCompletion(t *testing.T) {
	env := newFakeEnv()
	var log []string

	hook := func(name string) Hook {
		return func(context.Context, Context) error {
			log = append(log, name)
			return nil
		}
	}

	a := New(env, &fakeNode{id: "a"}).
		AddStep(stepTo(0, 0)).
		Before(hook("a-before")).
		After(hook("a-after"))
	b := New(env, &fakeNode{id: "b"}).
		AddStep(stepTo(0, 0)).
		Before(hook("b-before")).
		After(hook("b-after"))

	tl := NewTimeline().Add(a).Add(b)
	if err := tl.Play(context.Background()); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	want := []string{"a-before", "a-after", "b-before", "b-after"}
	for i := range want {
		if i >= len(log) || log[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, log)
		}
	}
}
