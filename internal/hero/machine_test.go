package hero

import (
	"math"
	"testing"
)

func kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}

func expectKinds(t *testing.T, effects []Effect, want ...EffectKind) {
	t.Helper()
	got := kinds(effects)
	if len(got) != len(want) {
		t.Fatalf("expected effects %v, got %v", want, effects)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected effects %v, got %v", want, effects)
		}
	}
}

func mounted(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine(DefaultOptions())
	expectKinds(t, m.Handle(Mounted{}), EffectSeek, EffectPlay)
	if m.Phase() != PhaseAutoplayForward {
		t.Fatalf("expected autoplay_forward after mount, got %s", m.Phase())
	}
	return m
}

func armed(t *testing.T) *Machine {
	t.Helper()
	m := mounted(t)
	m.Handle(TimeUpdate{Position: 4.02})
	if m.Phase() != PhaseArmedForward {
		t.Fatalf("expected armed_forward, got %s", m.Phase())
	}
	return m
}

func complete(t *testing.T) *Machine {
	t.Helper()
	m := armed(t)
	m.Handle(Scroll{Offset: 12, HeroVisible: true})
	m.Handle(TimeUpdate{Position: 8.01})
	if m.Phase() != PhaseCompleteArmed {
		t.Fatalf("expected complete_armed, got %s", m.Phase())
	}
	return m
}

func TestMachine_MountOnlyOnce(t *testing.T) {
	m := mounted(t)
	if effects := m.Handle(Mounted{}); effects != nil {
		t.Errorf("expected second mount to be ignored, got %v", effects)
	}
}

func TestMachine_AutoplayPositionNeverExceedsCutoff(t *testing.T) {
	m := mounted(t)
	for _, pos := range []float64{0.25, 1.5, 3.99} {
		m.Handle(TimeUpdate{Position: pos})
		if m.Position() > ForwardCutoff {
			t.Fatalf("position %f exceeds cutoff during autoplay", m.Position())
		}
	}

	effects := m.Handle(TimeUpdate{Position: 4.27})
	expectKinds(t, effects, EffectPause, EffectSeek)
	if effects[1].Position != ForwardCutoff {
		t.Errorf("expected seek to %f, got %f", ForwardCutoff, effects[1].Position)
	}
	if m.Position() != ForwardCutoff {
		t.Errorf("expected position clamped to %f, got %f", ForwardCutoff, m.Position())
	}
}

func TestMachine_AutoplayRefusedArmsWithoutReplay(t *testing.T) {
	m := mounted(t)
	effects := m.Handle(PlayRejected{})
	expectKinds(t, effects, EffectSeek)
	if effects[0].Position != ForwardCutoff {
		t.Errorf("expected seek to cutoff, got %f", effects[0].Position)
	}
	if m.Phase() != PhaseArmedForward {
		t.Errorf("expected armed_forward, got %s", m.Phase())
	}
	for _, e := range effects {
		if e.Kind == EffectPlay {
			t.Error("refused autoplay must not be retried")
		}
	}
}

func TestMachine_DownwardScrollLocksOnce(t *testing.T) {
	m := armed(t)

	effects := m.Handle(Scroll{Offset: 5})
	expectKinds(t, effects, EffectLock, EffectSeek, EffectPlay)
	if m.Phase() != PhaseLockedForward {
		t.Fatalf("expected locked_forward, got %s", m.Phase())
	}

	if effects := m.Handle(Scroll{Offset: 40}); effects != nil {
		t.Errorf("expected second downward scroll to be ignored, got %v", effects)
	}
	if effects := m.Handle(Scroll{Offset: 90}); effects != nil {
		t.Errorf("expected third downward scroll to be ignored, got %v", effects)
	}
	if m.Phase() != PhaseLockedForward {
		t.Errorf("expected to stay in locked_forward, got %s", m.Phase())
	}
}

func TestMachine_LockPinsSampledOffset(t *testing.T) {
	m := armed(t)

	effects := m.Handle(Scroll{Offset: 5})
	if effects[0].Kind != EffectLock || effects[0].Offset != 5 {
		t.Fatalf("expected lock at the sampled offset 5, got %v", effects[0])
	}
}

func TestMachine_UpwardOrStillScrollDoesNotArm(t *testing.T) {
	m := NewMachine(DefaultOptions())
	m.Handle(Mounted{Offset: 300})
	m.Handle(TimeUpdate{Position: 4})

	if effects := m.Handle(Scroll{Offset: 300}); effects != nil {
		t.Errorf("expected unchanged offset to be ignored, got %v", effects)
	}
	if effects := m.Handle(Scroll{Offset: 250}); effects != nil {
		t.Errorf("expected upward scroll to be ignored, got %v", effects)
	}
	if m.Phase() != PhaseArmedForward {
		t.Errorf("expected armed_forward, got %s", m.Phase())
	}
}

func TestMachine_LockedSegmentStaysInBounds(t *testing.T) {
	m := armed(t)
	m.Handle(Scroll{Offset: 1})

	for _, pos := range []float64{3.9, 4.5, 6.1, 7.99} {
		m.Handle(TimeUpdate{Position: pos})
		if m.Position() < ForwardCutoff || m.Position() > SegmentEnd {
			t.Fatalf("position %f left [%f, %f]", m.Position(), ForwardCutoff, SegmentEnd)
		}
	}

	effects := m.Handle(TimeUpdate{Position: 8.2})
	expectKinds(t, effects, EffectPause, EffectSeek, EffectUnlock)
	if effects[1].Position != SegmentEnd {
		t.Errorf("expected seek to %f, got %f", SegmentEnd, effects[1].Position)
	}
	if m.Phase() != PhaseCompleteArmed {
		t.Errorf("expected complete_armed, got %s", m.Phase())
	}
}

func TestMachine_PlayRejectedInSegmentSkipsToEnd(t *testing.T) {
	m := armed(t)
	m.Handle(Scroll{Offset: 1})

	effects := m.Handle(PlayRejected{})
	expectKinds(t, effects, EffectSeek, EffectUnlock)
	if m.Phase() != PhaseCompleteArmed {
		t.Errorf("expected complete_armed, got %s", m.Phase())
	}
}

func TestMachine_CompletionScrollFiresOnce(t *testing.T) {
	m := complete(t)

	effects := m.Handle(Scroll{Offset: 30})
	expectKinds(t, effects, EffectScrollTo)
	if effects[0].Anchor != "about" {
		t.Errorf("expected anchor about, got %q", effects[0].Anchor)
	}
	if m.Phase() != PhaseReleased {
		t.Fatalf("expected released, got %s", m.Phase())
	}

	if effects := m.Handle(Scroll{Offset: 60}); effects != nil {
		t.Errorf("expected no further effect after completion scroll, got %v", effects)
	}
}

func TestMachine_RewindRequiresVisibleHero(t *testing.T) {
	m := complete(t)
	if effects := m.Handle(Scroll{Offset: 2, HeroVisible: false}); effects != nil {
		t.Errorf("expected rewind to need a visible hero, got %v", effects)
	}

	effects := m.Handle(Scroll{Offset: 1, HeroVisible: true})
	expectKinds(t, effects, EffectLock, EffectStartRewind)
	if m.Phase() != PhaseRewindActive {
		t.Errorf("expected rewind_active, got %s", m.Phase())
	}
}

func TestMachine_RewindDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Rewind = false
	m := NewMachine(opts)
	m.Handle(Mounted{Offset: 100})
	m.Handle(PlayRejected{})
	m.Handle(Scroll{Offset: 120})
	m.Handle(TimeUpdate{Position: 8})

	if effects := m.Handle(Scroll{Offset: 50, HeroVisible: true}); effects != nil {
		t.Errorf("expected no rewind when disabled, got %v", effects)
	}
	if m.Phase() != PhaseCompleteArmed {
		t.Errorf("expected complete_armed, got %s", m.Phase())
	}
}

func TestMachine_RewindFramesEaseBackToCutoff(t *testing.T) {
	m := complete(t)
	m.Handle(Scroll{Offset: 5, HeroVisible: true})

	effects := m.Handle(RewindFrame{Progress: 0.5})
	expectKinds(t, effects, EffectSeek)
	if math.Abs(effects[0].Position-6.0) > 1e-9 {
		t.Errorf("expected midpoint position 6.0, got %f", effects[0].Position)
	}

	previous := m.Position()
	for _, p := range []float64{0.6, 0.75, 0.9, 0.99} {
		m.Handle(RewindFrame{Progress: p})
		if m.Position() > previous {
			t.Fatalf("rewind position increased from %f to %f", previous, m.Position())
		}
		previous = m.Position()
	}

	effects = m.Handle(RewindFrame{Progress: 1})
	expectKinds(t, effects, EffectSeek, EffectUnlock)
	if effects[0].Position != ForwardCutoff {
		t.Errorf("expected final seek to cutoff, got %f", effects[0].Position)
	}
	if m.Phase() != PhaseArmedForward {
		t.Fatalf("expected armed_forward after rewind, got %s", m.Phase())
	}

	// The forward sequence replays.
	expectKinds(t, m.Handle(Scroll{Offset: 9}), EffectLock, EffectSeek, EffectPlay)
}

func TestMachine_ScrollIgnoredWhileRewinding(t *testing.T) {
	m := complete(t)
	m.Handle(Scroll{Offset: 5, HeroVisible: true})

	if effects := m.Handle(Scroll{Offset: 1, HeroVisible: true}); effects != nil {
		t.Errorf("expected scroll during rewind to be ignored, got %v", effects)
	}
	if effects := m.Handle(Scroll{Offset: 80, HeroVisible: true}); effects != nil {
		t.Errorf("expected scroll during rewind to be ignored, got %v", effects)
	}
}

func TestMachine_TeardownUnlocksOnlyWhenLocked(t *testing.T) {
	locked := armed(t)
	locked.Handle(Scroll{Offset: 3})
	expectKinds(t, locked.Handle(Teardown{}), EffectPause, EffectCancelRewind, EffectUnlock)
	if locked.Phase() != PhaseTornDown {
		t.Errorf("expected torn_down, got %s", locked.Phase())
	}

	idle := armed(t)
	expectKinds(t, idle.Handle(Teardown{}), EffectPause, EffectCancelRewind)

	if effects := idle.Handle(Scroll{Offset: 500}); effects != nil {
		t.Errorf("expected torn down machine to ignore events, got %v", effects)
	}
}

func TestMachine_LockedIffLockingPhase(t *testing.T) {
	m := NewMachine(DefaultOptions())
	held := false
	events := []Event{
		Mounted{Offset: 0},
		Scroll{Offset: 10},
		TimeUpdate{Position: 2},
		TimeUpdate{Position: 4.1},
		Scroll{Offset: 5},
		Scroll{Offset: 20},
		Scroll{Offset: 40},
		TimeUpdate{Position: 6},
		TimeUpdate{Position: 8},
		Scroll{Offset: 10, HeroVisible: true},
		RewindFrame{Progress: 0.3},
		Scroll{Offset: 90, HeroVisible: true},
		RewindFrame{Progress: 1},
		Scroll{Offset: 15},
		PlayRejected{},
		Scroll{Offset: 300},
		Scroll{Offset: 200, HeroVisible: false},
		Scroll{Offset: 100, HeroVisible: true},
		Teardown{},
	}
	for i, ev := range events {
		for _, e := range m.Handle(ev) {
			switch e.Kind {
			case EffectLock:
				if held {
					t.Fatalf("event %d (%T): lock acquired twice", i, ev)
				}
				held = true
			case EffectUnlock:
				held = false
			}
		}
		if held != m.Phase().Locked() {
			t.Fatalf("event %d (%T): lock held=%v in phase %s", i, ev, held, m.Phase())
		}
	}
	if held {
		t.Error("lock left held after teardown")
	}
}

func TestEaseInOutQuad(t *testing.T) {
	cases := map[float64]float64{
		-1:   0,
		0:    0,
		0.25: 0.125,
		0.5:  0.5,
		0.75: 0.875,
		1:    1,
		2:    1,
	}
	for p, want := range cases {
		if got := EaseInOutQuad(p); math.Abs(got-want) > 1e-12 {
			t.Errorf("EaseInOutQuad(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestRewindPositionMidpoint(t *testing.T) {
	if got := RewindPosition(8.0, 4.0, 0.5); got != 6.0 {
		t.Errorf("expected 6.0 at half progress, got %v", got)
	}
}
