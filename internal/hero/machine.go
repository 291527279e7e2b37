package hero

// Machine is the choreographer's transition function. It performs no I/O:
// Handle moves to the next phase and returns the effects the caller must
// apply, in order.
//
// Every transition changes phase before its effects are returned, so the
// trigger that fired it is disarmed before anything else can observe it.
type Machine struct {
	opts     Options
	phase    Phase
	position float64
	// offset is the last scroll sample outside a locked phase. Locking pins
	// the page at this sample, so while locked it is also the offset the
	// release restores and the restoration scroll classifies as no motion.
	offset float64
}

func NewMachine(opts Options) *Machine {
	return &Machine{opts: opts, phase: PhaseIdle}
}

func (m *Machine) Phase() Phase { return m.phase }

// Position is the tracked clip position, clamped to the active segment.
func (m *Machine) Position() float64 { return m.position }

func (m *Machine) Options() Options { return m.opts }

func (m *Machine) Handle(ev Event) []Effect {
	switch ev := ev.(type) {
	case Mounted:
		return m.mount(ev.Offset)
	case TimeUpdate:
		return m.timeUpdate(ev.Position)
	case PlayRejected:
		return m.playRejected()
	case Scroll:
		return m.scroll(ev)
	case RewindFrame:
		return m.rewindFrame(ev.Progress)
	case Teardown:
		return m.teardown()
	}
	return nil
}

func (m *Machine) mount(offset float64) []Effect {
	if m.phase != PhaseIdle {
		return nil
	}
	m.phase = PhaseAutoplayForward
	m.position = 0
	m.offset = offset
	return []Effect{seek(0), play()}
}

func (m *Machine) timeUpdate(position float64) []Effect {
	switch m.phase {
	case PhaseAutoplayForward:
		if position >= m.opts.ForwardCutoff {
			return m.armForward(pause(), seek(m.opts.ForwardCutoff))
		}
		m.position = clamp(position, 0, m.opts.ForwardCutoff)
	case PhaseLockedForward:
		if position >= m.opts.SegmentEnd {
			return m.completeSegment(pause())
		}
		m.position = clamp(position, m.opts.ForwardCutoff, m.opts.SegmentEnd)
	}
	return nil
}

// playRejected never retries playback: autoplay refusal parks the clip at
// the cutoff as if it had played, and a refusal inside the locked segment
// skips to its end so the lock is not held by a clip that will never move.
func (m *Machine) playRejected() []Effect {
	switch m.phase {
	case PhaseAutoplayForward:
		return m.armForward(seek(m.opts.ForwardCutoff))
	case PhaseLockedForward:
		return m.completeSegment()
	}
	return nil
}

func (m *Machine) scroll(ev Scroll) []Effect {
	if m.phase.Locked() || m.phase == PhaseIdle || m.phase == PhaseTornDown {
		return nil
	}
	dir := classify(m.offset, ev.Offset)
	m.offset = ev.Offset

	switch {
	case m.phase == PhaseArmedForward && dir == DirectionDown:
		m.phase = PhaseLockedForward
		m.position = m.opts.ForwardCutoff
		return []Effect{lock(m.offset), seek(m.opts.ForwardCutoff), play()}

	case m.phase == PhaseCompleteArmed && dir == DirectionDown:
		m.phase = PhaseReleased
		return []Effect{scrollTo(m.opts.NextAnchor)}

	case m.canRewind() && dir == DirectionUp && ev.HeroVisible:
		m.phase = PhaseRewindActive
		m.position = m.opts.SegmentEnd
		return []Effect{lock(m.offset), startRewind()}
	}
	return nil
}

func (m *Machine) canRewind() bool {
	return m.opts.Rewind && (m.phase == PhaseCompleteArmed || m.phase == PhaseReleased)
}

func (m *Machine) rewindFrame(progress float64) []Effect {
	if m.phase != PhaseRewindActive {
		return nil
	}
	if progress >= 1 {
		return m.armForward(seek(m.opts.ForwardCutoff), unlock())
	}
	m.position = clamp(
		RewindPosition(m.opts.SegmentEnd, m.opts.ForwardCutoff, progress),
		m.opts.ForwardCutoff, m.opts.SegmentEnd,
	)
	return []Effect{seek(m.position)}
}

func (m *Machine) teardown() []Effect {
	if m.phase == PhaseIdle || m.phase == PhaseTornDown {
		m.phase = PhaseTornDown
		return nil
	}
	effects := []Effect{pause(), cancelRewind()}
	if m.phase.Locked() {
		effects = append(effects, unlock())
	}
	m.phase = PhaseTornDown
	return effects
}

func (m *Machine) armForward(effects ...Effect) []Effect {
	m.phase = PhaseArmedForward
	m.position = m.opts.ForwardCutoff
	return effects
}

func (m *Machine) completeSegment(effects ...Effect) []Effect {
	m.phase = PhaseCompleteArmed
	m.position = m.opts.SegmentEnd
	return append(effects, seek(m.opts.SegmentEnd), unlock())
}
