// This file is part of Wanwan.
//
// Wanwan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Wanwan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Wanwan.  If not, see <https://www.gnu.org/licenses/>.

package session_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Armonte/wanwan/breakpoints"
	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/debuggee/simulated"
	"github.com/Armonte/wanwan/pause"
	"github.com/Armonte/wanwan/session"
	"github.com/Armonte/wanwan/test"
	"github.com/Armonte/wanwan/userinput"
	"github.com/Armonte/wanwan/userinput/script"
)

type harness struct {
	tgt   *simulated.Target
	gate  *pause.Gate
	sess  *session.Session
	trace []session.Checkpoint
}

func newPrefs(t *testing.T) *session.Preferences {
	t.Helper()
	p, err := session.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	return p
}

func newHarness(t *testing.T, cfg simulated.Config, prefs *session.Preferences, entries ...script.Entry) *harness {
	t.Helper()

	tab := breakpoints.FM2K()

	cfg.Checkpoint = breakpoints.FM2KInputRead
	tgt := simulated.New(cfg)
	for _, s := range tab.Specs() {
		tgt.Load(s.Address, s.Original)
	}

	sc := script.New(entries...)
	gate := pause.NewGate(sc, nil, prefs.Controls())
	sc.SetClock(gate.Checkpoints)

	h := &harness{
		tgt:  tgt,
		gate: gate,
		sess: session.NewSession(tgt, tab, gate, prefs),
	}
	h.sess.SetCheckpointHook(func(c session.Checkpoint) {
		h.trace = append(h.trace, c)
	})

	return h
}

func (h *harness) states() string {
	s := make([]string, len(h.trace))
	for i, c := range h.trace {
		s[i] = c.State.String()
	}
	return strings.Join(s, " ")
}

func TestScriptedSession(t *testing.T) {
	h := newHarness(t, simulated.Config{Frames: 10}, newPrefs(t),
		script.Press(3, userinput.ButtonBack),
		script.Release(3, userinput.ButtonBack),
		script.Press(5, userinput.ButtonBack),
		script.Press(7, userinput.ButtonA),
	)

	err := h.sess.Run()
	test.DemandSuccess(t, err)

	// frame 3 pauses. the blocking wait consumes the release and the second
	// press is a frame-step. at frame 4 the continue is honoured because the
	// pause button is still held
	test.ExpectEquality(t, h.states(),
		"Running Running Paused Running Running Running Running Running Running Running")

	test.ExpectEquality(t, h.sess.Frames(), 10)
	test.ExpectEquality(t, h.gate.Pauses(), 1)
	test.ExpectEquality(t, h.gate.FrameSteps(), 1)
	test.ExpectEquality(t, h.gate.Continues(), 1)
	test.ExpectEquality(t, h.sess.Failures(), 0)
	test.ExpectSuccess(t, h.tgt.Closed())

	// every frame the game consumed the redirect register rather than EBX
	st := h.tgt.Stats()
	test.DemandEquality(t, len(st.Inputs), 10)
	for i, v := range st.Inputs {
		test.ExpectEquality(t, v, 0x00010000|uint32(i+1), i)
	}
	for _, c := range h.trace {
		test.ExpectEquality(t, c.Registers.Get(debuggee.ESP), simulated.StackTop-4)
	}

	// every event was continued and the only memory write before the frames
	// was the breakpoint
	test.ExpectEquality(t, st.Continues, 14)
	test.ExpectEquality(t, st.NotHandled, 0)
	test.ExpectEquality(t, st.MemoryWrites, 11)
}

func TestFrameStepping(t *testing.T) {
	var writes []int

	h := newHarness(t, simulated.Config{Frames: 6}, newPrefs(t),
		script.Press(2, userinput.ButtonBack),
		script.Release(2, userinput.ButtonBack),
		script.Press(2, userinput.ButtonBack),
		script.Release(2, userinput.ButtonBack),
		script.Press(2, userinput.ButtonBack),
		script.Press(2, userinput.ButtonA),
	)
	h.sess.SetCheckpointHook(func(c session.Checkpoint) {
		h.trace = append(h.trace, c)
		writes = append(writes, h.tgt.Stats().RegisterWrites)
	})

	test.DemandSuccess(t, h.sess.Run())
	test.ExpectEquality(t, h.states(), "Running Paused Paused Running Running Running")
	test.ExpectEquality(t, h.gate.FrameSteps(), 2)

	// exactly one emulation per checkpoint however long the gate is paused
	// for
	test.DemandEquality(t, len(writes), 6)
	for i, w := range writes {
		test.ExpectEquality(t, w, i+1)
	}
}

func TestNoBreakpointsArmed(t *testing.T) {
	h := newHarness(t, simulated.Config{Frames: 10}, newPrefs(t))
	h.sess = session.NewSession(h.tgt, breakpointsDisarmed(t), h.gate, newPrefs(t))

	test.DemandSuccess(t, h.sess.Run())
	test.ExpectEquality(t, h.sess.Frames(), 0)
	test.ExpectEquality(t, h.tgt.Stats().MemoryWrites, 0)
}

func breakpointsDisarmed(t *testing.T) *breakpoints.Table {
	tab := breakpoints.FM2K()
	test.DemandSuccess(t, tab.Disarm(breakpoints.FM2KInputRead))
	return tab
}

func TestRegisterFailureLog(t *testing.T) {
	h := newHarness(t, simulated.Config{Frames: 5}, newPrefs(t))
	h.tgt.FailRegisters(true, false)

	test.DemandSuccess(t, h.sess.Run())

	// the instruction was never emulated but the session still ran to the end
	test.ExpectEquality(t, h.sess.Frames(), 5)
	test.ExpectEquality(t, h.sess.Emulations(), 0)
	test.ExpectEquality(t, h.sess.Failures(), 5)
	test.ExpectEquality(t, h.tgt.Stats().RegisterWrites, 0)
	test.ExpectEquality(t, h.states(), "Running Running Running Running Running")
}

func TestRegisterFailureFatal(t *testing.T) {
	prefs := newPrefs(t)
	test.DemandSuccess(t, prefs.Errors.Set("FATAL"))

	h := newHarness(t, simulated.Config{Frames: 5}, prefs)
	h.tgt.FailRegisters(false, true)

	err := h.sess.Run()
	test.ExpectSuccess(t, curated.Is(err, session.RegistersError))
	test.ExpectSuccess(t, curated.Has(err, session.RegistersError))
	test.ExpectEquality(t, h.tgt.Frame(), 1)
	test.ExpectSuccess(t, h.tgt.Closed())
}

func TestRegisterFailurePause(t *testing.T) {
	prefs := newPrefs(t)
	test.DemandSuccess(t, prefs.Errors.Set("pause"))

	h := newHarness(t, simulated.Config{Frames: 3}, prefs,
		script.Press(0, userinput.ButtonBack),
		script.Press(0, userinput.ButtonA),
	)
	h.tgt.FailRegisters(true, false)

	test.DemandSuccess(t, h.sess.Run())

	// every failure forces a pause. the first pause is stepped over, the
	// second is continued and the third fails because the script has run out
	test.ExpectEquality(t, h.states(), "Paused Running Paused")
	test.ExpectEquality(t, h.gate.Pauses(), 2)
	test.ExpectEquality(t, h.gate.FrameSteps(), 1)

	// three register failures and a failed wait
	test.ExpectEquality(t, h.sess.Failures(), 4)
}

func TestForeignExceptions(t *testing.T) {
	h := newHarness(t, simulated.Config{Frames: 3, Fault: 2}, newPrefs(t))
	test.DemandSuccess(t, h.sess.Run())
	test.ExpectEquality(t, h.tgt.Stats().NotHandled, 0)
	test.ExpectEquality(t, h.sess.Frames(), 3)

	prefs := newPrefs(t)
	test.DemandSuccess(t, prefs.Foreign.Set(true))
	h = newHarness(t, simulated.Config{Frames: 3, Fault: 2}, prefs)
	test.DemandSuccess(t, h.sess.Run())

	// the loader breakpoint is still handled
	test.ExpectEquality(t, h.tgt.Stats().NotHandled, 1)
	test.ExpectEquality(t, h.sess.Frames(), 3)
}

func TestAlternativeBreakpoint(t *testing.T) {
	tab := breakpoints.FM2K()
	test.DemandSuccess(t, tab.Disarm(breakpoints.FM2KInputRead))
	test.DemandSuccess(t, tab.Arm(breakpoints.FM2KInputCall))

	tgt := simulated.New(simulated.Config{Frames: 4, Checkpoint: breakpoints.FM2KInputCall})
	for _, s := range tab.Specs() {
		tgt.Load(s.Address, s.Original)
	}
	gate := pause.NewGate(script.New(), nil, pause.DefaultControls)
	sess := session.NewSession(tgt, tab, gate, newPrefs(t))

	var esi []uint32
	sess.SetCheckpointHook(func(c session.Checkpoint) {
		esi = append(esi, c.Registers.Get(debuggee.ESI))
	})

	test.DemandSuccess(t, sess.Run())
	test.DemandEquality(t, len(esi), 4)

	// ESI = EBX + 1 and EBX is the frame number
	test.ExpectEquality(t, esi[0], 2)
	test.ExpectEquality(t, esi[3], 5)
}

func TestDump(t *testing.T) {
	h := newHarness(t, simulated.Config{Frames: 1}, newPrefs(t))
	test.DemandSuccess(t, h.sess.Run())

	w := &strings.Builder{}
	h.sess.Dump(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "digraph"))
}
