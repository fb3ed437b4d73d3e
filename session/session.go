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

package session

import (
	"fmt"
	"io"

	"github.com/Armonte/wanwan/breakpoints"
	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/govern"
	"github.com/Armonte/wanwan/logger"
	"github.com/Armonte/wanwan/pause"
	"github.com/bradleyjkemp/memviz"
)

// Sentinal error patterns.
const (
	WaitError       = "session: wait: %v"
	ContinueError   = "session: continue: %v"
	RegistersError  = "session: registers: %v"
	CheckpointError = "session: checkpoint: %v"
	CloseError      = "session: close: %v"
)

// Checkpoint describes the state of the session after the target has been
// released from a checkpoint.
type Checkpoint struct {
	// the checkpoint count. the first checkpoint is one
	Frame int

	// the state of the pause gate
	State govern.State

	// registers stored in the target
	Registers debuggee.Registers
}

// Session is the debugging session for a single target. It should not be
// used concurrently.
type Session struct {
	dbg   debuggee.Debuggee
	table *breakpoints.Table
	gate  *pause.Gate

	policy   ErrorPolicy
	redirect debuggee.Register
	foreign  bool
	verify   bool

	// permission for log entries made every frame
	verbose logger.Verbosity

	// addresses of breakpoints that have been installed in the target
	installed map[uint32]breakpoints.Spec

	frames     int
	emulations int
	foreignExc int
	failures   int
	exited     bool
	exitCode   uint32

	checkpointHook func(Checkpoint)
}

// NewSession is the preferred method of initialisation for the Session type.
// The preferences are read once. Changes after NewSession() has returned
// have no effect.
func NewSession(dbg debuggee.Debuggee, table *breakpoints.Table, gate *pause.Gate, prefs *Preferences) *Session {
	return &Session{
		dbg:       dbg,
		table:     table,
		gate:      gate,
		policy:    prefs.Policy(),
		redirect:  prefs.RedirectRegister(),
		foreign:   prefs.Foreign.Get().(bool),
		verify:    prefs.Verify.Get().(bool),
		installed: make(map[uint32]breakpoints.Spec),
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("frames=%d emulations=%d foreign=%d failures=%d gate=[%s]",
		s.frames, s.emulations, s.foreignExc, s.failures, s.gate)
}

// SetVerbose turns on logging for events that happen every frame.
func (s *Session) SetVerbose(verbose bool) {
	s.verbose.On = verbose
}

// SetCheckpointHook sets a function to be called every time the target has
// passed a checkpoint and before it is continued.
func (s *Session) SetCheckpointHook(f func(Checkpoint)) {
	s.checkpointHook = f
}

// Frames returns the number of checkpoints the target has reached.
func (s *Session) Frames() int {
	return s.frames
}

// Emulations returns the number of breakpoint traps that have been emulated.
func (s *Session) Emulations() int {
	return s.emulations
}

// Failures returns the number of in-loop failures.
func (s *Session) Failures() int {
	return s.failures
}

// ExitCode returns the exit code of the target. Only valid once Run() has
// returned without error.
func (s *Session) ExitCode() uint32 {
	return s.exitCode
}

// Dump writes a graph of the session state in the graphviz DOT format.
func (s *Session) Dump(w io.Writer) {
	memviz.Map(w, s.table, s.gate, &s.installed)
}

// failure deals with an in-loop failure according to the error policy.
// returns the error if the session should end.
func (s *Session) failure(err error) error {
	s.failures++
	logger.Log(logger.Allow, "session", err)
	if s.policy == PolicyFatal {
		return err
	}
	return nil
}

// registerFailure is the same as failure but also pauses the session if the
// policy is PolicyPause.
func (s *Session) registerFailure(err error) error {
	if s.policy == PolicyPause {
		s.gate.ForcePause()
	}
	return s.failure(curated.Errorf(RegistersError, err))
}

// Run the debug event loop until the target exits. The target is closed
// before Run() returns.
func (s *Session) Run() (rerr error) {
	defer func() {
		if err := s.dbg.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(CloseError, err)
		}
	}()

	for !s.exited {
		ev, err := s.dbg.WaitEvent()
		if err != nil {
			return curated.Errorf(WaitError, err)
		}

		logger.Log(&s.verbose, "session", ev)

		disp, err := s.dispatch(ev)
		if err != nil {
			return err
		}

		if err := s.dbg.Continue(ev, disp); err != nil {
			if err := s.failure(curated.Errorf(ContinueError, err)); err != nil {
				return err
			}
		}

		s.exited = ev.Kind == debuggee.ExitProcess
	}

	logger.Logf(logger.Allow, "session", "target exited with code %d after %d frames", s.exitCode, s.frames)

	return nil
}

// dispatch the event according to its kind. returns an error only if the
// session should end.
func (s *Session) dispatch(ev debuggee.Event) (debuggee.Disposition, error) {
	switch ev.Kind {
	case debuggee.CreateProcess:
		return debuggee.Handled, s.install()

	case debuggee.Exception:
		return s.trap(ev)

	case debuggee.OutputDebugString:
		logger.Log(logger.Allow, "target", ev.Message)

	case debuggee.ExitProcess:
		s.exitCode = ev.ExitCode
	}

	return debuggee.Handled, nil
}

// install every armed breakpoint. a breakpoint that fails to install is not
// considered to be installed.
func (s *Session) install() error {
	for _, spec := range s.table.Armed() {
		if err := breakpoints.Install(s.dbg, spec, s.verify); err != nil {
			if err := s.failure(err); err != nil {
				return err
			}
			continue // for loop
		}
		s.installed[spec.Address] = spec
	}
	return nil
}

// trap handles exception events. exceptions at addresses other than
// installed breakpoints are foreign.
func (s *Session) trap(ev debuggee.Event) (debuggee.Disposition, error) {
	spec, ok := s.installed[ev.Address]
	if !ok {
		s.foreignExc++
		logger.Logf(&s.verbose, "session", "foreign exception: %s", ev)
		if s.foreign && !debuggee.IsBreakpoint(ev.Code) {
			return debuggee.NotHandled, nil
		}
		return debuggee.Handled, nil
	}

	regs, err := s.dbg.Registers(ev.ThreadID)
	if err != nil {
		// the instruction cannot be emulated without the registers
		if err := s.registerFailure(err); err != nil {
			return debuggee.Handled, err
		}
	} else {
		err = breakpoints.Emulate(spec, &regs, s.dbg, s.redirect)
		if err != nil {
			if err := s.failure(err); err != nil {
				return debuggee.Handled, err
			}
		} else {
			err = s.dbg.SetRegisters(ev.ThreadID, regs)
			if err != nil {
				if err := s.registerFailure(err); err != nil {
					return debuggee.Handled, err
				}
			} else {
				s.emulations++
			}
		}
	}

	if spec.Checkpoint {
		s.frames++
		if err := s.gate.Checkpoint(); err != nil {
			if err := s.failure(curated.Errorf(CheckpointError, err)); err != nil {
				return debuggee.Handled, err
			}
		}
		if s.checkpointHook != nil {
			s.checkpointHook(Checkpoint{
				Frame:     s.frames,
				State:     s.gate.State(),
				Registers: regs,
			})
		}
	}

	return debuggee.Handled, nil
}
