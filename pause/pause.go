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

package pause

import (
	"fmt"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/govern"
	"github.com/Armonte/wanwan/logger"
	"github.com/Armonte/wanwan/userinput"
)

// Sentinal error returned by Checkpoint() if the blocking wait fails.
const WaitError = "pause: %v"

// Controls are the buttons used by the Gate.
type Controls struct {
	Pause    userinput.Button
	Continue userinput.Button

	// the continue button is only honoured while the pause button is held
	Chord bool
}

// DefaultControls are the controls used by the reference tool.
var DefaultControls = Controls{
	Pause:    userinput.ButtonBack,
	Continue: userinput.ButtonA,
	Chord:    true,
}

// Registry is the set of open controllers. Implemented by userinput.Registry.
type Registry interface {
	Add(index int) (int, error)
	Remove(instanceID int32) bool
}

// Gate is the pause state machine. It must only be used while the target is
// trapped.
type Gate struct {
	src userinput.Source
	reg Registry
	ctl Controls

	state         govern.State
	pauseReleased bool

	checkpoints int
	frameSteps  int
	pauses      int
	continues   int
}

// NewGate is the preferred method of initialisation for the Gate type. The
// registry can be nil, in which case device events are ignored.
func NewGate(src userinput.Source, reg Registry, ctl Controls) *Gate {
	return &Gate{
		src:           src,
		reg:           reg,
		ctl:           ctl,
		state:         govern.Running,
		pauseReleased: true,
	}
}

func (g *Gate) String() string {
	return fmt.Sprintf("%s (released=%v) checkpoints=%d steps=%d pauses=%d continues=%d",
		g.state, g.pauseReleased, g.checkpoints, g.frameSteps, g.pauses, g.continues)
}

// State returns the current state of the gate.
func (g *Gate) State() govern.State {
	return g.state
}

// PauseReleased returns true if the pause button has been released since the
// last press that was honoured.
func (g *Gate) PauseReleased() bool {
	return g.pauseReleased
}

// ForcePause moves the gate to the Paused state. The next call to
// Checkpoint() will block.
func (g *Gate) ForcePause() {
	if g.state != govern.Paused {
		g.state = govern.Paused
		g.pauses++
		logger.Log(logger.Allow, "pause", "forced pause")
	}
}

// Checkpoints returns the number of calls to Checkpoint(), including any call
// that is currently in progress.
func (g *Gate) Checkpoints() int {
	return g.checkpoints
}

// FrameSteps returns the number of frame-steps that have been taken.
func (g *Gate) FrameSteps() int {
	return g.frameSteps
}

// Pauses returns the number of times the gate has moved from Running to
// Paused.
func (g *Gate) Pauses() int {
	return g.pauses
}

// Continues returns the number of times the gate has moved from Paused to
// Running.
func (g *Gate) Continues() int {
	return g.continues
}

// device handles controller connections. returns true if the event was a
// device event.
func (g *Gate) device(ev userinput.Event) bool {
	switch ev := ev.(type) {
	case userinput.EventDeviceAdded:
		if g.reg != nil {
			if _, err := g.reg.Add(ev.ID); err != nil {
				logger.Log(logger.Allow, "pause", err)
			}
		}
		return true
	case userinput.EventDeviceRemoved:
		if g.reg != nil {
			g.reg.Remove(ev.ID)
		}
		return true
	}
	return false
}

// Checkpoint is called when the target reaches the per-frame checkpoint.
//
// When the gate is Running, pending controller events are drained. If the
// pause button is pressed the gate moves to Paused and draining stops. Events
// after the press are left for the next checkpoint.
//
// When the gate is Paused, Checkpoint() blocks until either the pause button
// is pressed (a frame-step) or the continue button is pressed (the gate moves
// to Running).
//
// If the blocking wait fails the error is returned and the gate remains
// Paused.
func (g *Gate) Checkpoint() error {
	g.checkpoints++

	if g.state == govern.Running {
		g.drain()
	}

	if g.state == govern.Paused {
		return g.wait()
	}

	return nil
}

func (g *Gate) drain() {
	for {
		ev, ok := g.src.Poll()
		if !ok {
			return
		}

		if g.device(ev) {
			continue // for loop
		}

		if b, ok := ev.(userinput.EventButton); ok && b.Button == g.ctl.Pause {
			if !b.Down {
				g.pauseReleased = true
			} else if g.pauseReleased {
				g.state = govern.Paused
				g.pauseReleased = false
				g.pauses++
				logger.Logf(logger.Allow, "pause", "paused at checkpoint %d", g.checkpoints)
				return
			}
		}
	}
}

func (g *Gate) wait() error {
	for {
		ev, err := g.src.Wait()
		if err != nil {
			return curated.Errorf(WaitError, err)
		}

		if g.device(ev) {
			continue // for loop
		}

		b, ok := ev.(userinput.EventButton)
		if !ok {
			continue // for loop
		}

		switch b.Button {
		case g.ctl.Pause:
			if !b.Down {
				g.pauseReleased = true
			} else if g.pauseReleased {
				g.pauseReleased = false
				g.frameSteps++
				return nil
			}
		case g.ctl.Continue:
			if b.Down && (!g.ctl.Chord || !g.pauseReleased) {
				g.state = govern.Running
				g.continues++
				logger.Logf(logger.Allow, "pause", "running from checkpoint %d", g.checkpoints)
				return nil
			}
		}
	}
}
