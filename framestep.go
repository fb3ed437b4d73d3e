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

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Armonte/wanwan/breakpoints"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/debuggee/simulated"
	"github.com/Armonte/wanwan/debuggee/win32"
	"github.com/Armonte/wanwan/gamedir"
	"github.com/Armonte/wanwan/logger"
	"github.com/Armonte/wanwan/modalflag"
	"github.com/Armonte/wanwan/pause"
	"github.com/Armonte/wanwan/prefs"
	"github.com/Armonte/wanwan/session"
	"github.com/Armonte/wanwan/statsview"
	"github.com/Armonte/wanwan/userinput"
	"github.com/Armonte/wanwan/userinput/script"
	"github.com/Armonte/wanwan/userinput/sdlinput"
	"github.com/Armonte/wanwan/userinput/terminput"
	"github.com/Armonte/wanwan/version"
	"github.com/bradleyjkemp/memviz"
)

// exit values
const (
	exitParse = 10
	exitMode  = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. returns the value
// to be used with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("FRAMESTEP", "SIMULATE", "TABLE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "FRAMESTEP":
		err = framestep(md, output)

	case "SIMULATE":
		err = simulate(md, output)

	case "TABLE":
		err = table(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return 0
}

// options common to the FRAMESTEP and SIMULATE modes.
type sessionFlags struct {
	input   *string
	table   *string
	arm     *string
	disarm  *string
	log     *bool
	verbose *bool
	prefs   *string
	stats   *bool
}

func addSessionFlags(md *modalflag.Modes, input string) sessionFlags {
	return sessionFlags{
		input:   md.AddString("input", input, "controller input: SDL, TERMINAL, NONE"),
		table:   md.AddString("table", "", "load breakpoint table from JSON file"),
		arm:     md.AddString("arm", "", "comma separated list of breakpoint addresses to arm"),
		disarm:  md.AddString("disarm", "", "comma separated list of breakpoint addresses to disarm"),
		log:     md.AddBool("log", false, "echo debugging log to stdout"),
		verbose: md.AddBool("verbose", false, "log events that occur every frame"),
		prefs:   md.AddString("prefs", "", "preferences for this session. for example \"framestep.chord::false\""),
		stats:   md.AddBool("statsview", false, "run the stats server"),
	}
}

func framestep(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	dir := md.AddString("dir", ".", "game directory. used when no executable is given")
	fl := addSessionFlags(md, "SDL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var exe string

	switch len(md.RemainingArgs()) {
	case 0:
		g, err := gamedir.Find(*dir)
		if err != nil {
			return err
		}
		exe = g.Executable
	case 1:
		exe = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	tab, err := loadTable(*fl.table, *fl.arm, *fl.disarm)
	if err != nil {
		return err
	}

	// the target is launched before input is initialised so that the input
	// source is created on the same OS thread as the debugger
	proc, err := win32.Launch(exe)
	if err != nil {
		return err
	}

	sess, err := newSession(proc, tab, fl, output)
	if err != nil {
		proc.Close()
		return err
	}
	defer sess.end()

	if err := sess.Run(); err != nil {
		return err
	}

	fmt.Fprintf(output, "%s exited with code %d after %d frames\n", proc, sess.ExitCode(), sess.Frames())

	return nil
}

func simulate(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	frames := md.AddInt("frames", 600, "number of frames before the simulated target exits")
	fps := md.AddInt("fps", 60, "frames per second of the simulated target. zero for unlimited")
	fault := md.AddInt("fault", 0, "raise an access violation before this frame")
	fl := addSessionFlags(md, "TERMINAL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	tab, err := loadTable(*fl.table, *fl.arm, *fl.disarm)
	if err != nil {
		return err
	}

	// the simulated target reaches the first armed checkpoint every frame
	var checkpoint uint32
	for _, s := range tab.Armed() {
		if s.Checkpoint {
			checkpoint = s.Address
			break // for loop
		}
	}

	tgt := simulated.New(simulated.Config{
		Frames:     *frames,
		Checkpoint: checkpoint,
		FPS:        *fps,
		Fault:      *fault,
	})
	for _, s := range tab.Specs() {
		tgt.Load(s.Address, s.Original)
	}

	sess, err := newSession(tgt, tab, fl, output)
	if err != nil {
		return err
	}
	defer sess.end()

	if err := sess.Run(); err != nil {
		return err
	}

	st := tgt.Stats()
	fmt.Fprintf(output, "simulation ended after %d frames: %s\n", sess.Frames(), sess)
	fmt.Fprintf(output, "continues=%d unhandled=%d register writes=%d memory writes=%d\n",
		st.Continues, st.NotHandled, st.RegisterWrites, st.MemoryWrites)

	return nil
}

func table(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	file := md.AddString("table", "", "load breakpoint table from JSON file")
	asJSON := md.AddBool("json", false, "print table as JSON")
	dot := md.AddString("dot", "", "write graph of table to file in DOT format")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tab, err := loadTable(*file, "", "")
	if err != nil {
		return err
	}

	if *dot != "" {
		f, err := os.Create(*dot)
		if err != nil {
			return err
		}
		memviz.Map(f, tab)
		if err := f.Close(); err != nil {
			return err
		}
	}

	if *asJSON {
		data, err := breakpoints.ExportJSON(tab)
		if err != nil {
			return err
		}
		output.Write(data)
		return nil
	}

	for _, s := range tab.Specs() {
		armed := " "
		if tab.IsArmed(s.Address) {
			armed = "*"
		}
		fmt.Fprintf(output, "%s %s\n", armed, s)
	}

	return nil
}

// loadTable returns the default FM2K table if file is empty.
func loadTable(file string, arm string, disarm string) (*breakpoints.Table, error) {
	tab := breakpoints.FM2K()

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		tab, err = breakpoints.LoadJSON(data)
		if err != nil {
			return nil, err
		}
	}

	addrs, err := parseAddresses(disarm)
	if err != nil {
		return nil, err
	}
	if err := tab.Disarm(addrs...); err != nil {
		return nil, err
	}

	addrs, err = parseAddresses(arm)
	if err != nil {
		return nil, err
	}
	if err := tab.Arm(addrs...); err != nil {
		return nil, err
	}

	return tab, nil
}

// parseAddresses parses a comma separated list of addresses. the usual Go
// prefixes are accepted so addresses can be given in hex with 0x.
func parseAddresses(s string) ([]uint32, error) {
	var addrs []uint32
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue // for loop
		}
		a, err := strconv.ParseUint(f, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("breakpoint address: %w", err)
		}
		addrs = append(addrs, uint32(a))
	}
	return addrs, nil
}

// running wraps the session with the resources that must be released when
// the session ends.
type running struct {
	*session.Session
	release []func()
}

func (r *running) end() {
	for i := len(r.release) - 1; i >= 0; i-- {
		r.release[i]()
	}
}

func newSession(dbg debuggee.Debuggee, tab *breakpoints.Table, fl sessionFlags, output io.Writer) (*running, error) {
	r := &running{}

	if *fl.log {
		logger.SetEcho(output, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *fl.stats {
		if !statsview.Available() {
			return nil, fmt.Errorf("stats server not available in this build")
		}
		statsview.Launch(output)
	}

	prefs.PushCommandLineStack(*fl.prefs)
	logger.Logf(logger.Allow, "framestep", "%s", version.String())

	p, err := session.NewPreferences("")
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "framestep", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	var src userinput.Source
	var reg pause.Registry

	switch strings.ToUpper(*fl.input) {
	case "SDL":
		s, err := sdlinput.New()
		if err != nil {
			return nil, err
		}
		rg := userinput.NewRegistry(s)
		r.release = append(r.release, s.Destroy, rg.CloseAll)
		src = s
		reg = rg

	case "TERMINAL":
		trm, err := terminput.New(os.Stdin)
		if err != nil {
			return nil, err
		}
		r.release = append(r.release, trm.Restore)
		src = trm

		fmt.Fprintln(output, "p or space to pause and frame-step. c or return to continue")

	case "NONE":
		src = script.New()

	default:
		return nil, fmt.Errorf("unknown input type (%s)", *fl.input)
	}

	// the terminal has no way of holding a key down so the continue key
	// cannot be chorded
	ctl := p.Controls()
	if _, ok := src.(*terminput.Terminal); ok {
		ctl = pause.Controls{
			Pause:    userinput.ButtonBack,
			Continue: userinput.ButtonA,
		}
	}

	gate := pause.NewGate(src, reg, ctl)
	r.Session = session.NewSession(dbg, tab, gate, p)
	r.SetVerbose(*fl.verbose)

	return r, nil
}
