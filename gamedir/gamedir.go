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

package gamedir

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Armonte/wanwan/curated"
)

// Sentinal error patterns.
const (
	NoGame        = "gamedir: no game found in %s"
	MultipleGames = "gamedir: more than one game found in %s (%s)"
	DirError      = "gamedir: %v"
)

// file extensions. upper case
const (
	projectExt    = ".KGT"
	executableExt = ".EXE"
)

// Game is a project file and the executable for it.
type Game struct {
	Project    string
	Executable string
}

func (g Game) String() string {
	return filepath.Base(g.Executable)
}

// Find the game in the directory. It is an error for the directory to contain
// no game or more than one game.
func Find(dir string) (Game, error) {
	games, err := List(dir)
	if err != nil {
		return Game{}, err
	}

	switch len(games) {
	case 0:
		return Game{}, curated.Errorf(NoGame, dir)
	case 1:
		return games[0], nil
	}

	n := make([]string, len(games))
	for i, g := range games {
		n[i] = g.String()
	}
	return Game{}, curated.Errorf(MultipleGames, dir, strings.Join(n, ", "))
}

// List every game in the directory, sorted by name.
func List(dir string) ([]Game, error) {
	ent, err := os.ReadDir(dir)
	if err != nil {
		return nil, curated.Errorf(DirError, err)
	}

	// executables indexed by upper case stem
	exes := make(map[string]string)
	for _, e := range ent {
		if e.IsDir() {
			continue // for loop
		}
		if strings.ToUpper(filepath.Ext(e.Name())) == executableExt {
			exes[stem(e.Name())] = e.Name()
		}
	}

	var games []Game
	for _, e := range ent {
		if e.IsDir() {
			continue // for loop
		}
		if strings.ToUpper(filepath.Ext(e.Name())) != projectExt {
			continue // for loop
		}
		if exe, ok := exes[stem(e.Name())]; ok {
			games = append(games, Game{
				Project:    filepath.Join(dir, e.Name()),
				Executable: filepath.Join(dir, exe),
			})
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Executable < games[j].Executable
	})

	return games, nil
}

func stem(name string) string {
	return strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
}
