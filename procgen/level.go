// Package procgen holds the level-kind keyed state shared by chunk streaming,
// navigation grid sync and agent position sync: tile configuration, the
// per-level chunk controller, coordinate math and the shared timer.
package procgen

import (
	"fmt"
	"strings"
)

// Level identifies a level kind. Every level kind streams its own chunks and
// owns its own controller and navigation grid.
type Level uint8

const (
	Overworld Level = iota + 1
)

var levelNames = map[Level]string{
	Overworld: "overworld",
}

// Levels returns every known level kind.
func Levels() []Level {
	return []Level{Overworld}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// ParseLevel resolves a level name as used in file names and flags.
func ParseLevel(name string) (Level, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	for l, n := range levelNames {
		if n == clean {
			return l, nil
		}
	}
	return 0, fmt.Errorf("procgen: unknown level %q", name)
}
