// Package position enumerates on-field roles and their coarse sampling types.
package position

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPosition is returned by Parse for values outside the enumerated set.
var ErrUnknownPosition = errors.New("unknown position")

// Position is an on-field role.
type Position string

// Supported positions.
const (
	ThirdBase  Position = "3B"
	Shortstop  Position = "SS"
	Outfield   Position = "OF"
	RightyP    Position = "RHP"
	LeftyP     Position = "LHP"
	FirstBase  Position = "1B"
	SecondBase Position = "2B"
	Catcher    Position = "C"
)

// Type is the coarse grouping used for sampling.
type Type string

// Position types.
const (
	Hitter      Type = "Hitter"
	Pitcher     Type = "Pitcher"
	CatcherType Type = "Catcher"
)

var all = []Position{ThirdBase, Shortstop, Outfield, RightyP, LeftyP, FirstBase, SecondBase, Catcher}

// All returns the positions in display order.
func All() []Position {
	return append([]Position(nil), all...)
}

// Types returns the position types in display order.
func Types() []Type {
	return []Type{Hitter, Pitcher, CatcherType}
}

// Parse normalizes s and returns the matching position.
func Parse(s string) (Position, error) {
	v := Position(strings.ToUpper(strings.TrimSpace(s)))
	if v.Valid() {
		return v, nil
	}
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownPosition)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// Valid reports whether p is one of the enumerated positions.
func (p Position) Valid() bool {
	for _, v := range all {
		if v == p {
			return true
		}
	}
	return false
}

// Type collapses p into Hitter, Pitcher or Catcher.
func (p Position) Type() Type {
	switch p {
	case RightyP, LeftyP:
		return Pitcher
	case Catcher:
		return CatcherType
	default:
		return Hitter
	}
}

func (p Position) String() string { return string(p) }
