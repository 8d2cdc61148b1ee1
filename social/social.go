// Package social defines the farmer decision model consumed by the coupling
// driver, and provides a built-in village of farms spreading the practice.
package social

import "errors"

var (
	ErrParams     = errors.New("invalid social model parameters")
	ErrUnknownWho = errors.New("unknown field")
)

// Field a farm plot as reported by the social model
type Field struct {
	Who           int // plot identifier
	Xcor, Ycor    int // plot position, origin at the grid centre, ycor grows northward
	OwnerID       int
	ImplementsWSA bool
	OwnerKnowsWSA bool
	Yield         float64
}

// Model steps farmer decisions one farming year at a time from plot yields
type Model interface {
	// Fields returns the state of every plot
	Fields() []Field
	// SetYields assigns this year's yield to plots, keyed by Who
	SetYields(map[int]float64) error
	// Step runs one farming year
	Step() error
}
