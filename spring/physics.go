// Package spring is a mass on a damped spring hanging from a movable anchor
//
// The block can be dragged and thrown with the mouse. It is a live.Ticker:
// between input batches the writer advances the simulation once per poll
// interval, so the display animates on its own.
package spring

import (
	"math"
	"time"
)

// Params are the physical constants of the toy
// Positions are in screen cells; Gravity and Stiffness act on cells directly
type Params struct {
	// Mass of the block [kg]
	Mass float64

	// CellSize is the distance one cell represents, scaling drag velocity
	CellSize float64

	// Gravity is the downward acceleration
	Gravity float64

	// Stiffness is the spring constant k [N/m]
	Stiffness float64

	// Damping is the damping ratio zeta
	Damping float64

	// Radius sets the block to 2*Radius rows by 4*Radius columns
	Radius int

	// Step is the fixed integration step
	Step time.Duration
}

// DefaultParams returns the stock toy: 1kg, k=100, light damping
func DefaultParams() Params {
	return Params{
		Mass:      1.0,
		CellSize:  1e-2,
		Gravity:   9.81,
		Stiffness: 100,
		Damping:   0.01,
		Radius:    1,
		Step:      100 * time.Microsecond,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Mass <= 0 {
		p.Mass = d.Mass
	}
	if p.CellSize <= 0 {
		p.CellSize = d.CellSize
	}
	if p.Stiffness <= 0 {
		p.Stiffness = d.Stiffness
	}
	if p.Damping < 0 {
		p.Damping = 0
	}
	if p.Radius < 1 {
		p.Radius = d.Radius
	}
	if p.Step <= 0 {
		p.Step = d.Step
	}
	return p
}

// damping returns the viscous coefficient c = 2*zeta*sqrt(m*k)
func (p Params) damping() float64 {
	return 2 * p.Damping * math.Sqrt(p.Mass*p.Stiffness)
}

// Vec is a (row, col) pair in cell units
type Vec struct {
	Row, Col float64
}

func (v Vec) add(o Vec) Vec       { return Vec{v.Row + o.Row, v.Col + o.Col} }
func (v Vec) sub(o Vec) Vec       { return Vec{v.Row - o.Row, v.Col - o.Col} }
func (v Vec) scale(f float64) Vec { return Vec{v.Row * f, v.Col * f} }

// Len returns the Euclidean length
func (v Vec) Len() float64 { return math.Hypot(v.Row, v.Col) }

// integrate advances pos and vel by whole steps covering span
// Semi-implicit Euler: v += a*dt; x += v*dt
func integrate(p Params, anchor, pos, vel Vec, span time.Duration) (Vec, Vec) {
	steps := int(span / p.Step)
	dt := p.Step.Seconds()
	c := p.damping()
	for i := 0; i < steps; i++ {
		a := pos.sub(anchor).scale(-p.Stiffness).sub(vel.scale(c)).scale(1 / p.Mass)
		a.Row += p.Gravity
		vel = vel.add(a.scale(dt))
		pos = pos.add(vel.scale(dt))
	}
	return pos, vel
}
