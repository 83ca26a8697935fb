// Package projectile steps a point mass through a constant environment, one
// unit of time per tick.
package projectile

import (
	"raykernel/vmath/tuple"
)

type Projectile struct {
	Position tuple.T // point
	Velocity tuple.T // vector
}

type Environment struct {
	Gravity tuple.T // vector
	Wind    tuple.T // vector
}

// Tick advances p by one step: position moves by velocity, then velocity
// picks up gravity and wind.
func Tick(env Environment, p Projectile) Projectile {
	return Projectile{
		Position: tuple.Add(p.Position, p.Velocity),
		Velocity: tuple.Add(tuple.Add(p.Velocity, env.Gravity), env.Wind),
	}
}

// Trajectory ticks p until its height drops to zero or below, or until
// maxTicks steps have run.  The result starts with p itself and ends with
// the first state at or below the ground.
func Trajectory(env Environment, p Projectile, maxTicks int) []Projectile {
	states := []Projectile{p}
	for i := 0; i < maxTicks && p.Position.Y() > 0; i++ {
		p = Tick(env, p)
		states = append(states, p)
	}
	return states
}
