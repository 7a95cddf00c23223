// Package smoothing generates per-axis jerk-limited velocity trajectories.
//
// Each VelocitySmoothing instance plans a three phase profile toward a target
// velocity: ramp the acceleration with constant jerk, hold the peak
// acceleration, then ramp it back to zero. The plan is recomputed every cycle
// from the current state, so external corrections (constraint changes,
// estimator resets, time synchronization) take effect on the next Integrate.
package smoothing

import (
	"math"

	m "github.com/veloxuav/flightd/math"
)

const timeEpsilon = 1e-6

type VelocitySmoothing struct {
	maxJerk  float64
	maxAccel float64
	maxVel   float64

	jerk  float64
	accel float64
	vel   float64
	pos   float64

	velSp float64

	// Remaining phase durations and the signed jerk of the first phase.
	t1      float64
	t2      float64
	t3      float64
	jerkDir float64
}

// Reset overwrites the full kinematic state. Used at activation.
func (t *VelocitySmoothing) Reset(accel float64, vel float64, pos float64) {
	t.jerk = 0
	t.accel = accel
	t.vel = vel
	t.pos = pos
	t.velSp = vel
	t.t1, t.t2, t.t3 = 0, 0, 0
	t.jerkDir = 0
}

// SetCurrentPosition overwrites the position only, preserving velocity,
// acceleration and jerk continuity. Used to absorb estimator resets.
func (t *VelocitySmoothing) SetCurrentPosition(pos float64) { t.pos = pos }

// SetCurrentVelocity overwrites the velocity only, preserving acceleration
// and jerk continuity. Used to absorb estimator resets.
func (t *VelocitySmoothing) SetCurrentVelocity(vel float64) { t.vel = vel }

func (t *VelocitySmoothing) SetMaxJerk(maxJerk float64)   { t.maxJerk = maxJerk }
func (t *VelocitySmoothing) SetMaxAccel(maxAccel float64) { t.maxAccel = maxAccel }
func (t *VelocitySmoothing) SetMaxVel(maxVel float64)     { t.maxVel = maxVel }

func (t *VelocitySmoothing) MaxJerk() float64  { return t.maxJerk }
func (t *VelocitySmoothing) MaxAccel() float64 { return t.maxAccel }
func (t *VelocitySmoothing) MaxVel() float64   { return t.maxVel }

func (t *VelocitySmoothing) Jerk() float64         { return t.jerk }
func (t *VelocitySmoothing) Acceleration() float64 { return t.accel }
func (t *VelocitySmoothing) Velocity() float64     { return t.vel }
func (t *VelocitySmoothing) Position() float64     { return t.pos }

func (t *VelocitySmoothing) VelocitySetpoint() float64 { return t.velSp }

// TotalTime returns the remaining time to complete the current plan.
func (t *VelocitySmoothing) TotalTime() float64 { return t.t1 + t.t2 + t.t3 }

// UpdateDurations recomputes the time-optimal phase plan from the current
// acceleration and velocity toward targetVel, clamped to the velocity limit.
func (t *VelocitySmoothing) UpdateDurations(_ float64, targetVel float64) {
	t.velSp = m.Constrain(targetVel, -t.maxVel, t.maxVel)
	t.planDurations(0)
}

// planDurations solves the phase durations. With totalTime > 0 the plan is
// stretched so that t1+t2+t3 equals totalTime instead of being time optimal.
func (t *VelocitySmoothing) planDurations(totalTime float64) {
	a0 := t.accel
	deltaV := t.velSp - t.vel

	if t.maxJerk < timeEpsilon || t.maxAccel < timeEpsilon {
		t.t1, t.t2, t.t3 = 0, 0, 0
		t.jerkDir = 0
		return
	}

	// Velocity that would result from only ramping the current acceleration
	// back to zero. The sign of the remaining velocity change after that
	// ramp decides the jerk direction.
	velAtZeroAccel := t.vel + a0*math.Abs(a0)/(2*t.maxJerk)
	remaining := t.velSp - velAtZeroAccel

	if math.Abs(remaining) < timeEpsilon && math.Abs(a0) < timeEpsilon {
		t.t1, t.t2, t.t3 = 0, 0, 0
		t.jerkDir = 0
		return
	}

	dir := 1.0
	if remaining < 0 {
		dir = -1.0
	}
	jd := dir * t.maxJerk
	t.jerkDir = jd

	var t1, t2, t3 float64
	if totalTime > timeEpsilon {
		t1 = solveT1FixedTotal(a0, deltaV, jd, totalTime)
	} else {
		t1 = solveT1(a0, deltaV, jd)
	}

	// Saturate the acceleration peak, inserting a constant acceleration
	// phase for the leftover velocity change.
	peak := a0 + jd*t1
	if math.Abs(peak) > t.maxAccel {
		peak = dir * t.maxAccel
		t1 = math.Max((peak-a0)/jd, 0)
	}
	t3 = math.Max(a0/jd+t1, 0)

	if totalTime > timeEpsilon {
		t2 = math.Max(totalTime-t1-t3, 0)
	} else if math.Abs(peak) > timeEpsilon {
		dv1 := a0*t1 + 0.5*jd*t1*t1
		dv3 := peak*t3 - 0.5*jd*t3*t3
		t2 = math.Max((deltaV-dv1-dv3)/peak, 0)
	}

	t.t1 = math.Max(t1, 0)
	t.t2 = t2
	t.t3 = t3
}

// solveT1 returns the first phase duration of the time-optimal plan without
// an acceleration limit: jd*T1^2 + 2*a0*T1 + a0^2/(2*jd) - deltaV = 0.
func solveT1(a0 float64, deltaV float64, jd float64) float64 {
	disc := a0*a0/2 + jd*deltaV
	if disc < 0 {
		return 0
	}
	sqrtDisc := math.Sqrt(disc)
	return pickT1((-a0+sqrtDisc)/jd, (-a0-sqrtDisc)/jd, a0, jd)
}

// solveT1FixedTotal returns the first phase duration when the plan must take
// exactly totalTime: -jd*T1^2 + (jd*T - a0)*T1 + a0*T - a0^2/(2*jd) - deltaV = 0.
func solveT1FixedTotal(a0 float64, deltaV float64, jd float64, totalTime float64) float64 {
	a := -jd
	b := jd*totalTime - a0
	c := a0*totalTime - a0*a0/(2*jd) - deltaV
	disc := b*b - 4*a*c
	if disc < 0 {
		// The requested total time cannot be met, fall back to time optimal.
		return solveT1(a0, deltaV, jd)
	}
	sqrtDisc := math.Sqrt(disc)
	return pickT1((-b+sqrtDisc)/(2*a), (-b-sqrtDisc)/(2*a), a0, jd)
}

// pickT1 selects the smallest root that yields non-negative first and third
// phase durations.
func pickT1(r1 float64, r2 float64, a0 float64, jd float64) float64 {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if r1 >= 0 && a0/jd+r1 >= 0 {
		return r1
	}
	if r2 >= 0 && a0/jd+r2 >= 0 {
		return r2
	}
	return 0
}

// Integrate advances the trajectory by deltaTime scaled with timeStretch and
// returns the new acceleration, velocity and position. The current jerk is
// readable through Jerk afterwards.
func (t *VelocitySmoothing) Integrate(deltaTime float64, timeStretch float64) (accel float64, vel float64, pos float64) {
	remaining := deltaTime * timeStretch
	first := true

	for remaining > timeEpsilon {
		var step, jerk float64
		switch {
		case t.t1 > timeEpsilon:
			step = math.Min(remaining, t.t1)
			jerk = t.jerkDir
			t.t1 -= step
		case t.t2 > timeEpsilon:
			step = math.Min(remaining, t.t2)
			jerk = 0
			t.t2 -= step
		case t.t3 > timeEpsilon:
			step = math.Min(remaining, t.t3)
			jerk = -t.jerkDir
			t.t3 -= step
		default:
			// Plan exhausted. Any leftover acceleration (a freshly seeded
			// state that was never planned) ramps back to zero under the
			// jerk limit, then the trajectory coasts.
			if math.Abs(t.accel) > timeEpsilon && t.maxJerk > timeEpsilon {
				step = math.Min(remaining, math.Abs(t.accel)/t.maxJerk)
				jerk = -t.maxJerk
				if t.accel < 0 {
					jerk = t.maxJerk
				}
			} else {
				step = remaining
				jerk = 0
				t.accel = 0
			}
		}
		if first {
			t.jerk = jerk
			first = false
		}
		t.integrateStep(step, jerk)
		remaining -= step
	}

	return t.accel, t.vel, t.pos
}

func (t *VelocitySmoothing) integrateStep(h float64, jerk float64) {
	t.pos += t.vel*h + 0.5*t.accel*h*h + jerk*h*h*h/6
	t.vel += t.accel*h + 0.5*jerk*h*h
	t.accel = m.Constrain(t.accel+jerk*h, -t.maxAccel, t.maxAccel)
}

// TimeSynchronization stretches the plans of the first count trajectories so
// they all complete at the time of the slowest one. Synchronizing the two
// horizontal axes keeps diagonal motion on a straight line while stopping.
func TimeSynchronization(trajs []*VelocitySmoothing, count int) {
	maxTime := 0.0
	for i := 0; i < count && i < len(trajs); i++ {
		if tt := trajs[i].TotalTime(); tt > maxTime {
			maxTime = tt
		}
	}
	if maxTime < timeEpsilon {
		return
	}
	for i := 0; i < count && i < len(trajs); i++ {
		tr := trajs[i]
		if tt := tr.TotalTime(); tt > timeEpsilon && maxTime-tt > timeEpsilon {
			tr.planDurations(maxTime)
		}
	}
}
