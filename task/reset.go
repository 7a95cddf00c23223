package task

// checkResetCounters absorbs discontinuous estimator corrections. For every
// counter that moved since the stored snapshot, the affected position or
// velocity of the affected axes is overwritten with the raw estimate;
// acceleration and jerk stay untouched so the commanded motion remains
// continuous. Runs at the start of every cycle.
func (t *FlightTask) checkResetCounters(in Input) {
	if in.ResetCounters.Xy != t.resetCounters.Xy {
		t.trajectory[0].SetCurrentPosition(in.Position.X)
		t.trajectory[1].SetCurrentPosition(in.Position.Y)
		t.resetCounters.Xy = in.ResetCounters.Xy
	}

	if in.ResetCounters.Vxy != t.resetCounters.Vxy {
		t.trajectory[0].SetCurrentVelocity(in.Velocity.X)
		t.trajectory[1].SetCurrentVelocity(in.Velocity.Y)
		t.resetCounters.Vxy = in.ResetCounters.Vxy
	}

	if in.ResetCounters.Z != t.resetCounters.Z {
		t.trajectory[2].SetCurrentPosition(in.Position.Z)
		t.resetCounters.Z = in.ResetCounters.Z
	}

	if in.ResetCounters.Vz != t.resetCounters.Vz {
		t.trajectory[2].SetCurrentVelocity(in.Velocity.Z)
		t.resetCounters.Vz = in.ResetCounters.Vz
	}
}
