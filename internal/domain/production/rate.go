package production

// DefaultReferenceWorkers is the workforce every duration constant is defined against
const DefaultReferenceWorkers = 10

// EffectiveWorkers caps the hired workforce at the base's workspace capacity
func EffectiveWorkers(hired, workspaceMax int) int {
	if hired > workspaceMax {
		return workspaceMax
	}
	if hired < 0 {
		return 0
	}
	return hired
}

// Fraction returns how much of one unit a workforce completes in an hour.
//
// Progress grows with the square of the workforce ratio; a workforce equal to
// the reference finishes one unit in exactly durationHours. The result is
// clamped to [0, 1]. A zero or negative duration completes a unit every hour.
func Fraction(workers, referenceWorkers, durationHours int) float64 {
	if workers <= 0 || referenceWorkers <= 0 {
		return 0
	}
	if durationHours <= 0 {
		return 1
	}

	if workers == referenceWorkers {
		return 1 / float64(durationHours)
	}

	ratio := float64(workers) / float64(referenceWorkers)
	f := ratio * ratio / float64(durationHours)
	if f > 1 {
		return 1
	}
	return f
}
