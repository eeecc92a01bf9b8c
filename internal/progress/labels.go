package progress

// FocusLabel names a focus value for display.
func FocusLabel(v int) string {
	switch {
	case v >= 90:
		return "Legendary"
	case v >= 70:
		return "Excellent"
	case v >= 50:
		return "Good"
	case v >= 30:
		return "Fair"
	default:
		return "Starting"
	}
}

func EnergyLabel(v int) string {
	switch {
	case v >= 90:
		return "Legendary"
	case v >= 70:
		return "Excellent"
	case v >= 50:
		return "Good"
	case v >= 30:
		return "Fair"
	default:
		return "Low"
	}
}

func MomentumLabel(v int) string {
	switch {
	case v >= 90:
		return "Unstoppable"
	case v >= 70:
		return "Strong"
	case v >= 50:
		return "Building"
	case v >= 30:
		return "Growing"
	default:
		return "Starting"
	}
}
