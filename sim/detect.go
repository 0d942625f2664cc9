package sim

// maxCyclePeriod bounds the repeating-window search; idle-game loops
// worth flagging are short.
const maxCyclePeriod = 6

// DetectCycle looks for a repeating ordered sub-window at the end of the
// category sequence: the smallest period p (2..maxCyclePeriod) whose
// last two p-length windows are identical. A single repeated category is
// reported as a period-1 cycle only when it closes the sequence at least
// four times in a row. Returns nil when no cycle is present.
func DetectCycle(categories []string) []string {
	n := len(categories)
	if n >= 4 {
		c := categories[n-1]
		if categories[n-2] == c && categories[n-3] == c && categories[n-4] == c {
			return []string{c}
		}
	}
	for p := 2; p <= maxCyclePeriod; p++ {
		if n < 2*p {
			break
		}
		match := true
		for i := 0; i < p; i++ {
			if categories[n-1-i] != categories[n-1-p-i] {
				match = false
				break
			}
		}
		if match && !uniform(categories[n-p:]) {
			return append([]string(nil), categories[n-p:]...)
		}
	}
	return nil
}

func uniform(window []string) bool {
	for _, c := range window {
		if c != window[0] {
			return false
		}
	}
	return true
}
