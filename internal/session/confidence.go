package session

// ConfidenceBuckets are the snapped confidence levels, ascending.
var ConfidenceBuckets = []int{0, 25, 50, 75, 100}

// SnapConfidence maps a 0–100 confidence score onto its bucket.
func SnapConfidence(score int) int {
	switch {
	case score >= 88:
		return 100
	case score >= 63:
		return 75
	case score >= 38:
		return 50
	case score >= 13:
		return 25
	}
	return 0
}

func newConfidenceMatrix() ConfidenceMatrix {
	m := make(ConfidenceMatrix, len(ConfidenceBuckets))
	for _, b := range ConfidenceBuckets {
		m[b] = Tally{}
	}
	return m
}

func buildConfidenceMatrix(resolved []Resolved) ConfidenceMatrix {
	m := newConfidenceMatrix()
	for i := range resolved {
		rec := &resolved[i].Latest
		if rec.Skipped {
			continue
		}
		bucket := SnapConfidence(rec.Confidence)
		t := m[bucket]
		if rec.Correct {
			t.Correct++
		} else {
			t.Wrong++
		}
		m[bucket] = t
	}
	return m
}
