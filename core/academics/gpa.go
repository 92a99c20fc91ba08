package academics

import "sort"

// gradeBand maps a score floor to its letter and point on the 5.0 scale.
type gradeBand struct {
	floor  float64
	letter string
	point  float64
}

// bands must stay ordered by descending floor.
var bands = []gradeBand{
	{80, "A", 5.0},
	{75, "B+", 4.5},
	{70, "B", 4.0},
	{65, "C+", 3.5},
	{60, "C", 3.0},
	{55, "D+", 2.5},
	{50, "D", 2.0},
	{45, "E", 1.5},
	{40, "E-", 1.0},
	{0, "F", 0.0},
}

// Letter returns the grade letter for a score.
func Letter(score float64) string {
	for _, b := range bands {
		if score >= b.floor {
			return b.letter
		}
	}
	return "F"
}

// Point returns the grade point for a score on the 5.0 scale.
func Point(score float64) float64 {
	for _, b := range bands {
		if score >= b.floor {
			return b.point
		}
	}
	return 0
}

// weightedGPA is the credit-weighted mean grade point, zero-guarded against
// an empty or zero-credit set.
func weightedGPA(grades []Grade) (gpa float64, credits int) {
	var weighted float64
	for _, g := range grades {
		weighted += Point(g.Score) * float64(g.Course.Credits)
		credits += g.Course.Credits
	}
	if credits == 0 {
		return 0, 0
	}
	return weighted / float64(credits), credits
}

// CGPA is the credit-weighted grade point average over all grades.
func CGPA(grades []Grade) float64 {
	gpa, _ := weightedGPA(grades)
	return gpa
}

// TermResults groups grades by (academicYear, semester) and computes each
// term's GPA. Terms are ordered by academic year then semester label.
func TermResults(grades []Grade) []TermResult {
	type termKey struct{ year, semester string }

	grouped := make(map[termKey][]Grade)
	for _, g := range grades {
		key := termKey{g.AcademicYear, g.Semester}
		grouped[key] = append(grouped[key], g)
	}

	keys := make([]termKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].semester < keys[j].semester
	})

	terms := make([]TermResult, 0, len(keys))
	for _, key := range keys {
		gpa, credits := weightedGPA(grouped[key])
		terms = append(terms, TermResult{
			Semester:     key.semester,
			AcademicYear: key.year,
			GPA:          gpa,
			Credits:      credits,
			Courses:      len(grouped[key]),
		})
	}
	return terms
}
