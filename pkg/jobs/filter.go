package jobs

import "scrapedash/pkg/models"

// AnyOption is the sentinel for enum-valued filters meaning "no constraint",
// equivalent to leaving the field empty.
const AnyOption = "All"

// Dropdown vocabularies for the enum-valued filters.
var (
	JobTypeOptions      = []string{AnyOption, "Full-time", "Part-time", "Contract", "Internship", "Temporary"}
	RemoteOptions       = []string{AnyOption, "Remote", "On-site", "Hybrid"}
	ContractTypeOptions = []string{AnyOption, "Permanent", "Fixed-term", "Temporary", "Freelance"}
)

// Filters holds the seven independent dashboard predicates. The zero value
// filters nothing. Enum fields are inactive when empty or AnyOption; pointer
// fields are inactive when nil. Filters carries pure input only, no derived
// data.
type Filters struct {
	JobType      string
	RemoteOption string
	SalaryMin    *float64
	SalaryMax    *float64
	ATSDetected  *bool
	EasyApply    *bool
	ContractType string
}

func enumActive(v string) bool {
	return v != "" && v != AnyOption
}

// Match reports whether a job satisfies every active predicate. Evaluation
// short-circuits on the first failing predicate; the result does not depend
// on predicate order.
func (f Filters) Match(j models.Job) bool {
	if enumActive(f.JobType) && j.JobType != f.JobType {
		return false
	}

	if enumActive(f.RemoteOption) && j.RemoteOption != f.RemoteOption {
		return false
	}

	// A job with no salary data at all fails whenever either bound is set,
	// regardless of its value. A zero bound activates the predicate without
	// constraining the range.
	if f.SalaryMin != nil || f.SalaryMax != nil {
		s := Salary(j)
		if !s.HasData() {
			return false
		}
		v := s.CompareValue()
		if f.SalaryMin != nil && *f.SalaryMin != 0 && v < *f.SalaryMin {
			return false
		}
		if f.SalaryMax != nil && *f.SalaryMax != 0 && v > *f.SalaryMax {
			return false
		}
	}

	if f.ATSDetected != nil && ATSDetected(j) != *f.ATSDetected {
		return false
	}

	// Strict match: a record without the flag never matches an easy-apply
	// constraint, not even a false one.
	if f.EasyApply != nil {
		if j.IsEasyApply == nil || *j.IsEasyApply != *f.EasyApply {
			return false
		}
	}

	if enumActive(f.ContractType) && j.ContractType != f.ContractType {
		return false
	}

	return true
}

// Apply returns the jobs satisfying every active predicate, in input order.
func Apply(jobs []models.Job, f Filters) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

// ActiveCount returns how many predicates currently constrain the result.
func (f Filters) ActiveCount() int {
	count := 0
	if enumActive(f.JobType) {
		count++
	}
	if enumActive(f.RemoteOption) {
		count++
	}
	if f.SalaryMin != nil {
		count++
	}
	if f.SalaryMax != nil {
		count++
	}
	if f.ATSDetected != nil {
		count++
	}
	if f.EasyApply != nil {
		count++
	}
	if enumActive(f.ContractType) {
		count++
	}
	return count
}
