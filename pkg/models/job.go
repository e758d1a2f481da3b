package models

import "encoding/json"

// Job represents a scraped job posting as returned by the remote scraping
// service. Two producer conventions exist side by side (nested objects vs.
// flat fields), so most fields are optional and a few accept more than one
// JSON shape. Use pkg/jobs to resolve canonical values instead of reading
// these fields directly.
type Job struct {
	ID          string `json:"id,omitempty"`
	MongoID     string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	Location *Location `json:"location,omitempty"`
	City     string    `json:"city,omitempty"`
	Region   string    `json:"region,omitempty"`
	Country  string    `json:"country,omitempty"`

	RemoteOption string `json:"remote_option,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	ContractType string `json:"contract_type,omitempty"`

	Salary         *Salary  `json:"salary,omitempty"`
	SalaryMin      *float64 `json:"salary_min,omitempty"`
	SalaryMax      *float64 `json:"salary_max,omitempty"`
	SalaryCurrency string   `json:"salary_currency,omitempty"`
	SalaryPeriod   string   `json:"salary_period,omitempty"`

	ApplicationMethod *ApplicationMethod `json:"application_method,omitempty"`
	IsEasyApply       *bool              `json:"is_easy_apply,omitempty"`

	PostedDate string    `json:"posted_date,omitempty"`
	PostDate   *PostDate `json:"post_date,omitempty"`
	ScrapedAt  string    `json:"scraped_at,omitempty"`

	BatchID    string `json:"batch_id,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	MainDomain string `json:"main_domain,omitempty"`

	Skills       []string `json:"skills,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`

	ATSDetected bool   `json:"ats_detected,omitempty"`
	IsATS       bool   `json:"is_ats,omitempty"`
	ATSSystem   string `json:"ats_system,omitempty"`
	ATSProvider string `json:"ats_provider,omitempty"`
}

// Location accepts either a plain string or a structured object. When the
// backend sent a string it is kept verbatim in Raw and the structured fields
// stay empty.
type Location struct {
	Raw      string `json:"-"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Location{Raw: s}
		return nil
	}

	type plain Location
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*l = Location(obj)
		return nil
	}

	// Unexpected shape, treat as absent rather than failing the whole record.
	*l = Location{}
	return nil
}

func (l *Location) MarshalJSON() ([]byte, error) {
	if l.Raw != "" {
		return json.Marshal(l.Raw)
	}
	type plain Location
	return json.Marshal((*plain)(l))
}

// Salary is the nested compensation form. The flat salary_min/max/currency/
// period fields on Job are the other convention; the nested form wins only
// when the backend actually sent an object, which Object reports.
type Salary struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Period   string   `json:"period,omitempty"`

	object bool
}

// Object reports whether the salary field decoded from a JSON object.
func (s *Salary) Object() bool {
	return s != nil && s.object
}

func (s *Salary) UnmarshalJSON(data []byte) error {
	type plain Salary
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*s = Salary(obj)
		s.object = true
		return nil
	}
	*s = Salary{}
	return nil
}

func (s *Salary) MarshalJSON() ([]byte, error) {
	type plain Salary
	return json.Marshal((*plain)(s))
}

// PostDate is the nested posting-date form carrying an ISO 8601 string.
type PostDate struct {
	ISOFormat string `json:"iso_format,omitempty"`
}

func (p *PostDate) UnmarshalJSON(data []byte) error {
	type plain PostDate
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*p = PostDate(obj)
		return nil
	}
	*p = PostDate{}
	return nil
}

// ApplicationMethod accepts a free-form string or an object with type and
// instructions fields.
type ApplicationMethod struct {
	Raw          string `json:"-"`
	Type         string `json:"type,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	object bool
}

// Object reports whether the application_method field decoded from a JSON
// object (even an empty one).
func (m *ApplicationMethod) Object() bool {
	return m != nil && m.object
}

func (m *ApplicationMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = ApplicationMethod{Raw: s}
		return nil
	}

	type plain ApplicationMethod
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*m = ApplicationMethod(obj)
		m.object = true
		return nil
	}

	*m = ApplicationMethod{}
	return nil
}

func (m *ApplicationMethod) MarshalJSON() ([]byte, error) {
	if !m.object && m.Raw != "" {
		return json.Marshal(m.Raw)
	}
	type plain ApplicationMethod
	return json.Marshal((*plain)(m))
}
