package job

import "strings"

// Input is a create or update payload as decoded from JSON. Nil means absent.
type Input struct {
	CompanyName  *string  `json:"companyName"`
	LogoURL      *string  `json:"logoURL"`
	JobPosition  *string  `json:"jobPosition"`
	Salary       *float64 `json:"salary"`
	JobType      *string  `json:"jobType"`
	Remote       *bool    `json:"remote"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
	AboutCompany *string  `json:"aboutCompany"`
	Skills       []string `json:"skills"`
}

type Rules struct {
	// RequireAllFields also requires logoURL, remote, location,
	// description and aboutCompany. Otherwise only the four fields the
	// create endpoint documents are required.
	RequireAllFields bool
}

type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	return "validation failed (" + strings.Join(parts, "; ") + ")"
}

// Fields returns every offending field name, missing first.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Invalid))
	out = append(out, e.Missing...)
	return append(out, e.Invalid...)
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

// Validate checks a candidate posting and returns it with defaults applied.
// ID, CreatedAt and OwnerUserID are left for the caller to set.
func Validate(in Input, rules Rules) (Posting, error) {
	ve := &ValidationError{}
	f := checkEditable(in, ve)

	p := Posting{
		CompanyName:  f.CompanyName,
		JobPosition:  f.JobPosition,
		Salary:       f.Salary,
		JobType:      f.JobType,
		LogoURL:      trimmed(in.LogoURL),
		Location:     trimmed(in.Location),
		Description:  trimmed(in.Description),
		AboutCompany: trimmed(in.AboutCompany),
		Skills:       cleanSkills(in.Skills),
	}
	if in.Remote != nil {
		p.Remote = *in.Remote
	}

	if rules.RequireAllFields {
		requireString(ve, "logoURL", in.LogoURL)
		if in.Remote == nil {
			ve.Missing = append(ve.Missing, "remote")
		}
		requireString(ve, "location", in.Location)
		requireString(ve, "description", in.Description)
		requireString(ve, "aboutCompany", in.AboutCompany)
	}

	if !ve.empty() {
		return Posting{}, ve
	}
	return p, nil
}

// ValidateUpdate checks the editable fields of an update payload.
func ValidateUpdate(in Input) (Fields, error) {
	ve := &ValidationError{}
	f := checkEditable(in, ve)
	if !ve.empty() {
		return Fields{}, ve
	}
	return f, nil
}

func checkEditable(in Input, ve *ValidationError) Fields {
	requireString(ve, "companyName", in.CompanyName)
	requireString(ve, "jobPosition", in.JobPosition)

	var f Fields
	switch {
	case in.Salary == nil || *in.Salary == 0:
		ve.Missing = append(ve.Missing, "salary")
	case *in.Salary < 0:
		ve.Invalid = append(ve.Invalid, "salary")
	default:
		f.Salary = *in.Salary
	}

	if in.JobType == nil || strings.TrimSpace(*in.JobType) == "" {
		ve.Missing = append(ve.Missing, "jobType")
	} else if t := JobType(strings.TrimSpace(*in.JobType)); !t.Valid() {
		ve.Invalid = append(ve.Invalid, "jobType")
	} else {
		f.JobType = t
	}

	f.CompanyName = trimmed(in.CompanyName)
	f.JobPosition = trimmed(in.JobPosition)
	return f
}

func requireString(ve *ValidationError, name string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		ve.Missing = append(ve.Missing, name)
	}
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (t JobType) String() string { return string(t) }

// JobTypes lists the accepted job types in display order.
func JobTypes() []string {
	out := make([]string, len(jobTypes))
	for i, t := range jobTypes {
		out[i] = string(t)
	}
	return out
}
