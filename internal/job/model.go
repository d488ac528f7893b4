package job

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("job not found")
var ErrNotOwner = errors.New("caller does not own this job")

type JobType string

const (
	FullTime   JobType = "full-time"
	PartTime   JobType = "part-time"
	Contract   JobType = "contract"
	Internship JobType = "internship"
	Freelance  JobType = "freelance"
)

var jobTypes = []JobType{FullTime, PartTime, Contract, Internship, Freelance}

func (t JobType) Valid() bool {
	for _, v := range jobTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Posting is one job listing as persisted by a Store.
// OwnerUserID is written once at creation and never updated.
type Posting struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"companyName"`
	LogoURL      string    `json:"logoURL"`
	JobPosition  string    `json:"jobPosition"`
	Salary       float64   `json:"salary"`
	JobType      JobType   `json:"jobType"`
	Remote       bool      `json:"remote"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	AboutCompany string    `json:"aboutCompany"`
	Skills       []string  `json:"skills"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	OwnerUserID  string    `json:"ownerUserId"`
}

// Fields are the editable business fields replaced by an update.
type Fields struct {
	CompanyName string
	JobPosition string
	Salary      float64
	JobType     JobType
}

func (f Fields) apply(p *Posting) {
	p.CompanyName = f.CompanyName
	p.JobPosition = f.JobPosition
	p.Salary = f.Salary
	p.JobType = f.JobType
}

// Filter narrows a List. SalaryMin and SalaryMax form a closed range.
type Filter struct {
	SalaryMin   *float64
	SalaryMax   *float64
	CompanyName string // case-insensitive substring
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Offset int
	Limit  int
}

func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
