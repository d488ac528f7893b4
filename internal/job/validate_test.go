package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func boolean(b bool) *bool   { return &b }

func minimalInput() Input {
	return Input{
		CompanyName: str("Acme"),
		JobPosition: str("Engineer"),
		Salary:      num(1000),
		JobType:     str("full-time"),
	}
}

func fullInput() Input {
	in := minimalInput()
	in.LogoURL = str("https://acme.test/logo.png")
	in.Remote = boolean(false)
	in.Location = str("Berlin")
	in.Description = str("Build things")
	in.AboutCompany = str("We make anvils")
	in.Skills = []string{" go ", "", "sql"}
	return in
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      func() Input
		rules   Rules
		missing []string
		invalid []string
	}{
		{name: "minimal lenient", in: minimalInput},
		{name: "full strict", in: fullInput, rules: Rules{RequireAllFields: true}},
		{
			name:    "minimal strict",
			in:      minimalInput,
			rules:   Rules{RequireAllFields: true},
			missing: []string{"logoURL", "remote", "location", "description", "aboutCompany"},
		},
		{
			name:    "empty",
			in:      func() Input { return Input{} },
			missing: []string{"companyName", "jobPosition", "salary", "jobType"},
		},
		{
			name: "blank strings and zero salary",
			in: func() Input {
				in := minimalInput()
				in.CompanyName = str("   ")
				in.Salary = num(0)
				return in
			},
			missing: []string{"companyName", "salary"},
		},
		{
			name: "bad enum and negative salary",
			in: func() Input {
				in := minimalInput()
				in.JobType = str("Full-Time")
				in.Salary = num(-5)
				return in
			},
			invalid: []string{"salary", "jobType"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Validate(tt.in(), tt.rules)
			if tt.missing == nil && tt.invalid == nil {
				require.NoError(t, err)
				assert.Equal(t, "Acme", p.CompanyName)
				assert.Equal(t, FullTime, p.JobType)
				assert.NotNil(t, p.Skills)
				assert.False(t, p.IsAdmin)
				assert.Empty(t, p.OwnerUserID)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.missing, ve.Missing)
			assert.Equal(t, tt.invalid, ve.Invalid)
		})
	}
}

func TestValidateCleansSkills(t *testing.T) {
	p, err := Validate(fullInput(), Rules{RequireAllFields: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, "Berlin", p.Location)
}

func TestValidateUpdate(t *testing.T) {
	f, err := ValidateUpdate(minimalInput())
	require.NoError(t, err)
	assert.Equal(t, Fields{CompanyName: "Acme", JobPosition: "Engineer", Salary: 1000, JobType: FullTime}, f)

	_, err = ValidateUpdate(Input{CompanyName: str("Acme")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"jobPosition", "salary", "jobType"}, ve.Fields())
	assert.Contains(t, ve.Error(), "missing: jobPosition, salary, jobType")
}

func TestJobTypeValid(t *testing.T) {
	for _, s := range JobTypes() {
		assert.True(t, JobType(s).Valid(), s)
	}
	assert.False(t, JobType("temp").Valid())
	assert.False(t, JobType("").Valid())
}
