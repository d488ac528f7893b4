package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostingRow is the postgres representation of a Posting.
type PostingRow struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyName  string         `gorm:"type:text;not null"`
	LogoURL      string         `gorm:"type:text;not null;default:''"`
	JobPosition  string         `gorm:"type:text;not null"`
	Salary       float64        `gorm:"index;not null"`
	JobType      string         `gorm:"type:text;not null;check:chk_job_postings_job_type,job_type IN ('full-time','part-time','contract','internship','freelance')"`
	Remote       bool           `gorm:"not null;default:false"`
	Location     string         `gorm:"type:text;not null;default:''"`
	Description  string         `gorm:"type:text;not null;default:''"`
	AboutCompany string         `gorm:"type:text;not null;default:''"`
	Skills       pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	IsAdmin      bool           `gorm:"not null;default:false"`
	OwnerUserID  string         `gorm:"type:text;index;not null;<-:create"`
	CreatedAt    time.Time      `gorm:"index;not null;default:now()"`
}

func (PostingRow) TableName() string { return "job_postings" }

func (r PostingRow) posting() Posting {
	skills := []string(r.Skills)
	if skills == nil {
		skills = []string{}
	}
	return Posting{
		ID:           r.ID.String(),
		CompanyName:  r.CompanyName,
		LogoURL:      r.LogoURL,
		JobPosition:  r.JobPosition,
		Salary:       r.Salary,
		JobType:      JobType(r.JobType),
		Remote:       r.Remote,
		Location:     r.Location,
		Description:  r.Description,
		AboutCompany: r.AboutCompany,
		Skills:       skills,
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt,
		OwnerUserID:  r.OwnerUserID,
	}
}

type GormStore struct {
	DB *gorm.DB
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring ILIKE match with wildcards escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (s *GormStore) Find(ctx context.Context, f Filter, p Page) ([]Posting, error) {
	q := s.DB.WithContext(ctx).Model(&PostingRow{})

	if f.SalaryMin != nil {
		q = q.Where("salary >= ?", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		q = q.Where("salary <= ?", *f.SalaryMax)
	}
	if f.CompanyName != "" {
		q = q.Where(`company_name ILIKE ? ESCAPE '\'`, likePattern(f.CompanyName))
	}

	var rows []PostingRow
	if err := q.Order("created_at asc, id asc").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find jobs")
	}

	out := make([]Posting, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.posting())
	}
	return out, nil
}

func (s *GormStore) FindOne(ctx context.Context, id string) (Posting, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Posting{}, ErrNotFound
	}

	var r PostingRow
	if err := s.DB.WithContext(ctx).Where("id = ?", uid).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Posting{}, ErrNotFound
		}
		return Posting{}, errors.Wrapf(err, "find job %s", id)
	}
	return r.posting(), nil
}

func (s *GormStore) InsertOne(ctx context.Context, p *Posting) error {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	r := PostingRow{
		ID:           uuid.New(),
		CompanyName:  p.CompanyName,
		LogoURL:      p.LogoURL,
		JobPosition:  p.JobPosition,
		Salary:       p.Salary,
		JobType:      string(p.JobType),
		Remote:       p.Remote,
		Location:     p.Location,
		Description:  p.Description,
		AboutCompany: p.AboutCompany,
		Skills:       pq.StringArray(skills),
		IsAdmin:      p.IsAdmin,
		OwnerUserID:  p.OwnerUserID,
		CreatedAt:    p.CreatedAt,
	}
	if err := s.DB.WithContext(ctx).Create(&r).Error; err != nil {
		return errors.Wrap(err, "insert job")
	}
	p.ID = r.ID.String()
	p.Skills = skills
	return nil
}

func (s *GormStore) UpdateOne(ctx context.Context, id string, f Fields) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	res := s.DB.WithContext(ctx).Model(&PostingRow{}).
		Where("id = ?", uid).
		Updates(map[string]any{
			"company_name": f.CompanyName,
			"job_position": f.JobPosition,
			"salary":       f.Salary,
			"job_type":     string(f.JobType),
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update job %s", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteOne(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	res := s.DB.WithContext(ctx).Where("id = ?", uid).Delete(&PostingRow{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete job %s", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
