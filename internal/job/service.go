package job

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/metrics"
)

// Store is the document store behind the job resource. Implementations
// return ErrNotFound for ids that do not resolve, including malformed ones.
type Store interface {
	Find(ctx context.Context, f Filter, p Page) ([]Posting, error)
	FindOne(ctx context.Context, id string) (Posting, error)
	InsertOne(ctx context.Context, p *Posting) error
	UpdateOne(ctx context.Context, id string, f Fields) error
	DeleteOne(ctx context.Context, id string) error
}

type Service struct {
	Store Store
	Rules Rules
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) List(ctx context.Context, f Filter, p Page) ([]Posting, error) {
	out, err := s.Store.Find(ctx, f, p.normalize())
	observe("list", err)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Posting{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Posting, error) {
	p, err := s.Store.FindOne(ctx, id)
	observe("get", err)
	return p, err
}

// Create stores a new posting owned by callerID. Owner and creation time
// never come from the payload.
func (s *Service) Create(ctx context.Context, callerID string, in Input) (Posting, error) {
	p, err := Validate(in, s.Rules)
	if err != nil {
		observe("create", err)
		return Posting{}, err
	}
	p.OwnerUserID = callerID
	p.CreatedAt = s.now()

	err = s.Store.InsertOne(ctx, &p)
	observe("create", err)
	if err != nil {
		return Posting{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, callerID, id string, in Input) error {
	err := s.update(ctx, callerID, id, in)
	observe("update", err)
	return err
}

func (s *Service) update(ctx context.Context, callerID, id string, in Input) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	f, err := ValidateUpdate(in)
	if err != nil {
		return err
	}
	return s.Store.UpdateOne(ctx, id, f)
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	err := s.delete(ctx, callerID, id)
	observe("delete", err)
	return err
}

func (s *Service) delete(ctx context.Context, callerID, id string) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	return s.Store.DeleteOne(ctx, id)
}

// CheckOwner returns ErrNotFound or ErrNotOwner when callerID may not
// modify id.
func (s *Service) CheckOwner(ctx context.Context, callerID, id string) error {
	_, err := s.owned(ctx, callerID, id)
	return err
}

// owned loads id and checks that callerID is its owner.
func (s *Service) owned(ctx context.Context, callerID, id string) (Posting, error) {
	p, err := s.Store.FindOne(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	if p.OwnerUserID != callerID {
		return Posting{}, ErrNotOwner
	}
	return p, nil
}

func observe(op string, err error) {
	var ve *ValidationError
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrNotOwner):
		outcome = "not_owner"
	case errors.As(err, &ve):
		outcome = "invalid"
	default:
		outcome = "error"
	}
	metrics.ObserveJobOp(op, outcome)
}
