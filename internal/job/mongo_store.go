package job

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MongoCollection = "jobs"

// mongoPosting keeps the field names of the existing jobs collection,
// including "user" for the owner and "date" for the creation time. The
// owner is an ObjectId when the caller id is one, a string otherwise.
type mongoPosting struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CompanyName  string             `bson:"companyName"`
	LogoURL      string             `bson:"logoURL"`
	JobPosition  string             `bson:"jobPosition"`
	Salary       float64            `bson:"salary"`
	JobType      string             `bson:"jobType"`
	Remote       bool               `bson:"remote"`
	Location     string             `bson:"location"`
	Description  string             `bson:"description"`
	AboutCompany string             `bson:"aboutCompany"`
	Skills       []string           `bson:"skills"`
	IsAdmin      bool               `bson:"isAdmin"`
	CreatedAt    time.Time          `bson:"date"`
	OwnerUserID  any                `bson:"user"`
}

func toMongo(p Posting) mongoPosting {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return mongoPosting{
		CompanyName:  p.CompanyName,
		LogoURL:      p.LogoURL,
		JobPosition:  p.JobPosition,
		Salary:       p.Salary,
		JobType:      string(p.JobType),
		Remote:       p.Remote,
		Location:     p.Location,
		Description:  p.Description,
		AboutCompany: p.AboutCompany,
		Skills:       skills,
		IsAdmin:      p.IsAdmin,
		CreatedAt:    p.CreatedAt,
		OwnerUserID:  ownerToBSON(p.OwnerUserID),
	}
}

// ownerToBSON stores canonical hex ids as ObjectIds. Other spellings stay
// strings so the id read back always equals the one written.
func ownerToBSON(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil && oid.Hex() == id {
		return oid
	}
	return id
}

func ownerFromBSON(v any) string {
	switch o := v.(type) {
	case primitive.ObjectID:
		return o.Hex()
	case string:
		return o
	}
	return ""
}

func (d mongoPosting) posting() Posting {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return Posting{
		ID:           d.ID.Hex(),
		CompanyName:  d.CompanyName,
		LogoURL:      d.LogoURL,
		JobPosition:  d.JobPosition,
		Salary:       d.Salary,
		JobType:      JobType(d.JobType),
		Remote:       d.Remote,
		Location:     d.Location,
		Description:  d.Description,
		AboutCompany: d.AboutCompany,
		Skills:       skills,
		IsAdmin:      d.IsAdmin,
		CreatedAt:    d.CreatedAt,
		OwnerUserID:  ownerFromBSON(d.OwnerUserID),
	}
}

type MongoStore struct {
	Coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{Coll: db.Collection(MongoCollection)}
}

// mongoFilter translates f into a query document.
func mongoFilter(f Filter) bson.M {
	q := bson.M{}
	if f.SalaryMin != nil || f.SalaryMax != nil {
		r := bson.M{}
		if f.SalaryMin != nil {
			r["$gte"] = *f.SalaryMin
		}
		if f.SalaryMax != nil {
			r["$lte"] = *f.SalaryMax
		}
		q["salary"] = r
	}
	if f.CompanyName != "" {
		q["companyName"] = bson.M{
			"$regex":   regexp.QuoteMeta(f.CompanyName),
			"$options": "i",
		}
	}
	return q
}

func (s *MongoStore) Find(ctx context.Context, f Filter, p Page) ([]Posting, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(p.Offset)).
		SetLimit(int64(p.Limit))

	cur, err := s.Coll.Find(ctx, mongoFilter(f), opts)
	if err != nil {
		return nil, errors.Wrap(err, "find jobs")
	}
	defer cur.Close(ctx)

	var docs []mongoPosting
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode jobs")
	}

	out := make([]Posting, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.posting())
	}
	return out, nil
}

func (s *MongoStore) FindOne(ctx context.Context, id string) (Posting, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Posting{}, ErrNotFound
	}

	var d mongoPosting
	if err := s.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Posting{}, ErrNotFound
		}
		return Posting{}, errors.Wrapf(err, "find job %s", id)
	}
	return d.posting(), nil
}

func (s *MongoStore) InsertOne(ctx context.Context, p *Posting) error {
	d := toMongo(*p)
	d.ID = primitive.NewObjectID()
	if _, err := s.Coll.InsertOne(ctx, d); err != nil {
		return errors.Wrap(err, "insert job")
	}
	p.ID = d.ID.Hex()
	p.Skills = d.Skills
	return nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, id string, f Fields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.Coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"companyName": f.CompanyName,
		"jobPosition": f.JobPosition,
		"salary":      f.Salary,
		"jobType":     string(f.JobType),
	}})
	if err != nil {
		return errors.Wrapf(err, "update job %s", id)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.Coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete job %s", id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
