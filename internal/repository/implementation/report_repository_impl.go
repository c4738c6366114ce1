package implementation

import (
	"context"
	"errors"
	"time"

	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/mapper"
	"ops-collab-be/internal/model"
	"ops-collab-be/internal/repository/contract"
	"ops-collab-be/internal/repository/specification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ReportRepositoryImpl struct {
	coll   *mongo.Collection
	sess   *mongo.Session
	mapper *mapper.ReportMapper
}

func NewReportRepository(db *mongo.Database, sess *mongo.Session) contract.ReportRepository {
	return &ReportRepositoryImpl{
		coll:   db.Collection(model.Report{}.CollectionName()),
		sess:   sess,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *entity.Report) error {
	m := r.mapper.ToModel(report)
	_, err := r.coll.InsertOne(sessionCtx(ctx, r.sess), m)
	return err
}

func (r *ReportRepositoryImpl) Update(ctx context.Context, report *entity.Report) error {
	m := r.mapper.ToModel(report)
	_, err := r.coll.ReplaceOne(sessionCtx(ctx, r.sess), bson.M{"_id": m.Id}, m)
	return err
}

func (r *ReportRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now}}
	_, err := r.coll.UpdateOne(sessionCtx(ctx, r.sess), bson.M{"_id": id.String()}, update)
	return err
}

func (r *ReportRepositoryImpl) Purge(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(sessionCtx(ctx, r.sess), bson.M{"_id": id.String()})
	return err
}

func (r *ReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	q := specification.Build(specs...)
	var m model.Report
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), q.Filter, findOneOptions(q)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	q := specification.Build(specs...)
	ctx = sessionCtx(ctx, r.sess)
	cursor, err := r.coll.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []*model.Report
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	q := specification.Build(specs...)
	return r.coll.CountDocuments(sessionCtx(ctx, r.sess), q.Filter)
}
