package implementation

import (
	"context"
	"errors"

	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/mapper"
	"ops-collab-be/internal/model"
	"ops-collab-be/internal/repository/contract"
	"ops-collab-be/internal/repository/specification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MissionRepositoryImpl struct {
	coll   *mongo.Collection
	sess   *mongo.Session
	mapper *mapper.MissionMapper
}

func NewMissionRepository(db *mongo.Database, sess *mongo.Session) contract.MissionRepository {
	return &MissionRepositoryImpl{
		coll:   db.Collection(model.Mission{}.CollectionName()),
		sess:   sess,
		mapper: mapper.NewMissionMapper(),
	}
}

func (r *MissionRepositoryImpl) Create(ctx context.Context, mission *entity.Mission) error {
	m := r.mapper.ToModel(mission)
	_, err := r.coll.InsertOne(sessionCtx(ctx, r.sess), m)
	return err
}

func (r *MissionRepositoryImpl) Update(ctx context.Context, mission *entity.Mission) error {
	m := r.mapper.ToModel(mission)
	_, err := r.coll.ReplaceOne(sessionCtx(ctx, r.sess), bson.M{"_id": m.Id}, m)
	return err
}

func (r *MissionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(sessionCtx(ctx, r.sess), bson.M{"_id": id.String()})
	return err
}

func (r *MissionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mission, error) {
	q := specification.Build(specs...)
	var m model.Mission
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), q.Filter, findOneOptions(q)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MissionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mission, error) {
	q := specification.Build(specs...)
	ctx = sessionCtx(ctx, r.sess)
	cursor, err := r.coll.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []*model.Mission
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MissionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	q := specification.Build(specs...)
	return r.coll.CountDocuments(sessionCtx(ctx, r.sess), q.Filter)
}
