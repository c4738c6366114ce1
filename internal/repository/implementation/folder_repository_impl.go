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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type FolderRepositoryImpl struct {
	coll   *mongo.Collection
	sess   *mongo.Session
	mapper *mapper.FolderMapper
}

func NewFolderRepository(db *mongo.Database, sess *mongo.Session) contract.FolderRepository {
	return &FolderRepositoryImpl{
		coll:   db.Collection(model.Folder{}.CollectionName()),
		sess:   sess,
		mapper: mapper.NewFolderMapper(),
	}
}

func (r *FolderRepositoryImpl) Create(ctx context.Context, folder *entity.Folder) error {
	m := r.mapper.ToModel(folder)
	_, err := r.coll.InsertOne(sessionCtx(ctx, r.sess), m)
	return err
}

func (r *FolderRepositoryImpl) Update(ctx context.Context, folder *entity.Folder) error {
	m := r.mapper.ToModel(folder)
	_, err := r.coll.ReplaceOne(sessionCtx(ctx, r.sess), bson.M{"_id": m.Id}, m)
	return err
}

func (r *FolderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(sessionCtx(ctx, r.sess), bson.M{"_id": id.String()})
	return err
}

func (r *FolderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	q := specification.Build(specs...)
	var m model.Folder
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), q.Filter, findOneOptions(q)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FolderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error) {
	q := specification.Build(specs...)
	ctx = sessionCtx(ctx, r.sess)
	cursor, err := r.coll.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []*model.Folder
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FolderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	q := specification.Build(specs...)
	return r.coll.CountDocuments(sessionCtx(ctx, r.sess), q.Filter)
}

func (r *FolderRepositoryImpl) MaxPosition(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	var m model.Folder
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), bson.M{}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return -1, nil
		}
		return 0, err
	}
	return m.Position, nil
}
