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

type NotificationRepositoryImpl struct {
	coll   *mongo.Collection
	sess   *mongo.Session
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *mongo.Database, sess *mongo.Session) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		coll:   db.Collection(model.Notification{}.CollectionName()),
		sess:   sess,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	_, err := r.coll.InsertOne(sessionCtx(ctx, r.sess), m)
	return err
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(sessionCtx(ctx, r.sess), bson.M{"_id": id.String()})
	return err
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) error {
	update := bson.M{"$set": bson.M{"read": true}}
	_, err := r.coll.UpdateOne(sessionCtx(ctx, r.sess), bson.M{"_id": id.String()}, update)
	return err
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userId uuid.UUID) (int64, error) {
	filter := bson.M{"user_id": userId.String(), "read": false}
	update := bson.M{"$set": bson.M{"read": true}}
	result, err := r.coll.UpdateMany(sessionCtx(ctx, r.sess), filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *NotificationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error) {
	q := specification.Build(specs...)
	var m model.Notification
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), q.Filter, findOneOptions(q)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	q := specification.Build(specs...)
	ctx = sessionCtx(ctx, r.sess)
	cursor, err := r.coll.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []*model.Notification
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NotificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	q := specification.Build(specs...)
	return r.coll.CountDocuments(sessionCtx(ctx, r.sess), q.Filter)
}
