package unitofwork

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type RepositoryFactoryImpl struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewRepositoryFactory(client *mongo.Client, db *mongo.Database) RepositoryFactory {
	return &RepositoryFactoryImpl{
		client: client,
		db:     db,
	}
}

// NewUnitOfWork hands out a short-lived unit per request. Begin is optional.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.client, f.db)
}
