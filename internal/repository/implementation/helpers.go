package implementation

import (
	"context"

	"ops-collab-be/internal/repository/specification"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// sessionCtx binds the unit-of-work session to the caller's context when a
// transaction is active.
func sessionCtx(ctx context.Context, sess *mongo.Session) context.Context {
	if sess != nil {
		return mongo.NewSessionContext(ctx, sess)
	}
	return ctx
}

func findOptions(q *specification.Query) *options.FindOptionsBuilder {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	return opts
}

func findOneOptions(q *specification.Query) *options.FindOneOptionsBuilder {
	opts := options.FindOne()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	return opts
}
