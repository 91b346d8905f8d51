package mongodb

import (
	"context"
	"errors"

	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "game"

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.GameRecord, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb game collection is nil")
	}

	var doc model.GameDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrGameNotFound.WithData("gameId", int64(id))
	}
	if err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	return model.DocToRecord(doc), nil
}

func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb game collection is nil")
	}

	doc := model.SnapshotToDoc(s)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.GameId},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id entity.GameID) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb game collection is nil")
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": int64(id)}); err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}
