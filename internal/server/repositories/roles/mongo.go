package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection holding roles.
const CollectionName = "roles"

type mongoRole struct {
	ID   primitive.ObjectID `bson:"_id"`
	Role string             `bson:"role"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var doc mongoRole
	err := r.coll.FindOne(ctx, bson.M{"role": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &models.Role{ID: doc.ID.Hex(), Name: doc.Role}, nil
}
