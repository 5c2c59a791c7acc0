package repository

import (
	"context"
	"fmt"

	"github.com/HRCC-SRM/Recruitments-Website/internal/models"
	"github.com/HRCC-SRM/Recruitments-Website/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusShortlisted is the applicant status selected for mailing. The other
// values in use are active, rejected and holded.
const StatusShortlisted = "shortlisted"

// RecipientRepository reads mailing recipients from the users collection.
type RecipientRepository struct {
	collection *mongo.Collection
}

// NewRecipientRepository creates a repository over db.collection.
func NewRecipientRepository(db *mongo.Database, collection string) *RecipientRepository {
	return &RecipientRepository{
		collection: db.Collection(collection),
	}
}

// GetShortlisted returns every shortlisted user, in the order the server
// yields them, projected down to the fields the template needs.
func (r *RecipientRepository) GetShortlisted(ctx context.Context) ([]models.Recipient, error) {
	filter := bson.M{"status": StatusShortlisted}
	projection := bson.M{
		"name":     1,
		"email":    1,
		"srmEmail": 1,
		"regNo":    1,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		logger.Log.WithError(err).WithField("collection", r.collection.Name()).Error("Failed to query shortlisted users")
		return nil, fmt.Errorf("failed to fetch shortlisted users: %w", err)
	}
	defer cursor.Close(ctx)

	recipients := []models.Recipient{}
	if err := cursor.All(ctx, &recipients); err != nil {
		logger.Log.WithError(err).Error("Failed to decode shortlisted users")
		return nil, fmt.Errorf("failed to decode shortlisted users: %w", err)
	}

	logger.Log.WithField("count", len(recipients)).Info("Shortlisted users fetched")
	return recipients, nil
}
