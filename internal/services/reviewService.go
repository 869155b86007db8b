package services

import (
	"context"
	"time"

	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/query"
	"github.com/arzan03/CampDirectory/internal/web"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewService implements review CRUD. Every successful write recomputes the
// parent bootcamp's average rating; the recompute is an explicit call on the
// write path, not a store trigger.
type ReviewService struct {
	reviews   *mongo.Collection
	bootcamps *mongo.Collection
}

func NewReviewService(database *mongo.Database) *ReviewService {
	return &ReviewService{
		reviews:   database.Collection("reviews"),
		bootcamps: database.Collection("bootcamps"),
	}
}

// List returns either every review matching the translated query, or the
// reviews of one bootcamp when bootcampID is set.
func (s *ReviewService) List(ctx context.Context, bootcampID string, values map[string]string) ([]models.Review, *query.Result, error) {
	if bootcampID != "" {
		objID, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			return nil, nil, web.NotFound("Bootcamp not found with id %s", bootcampID)
		}

		reviews := []models.Review{}
		cursor, err := s.reviews.Find(ctx, bson.M{"bootcamp": objID})
		if err != nil {
			return nil, nil, err
		}
		if err := cursor.All(ctx, &reviews); err != nil {
			return nil, nil, err
		}
		return reviews, &query.Result{Count: int64(len(reviews))}, nil
	}

	reviews := []models.Review{}
	result, err := query.Find(ctx, s.reviews, values, nil, &reviews)
	if err != nil {
		return nil, nil, err
	}
	return reviews, result, nil
}

// Get fetches a review with its bootcamp's name and description resolved.
func (s *ReviewService) Get(ctx context.Context, id string) (models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Review{}, web.NotFound("Review not found with id %s", id)
	}

	var review models.Review
	if err := s.reviews.FindOne(ctx, bson.M{"_id": objID}).Decode(&review); err != nil {
		return models.Review{}, web.NotFound("Review not found with id %s", id)
	}

	var ref models.BootcampRef
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": review.Bootcamp}).Decode(&ref); err == nil {
		review.BootcampInfo = &ref
	}
	return review, nil
}

// Create adds a review to a bootcamp. The unique (bootcamp, user) index
// rejects a second review from the same user as a duplicate key error.
func (s *ReviewService) Create(ctx context.Context, user *models.User, bootcampID string, review models.Review) (models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return models.Review{}, web.NotFound("Bootcamp not found with id %s", bootcampID)
	}

	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": objID}).Err(); err != nil {
		return models.Review{}, web.NotFound("Bootcamp not found with id %s", bootcampID)
	}

	review.ID = primitive.NewObjectID()
	review.Bootcamp = objID
	review.User = user.ID
	review.CreatedAt = time.Now()
	review.BootcampInfo = nil

	if err := models.Validate(&review); err != nil {
		return models.Review{}, err
	}
	if _, err := s.reviews.InsertOne(ctx, review); err != nil {
		return models.Review{}, err
	}

	if err := s.recalcAverageRating(ctx, objID); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Update replaces a review's mutable fields after revalidation and
// recomputes the bootcamp's average rating.
func (s *ReviewService) Update(ctx context.Context, user *models.User, id string, input models.Review) (models.Review, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if !user.Owns(existing.User) {
		return models.Review{}, web.Forbidden("User with id %s is not authorized to update this review", user.ID.Hex())
	}

	input.ID = existing.ID
	input.Bootcamp = existing.Bootcamp
	input.User = existing.User
	input.CreatedAt = existing.CreatedAt
	input.BootcampInfo = nil

	if err := models.Validate(&input); err != nil {
		return models.Review{}, err
	}
	if _, err := s.reviews.ReplaceOne(ctx, bson.M{"_id": existing.ID}, input); err != nil {
		return models.Review{}, err
	}

	if err := s.recalcAverageRating(ctx, existing.Bootcamp); err != nil {
		return models.Review{}, err
	}
	return input, nil
}

// Delete removes a review. The recompute runs on this single deletion path
// so the bootcamp's average never goes stale.
func (s *ReviewService) Delete(ctx context.Context, user *models.User, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !user.Owns(existing.User) {
		return web.Forbidden("User with id %s is not authorized to delete this review", user.ID.Hex())
	}

	if _, err := s.reviews.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
		return err
	}
	return s.recalcAverageRating(ctx, existing.Bootcamp)
}

// recalcAverageRating aggregates the bootcamp's review ratings and writes
// the mean back to the bootcamp. With no reviews left the field is unset so
// it serializes as absent instead of a fake zero rating.
func (s *ReviewService) recalcAverageRating(ctx context.Context, bootcampID primitive.ObjectID) error {
	avg, ok, err := aggregateAverage(ctx, s.reviews, bootcampID, "$rating")
	if err != nil {
		return err
	}

	var update bson.M
	if ok {
		update = bson.M{"$set": bson.M{"averageRating": avg}}
	} else {
		update = bson.M{"$unset": bson.M{"averageRating": ""}}
	}
	_, err = s.bootcamps.UpdateByID(ctx, bootcampID, update)
	return err
}
