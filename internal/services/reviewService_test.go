package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// startedCommand pops started command events until it finds the named
// command, failing the test when none was issued.
func startedCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	for evt := mt.GetStartedEvent(); evt != nil; evt = mt.GetStartedEvent() {
		if evt.CommandName == name {
			return evt.Command
		}
	}
	mt.Fatalf("no %s command was issued", name)
	return nil
}

// updateDocument extracts the single update document from an update command.
func updateDocument(mt *mtest.T, cmd bson.Raw) bson.M {
	mt.Helper()
	var parsed struct {
		Updates []struct {
			U bson.M `bson:"u"`
		} `bson:"updates"`
	}
	require.NoError(mt, bson.Unmarshal(cmd, &parsed))
	require.Len(mt, parsed.Updates, 1)
	return parsed.Updates[0].U
}

func newMockReviewService(mt *mtest.T) *ReviewService {
	return &ReviewService{
		reviews:   mt.DB.Collection("reviews"),
		bootcamps: mt.DB.Collection("bootcamps"),
	}
}

func reviewDoc(id, bootcampID, userID primitive.ObjectID, rating float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Learned a lot"},
		{Key: "text", Value: "Great instructors"},
		{Key: "rating", Value: rating},
		{Key: "bootcamp", Value: bootcampID},
		{Key: "user", Value: userID},
		{Key: "createdAt", Value: time.Now()},
	}
}

func TestReviewCreateSetsAverageToFirstRating(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first review", func(mt *mtest.T) {
		bootcampID := primitive.NewObjectID()
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
		svc := newMockReviewService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: bootcampID}}),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".reviews", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: bootcampID}, {Key: "average", Value: 8.0}}),
			mtest.CreateSuccessResponse(),
		)

		review, err := svc.Create(context.Background(), user, bootcampID.Hex(), models.Review{
			Title:  "Learned a lot",
			Text:   "Great instructors",
			Rating: 8,
		})
		require.NoError(mt, err)
		assert.Equal(mt, bootcampID, review.Bootcamp)
		assert.Equal(mt, user.ID, review.User)

		update := updateDocument(mt, startedCommand(mt, "update"))
		set, ok := update["$set"].(bson.M)
		require.True(mt, ok, "expected a $set update, got %v", update)
		assert.Equal(mt, 8.0, set["averageRating"])
	})
}

func TestReviewCreateAveragesSecondRating(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second review", func(mt *mtest.T) {
		bootcampID := primitive.NewObjectID()
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
		svc := newMockReviewService(mt)

		// The aggregation now spans both reviews: (8 + 7) / 2.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: bootcampID}}),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".reviews", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: bootcampID}, {Key: "average", Value: 7.5}}),
			mtest.CreateSuccessResponse(),
		)

		_, err := svc.Create(context.Background(), user, bootcampID.Hex(), models.Review{
			Title:  "Solid",
			Text:   "Good pace",
			Rating: 7,
		})
		require.NoError(mt, err)

		update := updateDocument(mt, startedCommand(mt, "update"))
		set, ok := update["$set"].(bson.M)
		require.True(mt, ok, "expected a $set update, got %v", update)
		assert.Equal(mt, 7.5, set["averageRating"])
	})
}

func TestReviewCreateDuplicatePerUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second review for the same bootcamp is rejected", func(mt *mtest.T) {
		bootcampID := primitive.NewObjectID()
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
		svc := newMockReviewService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: bootcampID}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "duplicate key error",
			}),
		)

		_, err := svc.Create(context.Background(), user, bootcampID.Hex(), models.Review{
			Title:  "Again",
			Text:   "Second attempt",
			Rating: 9,
		})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestReviewDeleteLastUnsetsAverage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleting the only review removes the average", func(mt *mtest.T) {
		reviewID := primitive.NewObjectID()
		bootcampID := primitive.NewObjectID()
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
		svc := newMockReviewService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".reviews", mtest.FirstBatch,
				reviewDoc(reviewID, bootcampID, user.ID, 8)),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".reviews", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, svc.Delete(context.Background(), user, reviewID.Hex()))

		update := updateDocument(mt, startedCommand(mt, "update"))
		unset, ok := update["$unset"].(bson.M)
		require.True(mt, ok, "expected a $unset update, got %v", update)
		assert.Contains(mt, unset, "averageRating")
	})
}

func TestReviewDeleteRequiresOwnership(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("non-owner cannot delete", func(mt *mtest.T) {
		reviewID := primitive.NewObjectID()
		bootcampID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		intruder := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
		svc := newMockReviewService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".reviews", mtest.FirstBatch,
				reviewDoc(reviewID, bootcampID, owner, 8)),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch),
		)

		err := svc.Delete(context.Background(), intruder, reviewID.Hex())
		require.Error(mt, err)

		var webErr *web.Error
		require.ErrorAs(mt, err, &webErr)
		assert.Equal(mt, http.StatusForbidden, webErr.Code)

		for evt := mt.GetStartedEvent(); evt != nil; evt = mt.GetStartedEvent() {
			assert.NotEqual(mt, "delete", evt.CommandName)
		}
	})
}
