package services

import (
	"context"
	"testing"
	"time"

	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockCourseService(mt *mtest.T) *CourseService {
	return &CourseService{
		courses:   mt.DB.Collection("courses"),
		bootcamps: mt.DB.Collection("bootcamps"),
	}
}

func courseDoc(id, bootcampID, userID primitive.ObjectID, tuition float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Full Stack Web Development"},
		{Key: "description", Value: "Twelve weeks of web development"},
		{Key: "weeks", Value: 12},
		{Key: "tuition", Value: tuition},
		{Key: "minimum_skill", Value: "intermediate"},
		{Key: "bootcamp", Value: bootcampID},
		{Key: "user", Value: userID},
		{Key: "createdAt", Value: time.Now()},
	}
}

func TestCourseDeleteRoundsAverageCostUp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("remaining courses set a rounded average", func(mt *mtest.T) {
		courseID := primitive.NewObjectID()
		bootcampID := primitive.NewObjectID()
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RolePublisher}
		svc := newMockCourseService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".courses", mtest.FirstBatch,
				courseDoc(courseID, bootcampID, user.ID, 12000)),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".courses", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: bootcampID}, {Key: "average", Value: 6666.67}}),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, svc.Delete(context.Background(), user, courseID.Hex()))

		update := updateDocument(mt, startedCommand(mt, "update"))
		set, ok := update["$set"].(bson.M)
		require.True(mt, ok, "expected a $set update, got %v", update)
		assert.Equal(mt, 6670.0, set["averageCost"])
	})
}

func TestCourseDeleteLastUnsetsAverageCost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no courses left removes the average", func(mt *mtest.T) {
		courseID := primitive.NewObjectID()
		bootcampID := primitive.NewObjectID()
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RolePublisher}
		svc := newMockCourseService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".courses", mtest.FirstBatch,
				courseDoc(courseID, bootcampID, user.ID, 12000)),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".bootcamps", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".courses", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, svc.Delete(context.Background(), user, courseID.Hex()))

		update := updateDocument(mt, startedCommand(mt, "update"))
		unset, ok := update["$unset"].(bson.M)
		require.True(mt, ok, "expected a $unset update, got %v", update)
		assert.Contains(mt, unset, "averageCost")
	})
}
