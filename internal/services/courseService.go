package services

import (
	"context"
	"math"
	"time"

	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/query"
	"github.com/arzan03/CampDirectory/internal/web"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourseService implements course CRUD and keeps the parent bootcamp's
// average tuition cost current.
type CourseService struct {
	courses   *mongo.Collection
	bootcamps *mongo.Collection
}

func NewCourseService(database *mongo.Database) *CourseService {
	return &CourseService{
		courses:   database.Collection("courses"),
		bootcamps: database.Collection("bootcamps"),
	}
}

// List returns either every course matching the translated query, or the
// courses of one bootcamp when bootcampID is set.
func (s *CourseService) List(ctx context.Context, bootcampID string, values map[string]string) ([]models.Course, *query.Result, error) {
	if bootcampID != "" {
		objID, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			return nil, nil, web.NotFound("Bootcamp not found with id %s", bootcampID)
		}

		courses := []models.Course{}
		cursor, err := s.courses.Find(ctx, bson.M{"bootcamp": objID})
		if err != nil {
			return nil, nil, err
		}
		if err := cursor.All(ctx, &courses); err != nil {
			return nil, nil, err
		}
		return courses, &query.Result{Count: int64(len(courses))}, nil
	}

	courses := []models.Course{}
	result, err := query.Find(ctx, s.courses, values, nil, &courses)
	if err != nil {
		return nil, nil, err
	}
	return courses, result, nil
}

// Get fetches a course with its bootcamp's name and description resolved.
func (s *CourseService) Get(ctx context.Context, id string) (models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Course{}, web.NotFound("Course not found with id %s", id)
	}

	var course models.Course
	if err := s.courses.FindOne(ctx, bson.M{"_id": objID}).Decode(&course); err != nil {
		return models.Course{}, web.NotFound("Course not found with id %s", id)
	}

	var ref models.BootcampRef
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": course.Bootcamp}).Decode(&ref); err == nil {
		course.BootcampInfo = &ref
	}
	return course, nil
}

// Create adds a course to a bootcamp. The caller must own the bootcamp or be
// an admin.
func (s *CourseService) Create(ctx context.Context, user *models.User, bootcampID string, course models.Course) (models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return models.Course{}, web.NotFound("Bootcamp not found with id %s", bootcampID)
	}

	var bootcamp models.Bootcamp
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": objID}).Decode(&bootcamp); err != nil {
		return models.Course{}, web.NotFound("Bootcamp not found with id %s", bootcampID)
	}
	if !user.Owns(bootcamp.User) {
		return models.Course{}, web.Forbidden("User with id %s is not authorized to add a course to bootcamp %s", user.ID.Hex(), bootcampID)
	}

	course.ID = primitive.NewObjectID()
	course.Bootcamp = objID
	course.User = user.ID
	course.CreatedAt = time.Now()
	course.BootcampInfo = nil

	if err := models.Validate(&course); err != nil {
		return models.Course{}, err
	}
	if _, err := s.courses.InsertOne(ctx, course); err != nil {
		return models.Course{}, err
	}

	if err := s.recalcAverageCost(ctx, objID); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Update replaces a course's mutable fields after revalidation.
func (s *CourseService) Update(ctx context.Context, user *models.User, id string, input models.Course) (models.Course, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	if !user.Owns(existing.User) {
		return models.Course{}, web.Forbidden("User with id %s is not authorized to update this course", user.ID.Hex())
	}

	input.ID = existing.ID
	input.Bootcamp = existing.Bootcamp
	input.User = existing.User
	input.CreatedAt = existing.CreatedAt
	input.BootcampInfo = nil

	if err := models.Validate(&input); err != nil {
		return models.Course{}, err
	}
	if _, err := s.courses.ReplaceOne(ctx, bson.M{"_id": existing.ID}, input); err != nil {
		return models.Course{}, err
	}

	if err := s.recalcAverageCost(ctx, existing.Bootcamp); err != nil {
		return models.Course{}, err
	}
	return input, nil
}

// Delete removes a course and recomputes the bootcamp's average cost.
func (s *CourseService) Delete(ctx context.Context, user *models.User, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !user.Owns(existing.User) {
		return web.Forbidden("User with id %s is not authorized to delete this course", user.ID.Hex())
	}

	if _, err := s.courses.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
		return err
	}
	return s.recalcAverageCost(ctx, existing.Bootcamp)
}

// recalcAverageCost aggregates the bootcamp's course tuitions and writes the
// rounded mean back to the bootcamp. With no courses left the field is unset
// rather than left stale.
func (s *CourseService) recalcAverageCost(ctx context.Context, bootcampID primitive.ObjectID) error {
	avg, ok, err := aggregateAverage(ctx, s.courses, bootcampID, "$tuition")
	if err != nil {
		return err
	}

	var update bson.M
	if ok {
		update = bson.M{"$set": bson.M{"averageCost": RoundCost(avg)}}
	} else {
		update = bson.M{"$unset": bson.M{"averageCost": ""}}
	}
	_, err = s.bootcamps.UpdateByID(ctx, bootcampID, update)
	return err
}

// RoundCost rounds an average tuition up to the nearest ten.
func RoundCost(avg float64) float64 {
	return math.Ceil(avg/10) * 10
}

// aggregateAverage computes the mean of a field over every document of a
// bootcamp. ok is false when the bootcamp has no documents in the collection.
func aggregateAverage(ctx context.Context, coll *mongo.Collection, bootcampID primitive.ObjectID, field string) (float64, bool, error) {
	cursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$bootcamp",
			"average": bson.M{"$avg": field},
		}}},
	})
	if err != nil {
		return 0, false, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, false, err
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	return results[0].Average, true, nil
}
