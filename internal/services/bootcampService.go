package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/arzan03/CampDirectory/internal/config"
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/query"
	"github.com/arzan03/CampDirectory/internal/storage"
	"github.com/arzan03/CampDirectory/internal/web"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BootcampService implements bootcamp CRUD, ownership checks and the cover
// photo upload.
type BootcampService struct {
	bootcamps *mongo.Collection
	courses   *mongo.Collection
	reviews   *mongo.Collection
	photos    storage.PhotoStore
	maxUpload int64
}

func NewBootcampService(database *mongo.Database, photos storage.PhotoStore, cfg *config.Config) *BootcampService {
	return &BootcampService{
		bootcamps: database.Collection("bootcamps"),
		courses:   database.Collection("courses"),
		reviews:   database.Collection("reviews"),
		photos:    photos,
		maxUpload: cfg.MaxFileUpload,
	}
}

// List runs a translated list query with the courses of each bootcamp
// resolved inline.
func (s *BootcampService) List(ctx context.Context, values map[string]string) ([]models.Bootcamp, *query.Result, error) {
	populate := &query.Populate{
		From:         "courses",
		LocalField:   "_id",
		ForeignField: "bootcamp",
		As:           "courses",
	}

	bootcamps := []models.Bootcamp{}
	result, err := query.Find(ctx, s.bootcamps, values, populate, &bootcamps)
	if err != nil {
		return nil, nil, err
	}
	return bootcamps, result, nil
}

// Get fetches a single bootcamp by id.
func (s *BootcampService) Get(ctx context.Context, id string) (models.Bootcamp, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Bootcamp{}, web.NotFound("Bootcamp not found with id %s", id)
	}

	var bootcamp models.Bootcamp
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": objID}).Decode(&bootcamp); err != nil {
		return models.Bootcamp{}, web.NotFound("Bootcamp not found with id %s", id)
	}
	return bootcamp, nil
}

// Create inserts a bootcamp owned by the caller. A non-admin publisher may
// own at most one bootcamp.
func (s *BootcampService) Create(ctx context.Context, user *models.User, bootcamp models.Bootcamp) (models.Bootcamp, error) {
	if !user.IsAdmin() {
		count, err := s.bootcamps.CountDocuments(ctx, bson.M{"user": user.ID})
		if err != nil {
			return models.Bootcamp{}, err
		}
		if count > 0 {
			return models.Bootcamp{}, web.BadRequest("User with id %s has already published a bootcamp", user.ID.Hex())
		}
	}

	bootcamp.ID = primitive.NewObjectID()
	bootcamp.User = user.ID
	bootcamp.CreatedAt = time.Now()
	bootcamp.Photo = ""
	bootcamp.AverageRating = nil
	bootcamp.AverageCost = nil
	bootcamp.Courses = nil
	bootcamp.Slugify()

	if err := models.Validate(&bootcamp); err != nil {
		return models.Bootcamp{}, err
	}
	if _, err := s.bootcamps.InsertOne(ctx, bootcamp); err != nil {
		return models.Bootcamp{}, err
	}
	return bootcamp, nil
}

// Update replaces the mutable fields of a bootcamp after revalidation. Only
// the owner or an admin may update.
func (s *BootcampService) Update(ctx context.Context, user *models.User, id string, input models.Bootcamp) (models.Bootcamp, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Bootcamp{}, err
	}
	if !user.Owns(existing.User) {
		return models.Bootcamp{}, web.Forbidden("User with id %s is not authorized to update this bootcamp", user.ID.Hex())
	}

	input.ID = existing.ID
	input.User = existing.User
	input.CreatedAt = existing.CreatedAt
	input.Photo = existing.Photo
	input.AverageRating = existing.AverageRating
	input.AverageCost = existing.AverageCost
	input.Courses = nil
	input.Slugify()

	if err := models.Validate(&input); err != nil {
		return models.Bootcamp{}, err
	}
	if _, err := s.bootcamps.ReplaceOne(ctx, bson.M{"_id": existing.ID}, input); err != nil {
		return models.Bootcamp{}, err
	}
	return input, nil
}

// Delete removes a bootcamp along with its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, user *models.User, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !user.Owns(existing.User) {
		return web.Forbidden("User with id %s is not authorized to delete this bootcamp", user.ID.Hex())
	}

	if _, err := s.courses.DeleteMany(ctx, bson.M{"bootcamp": existing.ID}); err != nil {
		return err
	}
	if _, err := s.reviews.DeleteMany(ctx, bson.M{"bootcamp": existing.ID}); err != nil {
		return err
	}
	_, err = s.bootcamps.DeleteOne(ctx, bson.M{"_id": existing.ID})
	return err
}

// UploadPhoto validates and stores a cover photo, then records its name on
// the bootcamp. A second upload for the same bootcamp overwrites the first.
func (s *BootcampService) UploadPhoto(ctx context.Context, user *models.User, id string, file *multipart.FileHeader) (string, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !user.Owns(existing.User) {
		return "", web.Forbidden("User with id %s is not authorized to update this bootcamp", user.ID.Hex())
	}

	contentType := file.Header.Get("Content-Type")
	if !IsImage(contentType) {
		return "", web.BadRequest("Please upload an image file")
	}
	if file.Size > s.maxUpload {
		return "", web.BadRequest("Please upload an image less than %d bytes", s.maxUpload)
	}

	src, err := file.Open()
	if err != nil {
		return "", web.BadRequest("Problem with uploading your file")
	}
	defer src.Close()

	name := PhotoFilename(existing.ID, file.Filename)
	location, err := s.photos.Save(ctx, name, src, file.Size, contentType)
	if err != nil {
		return "", web.ServerError("Problem with uploading your file")
	}

	_, err = s.bootcamps.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{"photo": location}})
	if err != nil {
		return "", err
	}
	return location, nil
}

// IsImage reports whether a MIME type is acceptable for a cover photo.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// PhotoFilename derives the stored name for a bootcamp's cover photo. The
// name embeds the bootcamp id so re-uploads replace the previous photo.
func PhotoFilename(bootcampID primitive.ObjectID, original string) string {
	return "photo_" + bootcampID.Hex() + filepath.Ext(original)
}
