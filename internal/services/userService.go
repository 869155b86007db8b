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

// UserService implements the admin-only user CRUD.
type UserService struct {
	users *mongo.Collection
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{users: database.Collection("users")}
}

func (s *UserService) List(ctx context.Context, values map[string]string) ([]models.User, *query.Result, error) {
	users := []models.User{}
	result, err := query.Find(ctx, s.users, values, nil, &users)
	if err != nil {
		return nil, nil, err
	}
	return users, result, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, web.NotFound("User not found with id %s", id)
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		return models.User{}, web.NotFound("User not found with id %s", id)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, user models.User) (models.User, error) {
	if !assignableRole(user.Role) {
		return models.User{}, web.BadRequest("Role must be either user or publisher")
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := models.Validate(&user); err != nil {
		return models.User{}, err
	}

	hashed, err := HashPassword(user.Password)
	if err != nil {
		return models.User{}, err
	}
	user.Password = hashed

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Update merges the changes into the stored document and revalidates the
// whole document before writing it back.
func (s *UserService) Update(ctx context.Context, id string, input models.User) (models.User, error) {
	if !assignableRole(input.Role) {
		return models.User{}, web.BadRequest("Role must be either user or publisher")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Email != "" {
		existing.Email = input.Email
	}
	if input.Role != "" {
		existing.Role = input.Role
	}
	if input.Password != "" {
		existing.Password = input.Password
	}
	if err := models.Validate(&existing); err != nil {
		return models.User{}, err
	}

	if input.Password != "" {
		hashed, err := HashPassword(input.Password)
		if err != nil {
			return models.User{}, err
		}
		existing.Password = hashed
	}

	if _, err := s.users.ReplaceOne(ctx, bson.M{"_id": existing.ID}, existing); err != nil {
		return models.User{}, err
	}
	return existing, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.users.DeleteOne(ctx, bson.M{"_id": existing.ID})
	return err
}
