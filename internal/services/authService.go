package services

import (
	"context"
	"time"

	"github.com/arzan03/CampDirectory/internal/config"
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService registers users, verifies credentials and signs tokens.
type AuthService struct {
	users *mongo.Collection
	cfg   *config.Config
}

func NewAuthService(database *mongo.Database, cfg *config.Config) *AuthService {
	return &AuthService{users: database.Collection("users"), cfg: cfg}
}

// SignToken generates a JWT bound to the user id.
func (s *AuthService) SignToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"exp":     time.Now().Add(s.cfg.JWTExpire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// assignableRole reports whether a role may be set through the API. Admin
// accounts are created through the seeder or directly in the database.
func assignableRole(role string) bool {
	return role == "" || role == models.RoleUser || role == models.RolePublisher
}

// Register creates a user account. The role may be user or publisher; admin
// accounts cannot be self-registered.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	if !assignableRole(role) {
		return models.User{}, web.BadRequest("Role must be either user or publisher")
	}
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  password,
		CreatedAt: time.Now(),
	}
	if err := models.Validate(&user); err != nil {
		return models.User{}, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user.Password = hashed

	// The unique email index turns a duplicate registration into a 400.
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, web.BadRequest("Please provide an email and password")
	}

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, web.Unauthorized("Invalid credentials")
	}

	if !VerifyPassword(password, user.Password) {
		return models.User{}, web.Unauthorized("Invalid credentials")
	}
	return user, nil
}

// UpdateDetails changes the caller's name and email. The stored document is
// merged with the changes and revalidated as a whole before being written
// back.
func (s *AuthService) UpdateDetails(ctx context.Context, userID primitive.ObjectID, name, email string) (models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return models.User{}, web.NotFound("User not found with id %s", userID.Hex())
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if err := models.Validate(&user); err != nil {
		return models.User{}, err
	}

	if _, err := s.users.ReplaceOne(ctx, bson.M{"_id": userID}, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdatePassword verifies the caller's current password and replaces it.
func (s *AuthService) UpdatePassword(ctx context.Context, user *models.User, current, newPassword string) error {
	var stored models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&stored); err != nil {
		return web.NotFound("User not found with id %s", user.ID.Hex())
	}

	if !VerifyPassword(current, stored.Password) {
		return web.Unauthorized("Password is incorrect")
	}
	if len(newPassword) < 6 {
		return web.BadRequest("Password must be at least 6 characters")
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{"password": hashed}})
	return err
}
