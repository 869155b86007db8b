package services

import (
	"testing"

	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/jpeg"))
	assert.True(t, IsImage("image/png"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage("text/html"))
	assert.False(t, IsImage(""))
}

func TestPhotoFilename(t *testing.T) {
	id := primitive.NewObjectID()
	name := PhotoFilename(id, "cover.jpg")
	assert.Equal(t, "photo_"+id.Hex()+".jpg", name)

	// Extension follows the uploaded file, not a fixed format.
	assert.Equal(t, "photo_"+id.Hex()+".png", PhotoFilename(id, "something.png"))
	assert.Equal(t, "photo_"+id.Hex(), PhotoFilename(id, "noextension"))
}

func TestRoundCost(t *testing.T) {
	assert.Equal(t, float64(6670), RoundCost(6666.67))
	assert.Equal(t, float64(10000), RoundCost(10000))
	assert.Equal(t, float64(10), RoundCost(1))
}

func TestOwnership(t *testing.T) {
	ownerID := primitive.NewObjectID()

	owner := &models.User{ID: ownerID, Role: models.RolePublisher}
	assert.True(t, owner.Owns(ownerID))

	other := &models.User{ID: primitive.NewObjectID(), Role: models.RolePublisher}
	assert.False(t, other.Owns(ownerID))

	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	assert.True(t, admin.Owns(ownerID))
}

func TestReviewValidation(t *testing.T) {
	review := models.Review{
		Title:  "Great learning experience",
		Text:   "Would recommend.",
		Rating: 8,
	}
	assert.NoError(t, models.Validate(&review))

	review.Rating = 11
	assert.Error(t, models.Validate(&review))

	review.Rating = 0
	assert.Error(t, models.Validate(&review))

	review.Rating = 8
	review.Title = ""
	assert.Error(t, models.Validate(&review))
}

func TestBootcampValidation(t *testing.T) {
	bootcamp := models.Bootcamp{
		Name:        "Devworks Bootcamp",
		Description: "Full stack web development",
		Careers:     []string{"Web Development", "UI/UX"},
	}
	assert.NoError(t, models.Validate(&bootcamp))

	bootcamp.Careers = []string{"Underwater Basket Weaving"}
	assert.Error(t, models.Validate(&bootcamp))

	bootcamp.Careers = []string{"Business"}
	bootcamp.Website = "not-a-url"
	assert.Error(t, models.Validate(&bootcamp))
}

func TestCourseValidation(t *testing.T) {
	course := models.Course{
		Title:        "Front End Web Development",
		Description:  "HTML, CSS, JavaScript",
		Weeks:        8,
		Tuition:      8000,
		MinimumSkill: "beginner",
	}
	assert.NoError(t, models.Validate(&course))

	course.MinimumSkill = "wizard"
	assert.Error(t, models.Validate(&course))
}

func TestBootcampSlugify(t *testing.T) {
	b := models.Bootcamp{Name: "Devworks Bootcamp"}
	b.Slugify()
	assert.Equal(t, "devworks-bootcamp", b.Slug)
}
