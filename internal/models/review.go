package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review of a bootcamp. A (bootcamp, user) pair is unique: a user may review
// a given bootcamp at most once, enforced by a compound index.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title" validate:"required,max=100"`
	Text      string             `bson:"text" json:"text" validate:"required"`
	Rating    float64            `bson:"rating" json:"rating" validate:"required,min=1,max=10"`
	Bootcamp  primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	BootcampInfo *BootcampRef `bson:"bootcamp_info,omitempty" json:"bootcampInfo,omitempty"`
}
