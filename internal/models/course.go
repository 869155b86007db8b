package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title                string             `bson:"title" json:"title" validate:"required"`
	Description          string             `bson:"description" json:"description" validate:"required"`
	Weeks                int                `bson:"weeks" json:"weeks" validate:"required,min=1"`
	Tuition              float64            `bson:"tuition" json:"tuition" validate:"required,min=0"`
	MinimumSkill         string             `bson:"minimum_skill" json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool               `bson:"scholarship_available" json:"scholarshipAvailable"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`

	// Populated by the bootcamp lookup on single-course reads; never written.
	BootcampInfo *BootcampRef `bson:"bootcamp_info,omitempty" json:"bootcampInfo,omitempty"`
}

// BootcampRef is the sub-selection of bootcamp fields returned when a course
// or review populates its parent.
type BootcampRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}
