package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is an append-only document in the per-course conversation.
// Sender identity is denormalized at write time and immutable afterwards;
// the course id scopes the message and is not exposed in responses.
type ChatMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    uint               `bson:"course_id" json:"-"`
	Message     string             `bson:"message" json:"message"`
	SenderID    uint               `bson:"sender_id" json:"sender_id"`
	SenderEmail string             `bson:"sender_email" json:"sender_email"`
	SenderRole  string             `bson:"sender_role" json:"sender_role"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
