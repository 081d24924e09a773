package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"langbridge/backend/models"
)

// MongoConversations keeps every course conversation in one collection,
// scoped by course_id. Reads come back newest first; that is the collection's
// contract, not the display order.
type MongoConversations struct {
	Collection *mongo.Collection
}

func NewMongoConversations(db *mongo.Database) *MongoConversations {
	return &MongoConversations{Collection: db.Collection("course_chat")}
}

func (s *MongoConversations) Messages(ctx context.Context, courseID uint, limit int) ([]models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.Collection.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MongoConversations) Append(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.Timestamp = time.Now().UTC()
	_, err := s.Collection.InsertOne(ctx, message)
	return err
}

func (s *MongoConversations) Message(ctx context.Context, courseID uint, messageID string) (*models.ChatMessage, error) {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, ErrNotFound
	}

	var message models.ChatMessage
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid, "course_id": courseID}).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (s *MongoConversations) Delete(ctx context.Context, courseID uint, messageID string) error {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return ErrNotFound
	}

	result, err := s.Collection.DeleteOne(ctx, bson.M{"_id": oid, "course_id": courseID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
