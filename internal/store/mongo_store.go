package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"healthbuddy/internal/models"
)

// MongoStore is the document backend, talking to MongoDB directly. The
// collection names and document shapes match the original deployment so the
// two can share a database.
type MongoStore struct {
	uri      string
	database string
	client   *mongo.Client
	db       *mongo.Database
}

const (
	usersCollection    = "users"
	sessionsCollection = "sessions"
	readingsCollection = "blood_pressure"
)

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	Height     *float64           `bson:"height"`
	Weight     *float64           `bson:"weight"`
	Age        *int               `bson:"age"`
	BloodGroup *string            `bson:"bloodGroup"`
	Allergies  *string            `bson:"allergies"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

type sessionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type readingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Systolic  int                `bson:"systolic"`
	Diastolic int                `bson:"diastolic"`
	HeartRate int                `bson:"heartRate"`
	Timestamp time.Time          `bson:"timestamp"`
}

func NewMongoStore(uri, database string) *MongoStore {
	return &MongoStore{uri: uri, database: database}
}

func (s *MongoStore) Init(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.client = client
	s.db = client.Database(s.database)

	// Unique index backs the duplicate-email contract at the store level
	// instead of relying on a racy find-then-insert.
	_, err = s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := userDocument{
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := s.db.Collection(usersCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)
	return userFromDocument(&doc), nil
}

func (s *MongoStore) FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var doc userDocument
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(doc.Password, password) {
		return nil, nil
	}
	return userFromDocument(&doc), nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var doc userDocument
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userFromDocument(&doc), nil
}

func (s *MongoStore) UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	after := options.After
	var doc userDocument
	err = s.db.Collection(usersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"height":     update.Height,
			"weight":     update.Weight,
			"age":        update.Age,
			"bloodGroup": update.BloodGroup,
			"allergies":  update.Allergies,
			"updatedAt":  time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userFromDocument(&doc), nil
}

func (s *MongoStore) CreateSession(ctx context.Context, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	sessions := s.db.Collection(sessionsCollection)

	// Deactivate every session, any user, before the new one appears.
	_, err = sessions.UpdateMany(ctx,
		bson.M{"isActive": true},
		bson.M{"$set": bson.M{"isActive": false}},
	)
	if err != nil {
		return err
	}

	_, err = sessions.InsertOne(ctx, sessionDocument{
		UserID:    objectID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

func (s *MongoStore) GetActiveSession(ctx context.Context) (*models.User, error) {
	var session sessionDocument
	err := s.db.Collection(sessionsCollection).FindOne(ctx, bson.M{"isActive": true}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": session.UserID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userFromDocument(&doc), nil
}

func (s *MongoStore) ClearSession(ctx context.Context) error {
	_, err := s.db.Collection(sessionsCollection).UpdateMany(ctx,
		bson.M{"isActive": true},
		bson.M{"$set": bson.M{"isActive": false}},
	)
	return err
}

func (s *MongoStore) AddReading(ctx context.Context, userID string, systolic, diastolic, heartRate int) (*models.BloodPressureReading, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	doc := readingDocument{
		UserID:    objectID,
		Systolic:  systolic,
		Diastolic: diastolic,
		HeartRate: heartRate,
		Timestamp: time.Now().UTC(),
	}
	result, err := s.db.Collection(readingsCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)
	return readingFromDocument(&doc), nil
}

func (s *MongoStore) GetReadings(ctx context.Context, userID string) ([]models.BloodPressureReading, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []models.BloodPressureReading{}, nil
	}

	cursor, err := s.db.Collection(readingsCollection).Find(ctx,
		bson.M{"userId": objectID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	)
	if err != nil {
		return []models.BloodPressureReading{}, nil
	}
	defer cursor.Close(ctx)

	readings := []models.BloodPressureReading{}
	for cursor.Next(ctx) {
		var doc readingDocument
		if err := cursor.Decode(&doc); err != nil {
			return []models.BloodPressureReading{}, nil
		}
		readings = append(readings, *readingFromDocument(&doc))
	}
	return readings, nil
}

func (s *MongoStore) DeleteReading(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	result, err := s.db.Collection(readingsCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func userFromDocument(doc *userDocument) *models.User {
	return &models.User{
		ID:         doc.ID.Hex(),
		Name:       doc.Name,
		Email:      doc.Email,
		Password:   doc.Password,
		Height:     doc.Height,
		Weight:     doc.Weight,
		Age:        doc.Age,
		BloodGroup: doc.BloodGroup,
		Allergies:  doc.Allergies,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func readingFromDocument(doc *readingDocument) *models.BloodPressureReading {
	return &models.BloodPressureReading{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID.Hex(),
		Systolic:  doc.Systolic,
		Diastolic: doc.Diastolic,
		HeartRate: doc.HeartRate,
		Timestamp: doc.Timestamp,
	}
}
