package repository

import (
	"context"
	"time"

	"mealbridge-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDonations is the MongoDB-backed listing store.
type MongoDonations struct {
	donations    *mongo.Collection
	reservations *mongo.Collection
}

func NewMongoDonations(donations, reservations *mongo.Collection) *MongoDonations {
	return &MongoDonations{donations: donations, reservations: reservations}
}

func (r *MongoDonations) List(ctx context.Context) ([]models.Donation, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoDonations) ListSince(ctx context.Context, since time.Time) ([]models.Donation, error) {
	return r.find(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

func (r *MongoDonations) ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Donation, error) {
	return r.find(ctx, bson.M{"createdBy": creator})
}

func (r *MongoDonations) find(ctx context.Context, filter bson.M) ([]models.Donation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.donations.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var donations []models.Donation
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *MongoDonations) GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var donation models.Donation
	err := r.donations.FindOne(ctx, bson.M{"_id": id}).Decode(&donation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Donation{}, ErrNotFound
		}
		return models.Donation{}, err
	}
	return donation, nil
}

func (r *MongoDonations) Create(ctx context.Context, d *models.Donation) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	_, err := r.donations.InsertOne(ctx, d)
	return err
}

func (r *MongoDonations) Reserve(ctx context.Context, id primitive.ObjectID, req models.ReservationRequest) (models.Donation, error) {
	now := time.Now()

	// Transition is conditional on status so two racing claims cannot both
	// win; the loser sees no matching document.
	filter := bson.M{"_id": id, "status": models.Available}
	update := bson.M{"$set": bson.M{
		"status":     models.Reserved,
		"reservedBy": req.ContactName,
		"updatedAt":  now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var donation models.Donation
	err := r.donations.FindOneAndUpdate(ctx, filter, update, opts).Decode(&donation)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return models.Donation{}, err
		}
		// Distinguish a missing record from one already claimed.
		count, countErr := r.donations.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return models.Donation{}, countErr
		}
		if count == 0 {
			return models.Donation{}, ErrNotFound
		}
		return models.Donation{}, ErrAlreadyReserved
	}

	reservation := models.Reservation{
		ID:            primitive.NewObjectID(),
		Donation:      id,
		Message:       req.Message,
		PickupType:    req.PickupType,
		PreferredTime: req.PreferredTime,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		CreatedAt:     now,
	}
	if _, err := r.reservations.InsertOne(ctx, reservation); err != nil {
		return models.Donation{}, err
	}

	return donation, nil
}

func (r *MongoDonations) MarkCollected(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	filter := bson.M{"_id": id, "status": models.Reserved}
	update := bson.M{"$set": bson.M{
		"status":    models.Collected,
		"updatedAt": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var donation models.Donation
	err := r.donations.FindOneAndUpdate(ctx, filter, update, opts).Decode(&donation)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return models.Donation{}, err
		}
		count, countErr := r.donations.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return models.Donation{}, countErr
		}
		if count == 0 {
			return models.Donation{}, ErrNotFound
		}
		return models.Donation{}, ErrNotReserved
	}
	return donation, nil
}

func (r *MongoDonations) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.reservations.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// MongoNotifications is the MongoDB-backed notification store.
type MongoNotifications struct {
	collection *mongo.Collection
}

func NewMongoNotifications(collection *mongo.Collection) *MongoNotifications {
	return &MongoNotifications{collection: collection}
}

func (r *MongoNotifications) Push(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, n)
	return err
}

func (r *MongoNotifications) List(ctx context.Context, recipient primitive.ObjectID, filter string) ([]models.Notification, error) {
	query := bson.M{}
	if !recipient.IsZero() {
		query["recipient"] = recipient
	}
	switch filter {
	case FilterUnread:
		query["isRead"] = false
	case FilterActionRequired:
		query["actionRequired"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotifications) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoNotifications) MarkAllRead(ctx context.Context, recipient primitive.ObjectID) error {
	query := bson.M{}
	if !recipient.IsZero() {
		query["recipient"] = recipient
	}
	_, err := r.collection.UpdateMany(ctx, query, bson.M{"$set": bson.M{"isRead": true}})
	return err
}

func (r *MongoNotifications) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
