package appointmentRepo

import (
	"context"
	"fmt"

	"clinicvoice/config"
	"clinicvoice/database"
	"clinicvoice/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by the
// "appointments" collection of the configured database.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}

// Append inserts the appointment as its own document.
func (r *mongoAppointmentRepo) Append(ctx context.Context, appt models.Appointment) error {
	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("%w: insert appointment: %w", ErrStoreIO, err)
	}
	return nil
}

// List returns every appointment in insertion order.
func (r *mongoAppointmentRepo) List(ctx context.Context) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find appointments: %w", ErrStoreIO, err)
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("%w: decode appointments: %w", ErrStoreIO, err)
	}
	return appointments, nil
}
