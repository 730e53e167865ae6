package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UserCollection           = "USERS"
	DoctorProfileCollection  = "DOCTOR_PROFILES"
	PatientProfileCollection = "PATIENT_PROFILES"
	AppointmentCollection    = "APPOINTMENTS"
	MedicalRecordCollection  = "MEDICAL_RECORDS"
	PrescriptionCollection   = "PRESCRIPTIONS"
	TimeSlotCollection       = "TIMESLOTS"
)

var (
	client *mongo.Client
	DB     *mongo.Database
)

/*
* Connect to mongo with a small retry loop
* The loop only guards the initial connection, steady state relies on the driver
 */
func Connect(uri string, dbName string) error {
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		cancel()
		if err == nil {
			DB = client.Database(dbName)
			log.Info().Str("db", dbName).Msg("connected to mongo")
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("mongo connect failed, retrying")
		time.Sleep(3 * time.Second)
	}
	return err
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func OpenCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates the unique email index on users. Safe to run on every
// startup.
func EnsureIndexes(ctx context.Context) error {
	_, err := OpenCollection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func FindOne(ctx context.Context, coll *mongo.Collection, filter interface{}, result interface{}) error {
	return coll.FindOne(ctx, filter).Decode(result)
}

func FindAll(ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, results interface{}) error {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

func CreateOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
	return coll.InsertOne(ctx, doc)
}

func UpdateOne(ctx context.Context, coll *mongo.Collection, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return coll.UpdateOne(ctx, filter, update)
}

func UpsertOne(ctx context.Context, coll *mongo.Collection, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
}

func UpdateMany(ctx context.Context, coll *mongo.Collection, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return coll.UpdateMany(ctx, filter, update)
}

func DeleteOne(ctx context.Context, coll *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	return coll.DeleteOne(ctx, filter)
}

func DeleteMany(ctx context.Context, coll *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	return coll.DeleteMany(ctx, filter)
}

func CountDocuments(ctx context.Context, coll *mongo.Collection, filter interface{}) (int64, error) {
	return coll.CountDocuments(ctx, filter)
}
