package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names used across repositories.
const (
	CollectionUsers    = "users"
	CollectionBooks    = "books"
	CollectionOrders   = "orders"
	CollectionPayments = "payments"
)

// Config holds document store connection details.
type Config struct {
	URI         string
	Database    string
	MaxPoolSize uint64
}

// New connects a mongo client, verifies the connection with a ping, and
// returns the database handle plus a closer.
func New(ctx context.Context, logger *zap.Logger, cfg Config) (*mongo.Database, func(), error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	maskedURI := maskURI(cfg.URI) // Security: hide passwords
	logger.Debug("mongodb_connection_established", zap.String("uri", maskedURI))

	closer := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("mongodb disconnect failed", zap.Error(err))
			return
		}
		logger.Info("MongoDB connection closed")
	}
	return client.Database(cfg.Database), closer, nil
}

// EnsureIndexes creates the indexes the write paths rely on. The unique index
// on payments.transactionId turns a concurrent double-confirmation into a
// duplicate-key conflict instead of a silent double-insert.
func EnsureIndexes(ctx context.Context, logger *zap.Logger, db *mongo.Database) error {
	payments := db.Collection(CollectionPayments)
	_, err := payments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_transaction_id"),
	})
	if err != nil {
		return err
	}

	users := db.Collection(CollectionUsers)
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_email"),
	})
	if err != nil {
		return err
	}

	logger.Info("mongodb indexes ensured")
	return nil
}

// maskURI hides sensitive parts like passwords.
func maskURI(uri string) string {
	parts := strings.Split(uri, "@")
	if len(parts) > 1 {
		auth := strings.Split(parts[0], "://")
		if len(auth) > 1 {
			userPass := strings.Split(auth[1], ":")
			if len(userPass) > 1 {
				return auth[0] + "://*****:*****@" + parts[1]
			}
		}
	}
	return uri // Fallback
}
