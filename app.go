package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rohitdare/carbon/carbon"
)

type App struct {
	cfg       Config
	mongo     *mongo.Client
	db        *mongo.Database
	users     *mongo.Collection
	estimates *mongo.Collection

	estimator *carbon.EstimationService
	imagery   *ImageryClient
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	app := &App{
		cfg:       cfg,
		mongo:     client,
		db:        db,
		users:     db.Collection("users"),
		estimates: db.Collection("estimates"),
		estimator: carbon.NewEstimationService(cfg.ModelDir),
		imagery:   NewImageryClient(cfg.ImageryURI),
	}
	// Indexes
	if _, err := app.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}
	if _, err := app.estimates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
