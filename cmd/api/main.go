package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/codehive-ide/codehive-backend/config"
	"github.com/codehive-ide/codehive-backend/internal/ai/gemini"
	aiservice "github.com/codehive-ide/codehive-backend/internal/ai/service"
	"github.com/codehive-ide/codehive-backend/internal/auth"
	"github.com/codehive-ide/codehive-backend/internal/blobstore"
	"github.com/codehive-ide/codehive-backend/internal/bootstrap"
	"github.com/codehive-ide/codehive-backend/internal/execution/jdoodle"
	"github.com/codehive-ide/codehive-backend/internal/projects/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	client, err := bootstrap.OpenMongo(ctx, bootstrap.MongoOptions{
		URI:       cfg.Mongo.URI,
		ConnectTO: cfg.Mongo.ConnectTO,
		PingTO:    cfg.Mongo.PingTO,
	})
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Mongo.Database)
	if err := repository.NewRepo(db).EnsureIndexes(ctx); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	blobs, err := blobstore.New(blobstore.Config{
		Endpoint:  cfg.Blob.Endpoint,
		Region:    cfg.Blob.Region,
		AccessKey: cfg.Blob.AccessKey,
		SecretKey: cfg.Blob.SecretKey,
		Bucket:    cfg.Blob.Bucket,
		UseSSL:    cfg.Blob.UseSSL,
	})
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	runner := jdoodle.NewClient(jdoodle.Config{
		BaseURL:      cfg.JDoodle.BaseURL,
		ClientID:     cfg.JDoodle.ClientID,
		ClientSecret: cfg.JDoodle.ClientSecret,
		Timeout:      cfg.JDoodle.Timeout,
	})

	var generator aiservice.TextGenerator
	if gen, err := gemini.NewClient(ctx, cfg.Gemini.Model); err != nil {
		log.Printf("gemini disabled: %v", err)
	} else {
		generator = gen
	}

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "codehive-backend",
		Version:     cfg.App.Version,
		Client:      client,
		DB:          db,
		Blobs:       blobs,
		Runner:      runner,
		Generator:   generator,
		AuthClient:  authClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
