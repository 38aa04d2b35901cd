// Package mongo stores envir variables in a MongoDB collection.
//
// Every variable is one document keyed by its name:
//
//	{ "_id": "DB_HOST", "value": "localhost" }
//
// Store implements both store.Source and store.Sink, so a collection can be
// decoded into a structure or receive the output of envir.Marshal.
//
// # Usage
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/envir"
//		"github.com/dmitrymomot/envir/pkg/mongo"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		cfg, err := envir.FromEnv[mongo.Config]()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		client, err := mongo.New(ctx, cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Disconnect(ctx)
//
//		vars := mongo.NewStore(client.Database(cfg.Database).Collection(cfg.Collection))
//
//		m, err := vars.Snapshot(ctx)
//		// ...
//	}
//
// # Configuration
//
// Config is read with envir from MONGODB_URL, MONGODB_DATABASE,
// MONGODB_COLLECTION and the pool and retry settings carrying the same prefix.
//
// # Error Handling
//
// Failures wrap ErrFailedToConnectToMongo, ErrSnapshotFailed or
// ErrApplyFailed and can be matched with errors.Is.
package mongo
