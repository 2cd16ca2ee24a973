// internal/report/mongodb.go
package report

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoWriter stores each run as one document so a run's records stay
// together and queries over history stay simple.
type mongoWriter struct {
	client     *mongo.Client
	database   string
	collection string
}

func newMongoWriter(uri, database, collection string) (*mongoWriter, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if database == "" {
		return nil, fmt.Errorf("mongodb database name is required")
	}
	if collection == "" {
		collection = "runs"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &mongoWriter{client: client, database: database, collection: collection}, nil
}

func (w *mongoWriter) Write(ctx context.Context, summary *Summary) error {
	records := make([]bson.M, 0, len(summary.Records))
	for _, r := range summary.Records {
		records = append(records, bson.M{
			"scenario":    r.Scenario,
			"page":        r.Page,
			"status":      string(r.Status),
			"is_404":      r.Is404,
			"http_status": r.HTTPStatus,
			"duration_ms": r.Duration.Milliseconds(),
			"error":       r.Error,
			"screenshot":  r.Screenshot,
			"started_at":  r.StartedAt.UTC(),
		})
	}

	doc := bson.M{
		"suite":       summary.Suite,
		"base_url":    summary.BaseURL,
		"started_at":  summary.StartedAt.UTC(),
		"finished_at": summary.FinishedAt.UTC(),
		"passed":      summary.Passed,
		"failed":      summary.Failed,
		"skipped":     summary.Skipped,
		"records":     records,
	}

	coll := w.client.Database(w.database).Collection(w.collection)
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert run document: %w", err)
	}
	return nil
}

func (w *mongoWriter) Close() error {
	if w.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := w.client.Disconnect(ctx)
	w.client = nil
	return err
}
