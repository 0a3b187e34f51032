package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/models"
)

// MongoStore keeps one document per insight with _id set to the insight id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *zap.Logger
}

type mongoInsight struct {
	models.Insight `bson:",inline"`
	Seq            int64 `bson:"seq"`
}

func OpenMongoStore(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if _, err := coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "seq", Value: -1}},
	}); err != nil {
		logger.Warn("mongo seq index not created", zap.Error(err))
	}
	return &MongoStore{client: client, coll: coll, logger: logger}, nil
}

func (s *MongoStore) Load(ctx context.Context) ([]models.Insight, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.Insight, 0)
	for cursor.Next(ctx) {
		var doc mongoInsight
		if err := cursor.Decode(&doc); err != nil {
			s.logger.Warn("skipping undecodable history record", zap.Error(err))
			continue
		}
		items = append(items, doc.Insight)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return items, nil
}

func (s *MongoStore) Insert(ctx context.Context, item models.Insight) error {
	doc := mongoInsight{Insight: item, Seq: time.Now().UnixNano()}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo insert %s: %w", item.ID, err)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Insight, error) {
	var doc mongoInsight
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", id, err)
	}
	return &doc.Insight, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
