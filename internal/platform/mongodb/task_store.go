package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskDocument is the persisted shape of a task.
type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// newestFirst orders by creation time; _id breaks ties between tasks
// created in the same millisecond.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// toggleCompleted flips the flag server-side in a single update.
var toggleCompleted = mongo.Pipeline{
	{{Key: "$set", Value: bson.D{{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}}}}},
}

// MongoTaskStore implements the store.TaskStore interface using a MongoDB collection.
type MongoTaskStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
	now        func() time.Time
}

// NewMongoTaskStore creates a new MongoTaskStore on the given collection.
// If logger is nil, a default logger will be used.
func NewMongoTaskStore(collection *mongo.Collection, logger *slog.Logger) *MongoTaskStore {
	if collection == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("collection cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MongoTaskStore{
		collection: collection,
		logger:     logger.With(slog.String("component", "task_store")),
		now:        time.Now,
	}
}

// Ensure MongoTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MongoTaskStore)(nil)

// List returns every task, newest first.
func (s *MongoTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error("failed to decode tasks", "error", err)
		return nil, store.NewStoreError("task", "list", "decode failed", MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toDomain())
	}
	return tasks, nil
}

// Create inserts a new incomplete task stamped with the current time.
func (s *MongoTaskStore) Create(ctx context.Context, text string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc := taskDocument{
		Text:      text,
		Completed: false,
		// BSON dates have millisecond precision.
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		log.Error("failed to insert task", "error", err)
		return nil, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, store.NewStoreError("task", "create", "unexpected inserted id type",
			fmt.Errorf("%w: got %T", store.ErrUnavailable, res.InsertedID))
	}
	doc.ID = id

	log.Debug("task created", "task_id", id.Hex())
	return doc.toDomain(), nil
}

// GetByID returns a single task.
func (s *MongoTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, s.lookupError(ctx, "get", id, err)
	}
	return doc.toDomain(), nil
}

// UpdateText sets the task's text and returns the updated document.
func (s *MongoTaskStore) UpdateText(ctx context.Context, id string, text string) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, s.lookupError(ctx, "update_text", id, err)
	}
	return doc.toDomain(), nil
}

// Toggle flips the task's completed flag and returns the updated document.
func (s *MongoTaskStore) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		toggleCompleted,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, s.lookupError(ctx, "toggle", id, err)
	}
	return doc.toDomain(), nil
}

// Delete removes the task.
func (s *MongoTaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Error("failed to delete task", "task_id", id, "error", err)
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if res.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Ping checks connectivity to the server holding the collection.
func (s *MongoTaskStore) Ping(ctx context.Context) error {
	if err := s.collection.Database().Client().Ping(ctx, nil); err != nil {
		return store.NewStoreError("task", "ping", "ping failed", MapError(err))
	}
	return nil
}

func (s *MongoTaskStore) lookupError(ctx context.Context, op, id string, err error) error {
	mapped := MapError(err)
	if store.IsNotFoundError(mapped) {
		return store.ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		"operation", op,
		"task_id", id,
		"error", err)
	return store.NewStoreError("task", op, "operation failed", mapped)
}

// parseID converts a hex id to an ObjectID. A string that is not an ObjectID
// cannot name a stored task, so it is reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id", store.ErrTaskNotFound)
	}
	return oid, nil
}
