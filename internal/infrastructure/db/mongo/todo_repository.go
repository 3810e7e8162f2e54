package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/todo-api/internal/core/domain"
)

const todosCollection = "todos"

// TodoRepository persists todos in MongoDB with numeric IDs from the shared
// counters collection. Owner-scoped queries always filter by owner_id.
type TodoRepository struct {
	coll *mongo.Collection
	seq  *sequences
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{coll: db.Collection(todosCollection), seq: newSequences(db)}
}

type mongoTodo struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Priority    int    `bson:"priority"`
	Complete    bool   `bson:"complete"`
	OwnerID     int64  `bson:"owner_id"`
}

func toMongoTodo(t *domain.Todo) mongoTodo {
	return mongoTodo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
	}
}

func (mt mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          mt.ID,
		Title:       mt.Title,
		Description: mt.Description,
		Priority:    mt.Priority,
		Complete:    mt.Complete,
		OwnerID:     mt.OwnerID,
	}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, todosCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoTodo(todo)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return r.list(ctx, bson.M{})
}

func (r *TodoRepository) list(ctx context.Context, filter bson.M) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Sort by _id: sequence IDs are assigned in insertion order.
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := make([]*domain.Todo, 0)
	for cur.Next(ctx) {
		var mt mongoTodo
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Find retrieves a todo matching both id and owner, so that one user's todos
// are indistinguishable from nonexistent ones for everybody else.
func (r *TodoRepository) Find(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTodo
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return mt.toDomain(), nil
}

// Update replaces the row matching todo.ID+todo.OwnerID.
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": todo.ID, "owner_id": todo.OwnerID}, toMongoTodo(todo))
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int64) error {
	return r.delete(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

func (r *TodoRepository) DeleteAny(ctx context.Context, id int64) error {
	return r.delete(ctx, bson.M{"_id": id})
}

func (r *TodoRepository) delete(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
