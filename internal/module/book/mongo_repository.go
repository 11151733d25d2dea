package book

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/simp-lee/bookstore/internal/domain"
	"github.com/simp-lee/bookstore/internal/pkg"
)

// mongoRepository implements domain.BookRepository on a MongoDB collection.
type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a BookRepository backed by coll.
func NewMongoRepository(coll *mongo.Collection) domain.BookRepository {
	return &mongoRepository{coll: coll}
}

// EnsureIndexes creates the secondary indexes used by searches.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: domain.BookFieldISBN, Value: 1}},
		Options: options.Index().SetName("isbn_1"),
	})
	if err != nil {
		return mapMongoError(err)
	}
	return nil
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&book); err != nil {
		return nil, mapMongoError(err)
	}
	return &book, nil
}

func (r *mongoRepository) Find(ctx context.Context, pred domain.Predicate, page domain.PageRequest) ([]domain.Book, error) {
	opts := options.Find().
		SetSort(pkg.BSONSort(page.Sort, sortableFields)).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.PageSize))

	cur, err := r.coll.Find(ctx, pkg.BSON(pred), opts)
	if err != nil {
		return nil, mapMongoError(err)
	}

	var books []domain.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, mapMongoError(err)
	}
	return books, nil
}

func (r *mongoRepository) Count(ctx context.Context, pred domain.Predicate) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, pkg.BSON(pred))
	if err != nil {
		return 0, mapMongoError(err)
	}
	return total, nil
}

// Insert assigns an ObjectID hex string when book.ID is empty.
func (r *mongoRepository) Insert(ctx context.Context, book *domain.Book) error {
	if book.ID == "" {
		book.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *mongoRepository) Replace(ctx context.Context, book *domain.Book) error {
	_, err := r.coll.ReplaceOne(ctx, byID(book.ID), book, options.Replace().SetUpsert(true))
	if err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, byID(id)); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return domain.NewAppError(domain.CodeUnavailable, "mongo unreachable", err)
	}
	return nil
}

// mapMongoError converts driver errors to domain errors.
func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.NewAppError(domain.CodeAlreadyExists, "book already exists", err)
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return domain.NewAppError(domain.CodeUnavailable, "mongo unreachable", err)
	default:
		return domain.NewAppError(domain.CodeInternal, "mongo error", err)
	}
}
