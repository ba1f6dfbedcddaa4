package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelog/movieapp/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoMovieRepo struct {
	coll *mongo.Collection
	log  *log.Helper
}

func ensureMovieIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "watched", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create movie indexes: %w", err)
	}
	return nil
}

func (r *mongoMovieRepo) List(ctx context.Context, query *biz.MovieQuery) ([]*biz.Movie, error) {
	filter := bson.D{}
	if query.Watched != nil {
		filter = append(filter, bson.E{Key: "watched", Value: *query.Watched})
	}

	opts := options.Find()
	if query.SortByRating {
		// Missing ratings compare lower than any number, so they sort last.
		opts.SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	movies := make([]*biz.Movie, 0, len(docs))
	for i := range docs {
		movies = append(movies, docs[i].toBiz())
	}
	return movies, nil
}

func (r *mongoMovieRepo) Get(ctx context.Context, id string) (*biz.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, biz.ErrMovieNotFound
	}

	var doc movieDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateMongoErr(err)
	}
	return doc.toBiz(), nil
}

func (r *mongoMovieRepo) Create(ctx context.Context, movie *biz.Movie) (*biz.Movie, error) {
	doc := movieDocument{
		ID:        bson.NewObjectID(),
		Title:     movie.Title,
		Year:      movie.Year,
		Genre:     movie.Genre,
		Watched:   movie.Watched,
		Rating:    movie.Rating,
		CreatedAt: movie.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert movie: %w", err)
	}
	return doc.toBiz(), nil
}

func (r *mongoMovieRepo) Update(ctx context.Context, id string, update *biz.MovieUpdate) (*biz.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, biz.ErrMovieNotFound
	}

	set := bson.D{{Key: "watched", Value: update.Watched}}
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Year != nil {
		set = append(set, bson.E{Key: "year", Value: *update.Year})
	}
	if update.Genre != nil {
		set = append(set, bson.E{Key: "genre", Value: *update.Genre})
	}
	if update.Rating != nil {
		set = append(set, bson.E{Key: "rating", Value: *update.Rating})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc movieDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		return nil, translateMongoErr(err)
	}
	return doc.toBiz(), nil
}

func (r *mongoMovieRepo) Delete(ctx context.Context, id string) (*biz.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, biz.ErrMovieNotFound
	}

	var doc movieDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateMongoErr(err)
	}
	return doc.toBiz(), nil
}

func translateMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return biz.ErrMovieNotFound
	}
	return fmt.Errorf("mongo: %w", err)
}
