package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinelog/movieapp/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewMovieRepo,
	NewSessionRepo,
	NewCredentialStore,
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	defaultMongoDatabase   = "movieapp"
	defaultMongoCollection = "movies"
)

// Data encapsulates database and cache connections. Exactly one of movies,
// db or mem is set, depending on the configured driver.
type Data struct {
	movies *mongo.Collection
	db     *gorm.DB
	mem    *memoryMovieRepo
	rdb    *redis.Client
	log    *log.Helper
}

// NewData creates Data instance with the movie store and optional Redis.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	if c == nil {
		return nil, nil, errors.New("data config is required")
	}
	l := log.NewHelper(logger)
	data := &Data{log: l}

	var closers []func(context.Context) error

	driver := DriverMongo
	if c.Database != nil && c.Database.Driver != "" {
		driver = c.Database.Driver
	}

	switch driver {
	case DriverMongo:
		client, coll, err := openMongo(c.Mongo)
		if err != nil {
			l.Errorf("failed to connect to mongo: %v", err)
			return nil, nil, err
		}
		data.movies = coll
		closers = append(closers, client.Disconnect)
		l.Info("mongo connected successfully")

	case DriverPostgres:
		if c.Database == nil || c.Database.Source == "" {
			return nil, nil, fmt.Errorf("data.database.source is required for driver %q", driver)
		}
		db, err := gorm.Open(postgres.Open(c.Database.Source), &gorm.Config{})
		if err != nil {
			l.Errorf("failed to connect to database: %v", err)
			return nil, nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			l.Errorf("failed to get database instance: %v", err)
			return nil, nil, err
		}

		// Configure connection pool
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		if err := db.AutoMigrate(&movieRecord{}); err != nil {
			l.Errorf("failed to migrate movies table: %v", err)
			_ = sqlDB.Close()
			return nil, nil, err
		}
		data.db = db
		closers = append(closers, func(context.Context) error { return sqlDB.Close() })
		l.Info("database connected successfully")

	case DriverMemory:
		data.mem = newMemoryMovieRepo()
		l.Warn("using the in-memory movie store, data is lost on restart")

	default:
		return nil, nil, fmt.Errorf("unknown data.database.driver %q", driver)
	}

	if c.Redis != nil && c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			Password:     c.Redis.Password,
			DB:           c.Redis.Db,
			ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
			WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			// Redis is optional, continue without it
			l.Warnf("failed to connect to redis: %v", err)
			_ = rdb.Close()
		} else {
			data.rdb = rdb
			closers = append(closers, func(context.Context) error { return rdb.Close() })
			l.Info("redis connected successfully")
		}
	}

	cleanup := func() {
		l.Info("closing data resources")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](ctx); err != nil {
				l.Errorf("failed to close data resource: %v", err)
			}
		}
	}

	return data, cleanup, nil
}

func openMongo(c *conf.Data_Mongo) (*mongo.Client, *mongo.Collection, error) {
	if c == nil || c.Uri == "" {
		return nil, nil, fmt.Errorf("data.mongo.uri is required")
	}
	timeout := c.ConnectTimeout.AsDuration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(options.Client().ApplyURI(c.Uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	database := c.Database
	if database == "" {
		database = defaultMongoDatabase
	}
	collection := c.Collection
	if collection == "" {
		collection = defaultMongoCollection
	}
	coll := client.Database(database).Collection(collection)
	if err := ensureMovieIndexes(ctx, coll); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, coll, nil
}
