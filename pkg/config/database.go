package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/anonto42/friendbook/backend/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the connection used by the selected snapshot store. Only the
// field for the configured driver is set.
type DB struct {
	SQLite    *sql.DB
	Postgres  *gorm.DB
	Mongo     *mongo.Client
	Snapshots store.SnapshotStore
}

// InitDB connects to the backend named by cfg.StoreDriver
func InitDB(ctx context.Context, cfg *Config) (*DB, error) {
	switch cfg.StoreDriver {
	case DriverPostgres:
		postgresDB, err := initPostgres(cfg.PostgresUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		snapshots, err := store.NewGormStore(postgresDB)
		if err != nil {
			db := &DB{Postgres: postgresDB}
			db.CloseDB()
			return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
		}
		return &DB{Postgres: postgresDB, Snapshots: snapshots}, nil

	case DriverMongo:
		mongoClient, err := initMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		return &DB{
			Mongo:     mongoClient,
			Snapshots: store.NewMongoStore(mongoClient.Database(cfg.MongoDatabase)),
		}, nil

	case DriverSQLite:
		sqliteDB, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		snapshots, err := store.NewSQLiteStore(ctx, sqliteDB)
		if err != nil {
			sqliteDB.Close()
			return nil, err
		}
		log.Printf("Using SQLite database %s", cfg.SQLitePath)
		return &DB{SQLite: sqliteDB, Snapshots: snapshots}, nil

	case DriverFile:
		snapshots, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		log.Printf("Using snapshot files in %s", cfg.DataDir)
		return &DB{Snapshots: snapshots}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL!")
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQLite != nil {
		if err := db.SQLite.Close(); err != nil {
			log.Printf("Error closing SQLite database: %v\n", err)
		} else {
			log.Println("SQLite database closed.")
		}
	}

	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			log.Printf("Error getting SQL DB from GORM: %v\n", err)
		} else if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing PostgreSQL connection: %v\n", err)
		} else {
			log.Println("PostgreSQL connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v\n", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}
}
