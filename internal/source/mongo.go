package source

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"adtables/internal/model"
)

const defaultMongoDatabase = "adtables"

// Mongo reads one collection per entity: accounts, profiles, campaigns.
type Mongo struct {
	client *mongo.Client
	dbName string
}

// OpenMongo connects to uri. The database is taken from the URI path and
// defaults to "adtables".
func OpenMongo(ctx context.Context, uri string) (*Mongo, error) {
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return nil, fmt.Errorf("invalid mongo uri: want mongodb:// or mongodb+srv:// scheme")
	}
	dbName := mongoDatabaseName(uri)
	log.Printf("[MONGO] connecting, database %s", dbName)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{client: client, dbName: dbName}, nil
}

// mongoDatabaseName extracts the database from the URI path.
func mongoDatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

func findAll[T any](ctx context.Context, m *Mongo, collection string) ([]T, error) {
	cur, err := m.client.Database(m.dbName).Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return out, nil
}

// Accounts returns every account document in natural order.
func (m *Mongo) Accounts(ctx context.Context) ([]model.Account, error) {
	return findAll[model.Account](ctx, m, "accounts")
}

// Profiles returns every profile document in natural order.
func (m *Mongo) Profiles(ctx context.Context) ([]model.Profile, error) {
	return findAll[model.Profile](ctx, m, "profiles")
}

// Campaigns returns every campaign document in natural order.
func (m *Mongo) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	return findAll[model.Campaign](ctx, m, "campaigns")
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
