package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Options struct {
	URI                    string
	Database               string
	AppName                string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

// Database is a connected client bound to one database.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the deployment and pings the primary before returning.
func Connect(ctx context.Context, opts Options) (*Database, error) {
	if strings.TrimSpace(opts.URI) == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if strings.TrimSpace(opts.Database) == "" {
		return nil, fmt.Errorf("mongo database is required")
	}

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.AppName != "" {
		clientOpts.SetAppName(opts.AppName)
	}
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, wrapStoreErr("connect", opts.Database, err)
	}

	pingCtx := ctx
	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrapStoreErr("ping", opts.Database, err)
	}

	return FromClient(client, opts.Database), nil
}

func FromClient(client *mongo.Client, database string) *Database {
	return &Database{client: client, db: client.Database(database)}
}

func (d *Database) Name() string {
	return d.db.Name()
}

func (d *Database) Raw() *mongo.Database {
	return d.db
}

func (d *Database) Client() *mongo.Client {
	return d.client
}

func (d *Database) Ping(ctx context.Context) error {
	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return wrapStoreErr("ping", d.db.Name(), err)
	}
	return nil
}

func (d *Database) Disconnect(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return crerr.Wrap(err, "disconnect mongo")
	}
	return nil
}

// CollectionOf binds the named collection of d to record type T.
func CollectionOf[T any](d *Database, name string) *Collection[T] {
	return NewCollection[T](d.db.Collection(name))
}
