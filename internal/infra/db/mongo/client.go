package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMissingURI = errors.New("mongo: connection uri required")

// Options configure the database handle from application config.
type Options struct {
	URI            string
	Database       string
	AppName        string
	ConnectTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.AppName == "" {
		o.AppName = "tripnest"
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	return o
}

type Client struct {
	DB *mongo.Database
}

func New(opts Options) (*Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}
	opts = opts.withDefaults()

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetAppName(opts.AppName).
		SetRetryWrites(true)
	m, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(opts.Database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.DB.Client().Disconnect(ctx)
}
