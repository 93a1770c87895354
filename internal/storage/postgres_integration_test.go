//go:build integration

package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/RaikyD/parcel-orders/internal/migrate"
	"github.com/RaikyD/parcel-orders/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresKVIntegrationSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	kv        *storage.PostgresKV
}

func (s *PostgresKVIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("parcel"),
		postgres.WithUsername("parcel"),
		postgres.WithPassword("parcel"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(migrate.Up(ctx, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.pool = pool
	s.kv = storage.NewPostgresKV(pool)
}

func (s *PostgresKVIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE TABLE parcel.kv_store")
	s.Require().NoError(err)
}

func (s *PostgresKVIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresKVIntegrationSuite) TestGetAbsentKey() {
	b, err := s.kv.Get(context.Background(), "orders")
	s.Require().NoError(err)
	s.Nil(b)
}

func (s *PostgresKVIntegrationSuite) TestPutOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Put(ctx, "orders", []byte(`[]`)))
	s.Require().NoError(s.kv.Put(ctx, "orders", []byte(`[{"id":"order-1"}]`)))

	b, err := s.kv.Get(ctx, "orders")
	s.Require().NoError(err)
	s.Equal(`[{"id":"order-1"}]`, string(b))
}

func (s *PostgresKVIntegrationSuite) TestOrderStoreRoundTrip() {
	ctx := context.Background()
	store := storage.NewOrderStore(s.kv, "orders")

	s.Require().NoError(store.Save(ctx, sampleOrders()))
	orders, err := store.Load(ctx)
	s.Require().NoError(err)
	s.Len(orders, 2)
	s.Equal("order-1", orders[0].ID)
}

func TestPostgresKVIntegration(t *testing.T) {
	suite.Run(t, new(PostgresKVIntegrationSuite))
}
