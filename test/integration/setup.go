//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors the production DDL. The partial unique index enforces
// at most one cart order per customer; the stock check constraint is the
// database-level backstop for checkout's stock validation.
const schema = `
CREATE TABLE customers (
	id         UUID PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	address    JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT customers_email_key UNIQUE (email)
);

CREATE TABLE categories (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT categories_name_key UNIQUE (name)
);

CREATE TABLE products (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       BIGINT NOT NULL CHECK (price >= 0),
	stock       INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
	category_id UUID NOT NULL REFERENCES categories(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT products_name_key UNIQUE (name)
);

CREATE TABLE orders (
	id          UUID PRIMARY KEY,
	customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	status      TEXT NOT NULL CHECK (status IN ('cart', 'processing', 'shipped', 'delivered')),
	payment     JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX one_cart_per_customer ON orders (customer_id) WHERE status = 'cart';

CREATE TABLE order_items (
	order_id   UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id UUID NOT NULL REFERENCES products(id),
	quantity   INT NOT NULL CHECK (quantity > 0),
	PRIMARY KEY (order_id, product_id)
);
`

// testDB bundles the container-backed pool and repositories for a test.
type testDB struct {
	pool *pgxpool.Pool

	Customers  repository.CustomerRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Orders     repository.OrderRepository
}

// setupTestDB starts a PostgreSQL container, applies the schema and
// returns ready-to-use repositories. The container is terminated when
// the test finishes.
func setupTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, schema)
	require.NoError(t, err)

	logger := zerolog.Nop()

	return &testDB{
		pool:       pool,
		Customers:  repository.NewCustomerRepository(pool, logger),
		Categories: repository.NewCategoryRepository(pool, logger),
		Products:   repository.NewProductRepository(pool, logger),
		Orders:     repository.NewOrderRepository(pool, logger),
	}
}

// cleanup truncates all tables between tests sharing a container.
func (db *testDB) cleanup(t *testing.T) {
	t.Helper()
	_, err := db.pool.Exec(context.Background(),
		`TRUNCATE order_items, orders, products, categories, customers CASCADE`)
	require.NoError(t, err)
}

func (db *testDB) seedCustomer(t *testing.T, email string, address *model.Address) *model.Customer {
	t.Helper()

	customer := &model.Customer{
		ID:        uuid.New(),
		FirstName: "Alice",
		LastName:  "Appleseed",
		Email:     email,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Customers.Create(context.Background(), customer))
	return customer
}

func (db *testDB) seedCategory(t *testing.T, name string) *model.Category {
	t.Helper()

	category := &model.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Categories.Create(context.Background(), category))
	return category
}

func (db *testDB) seedProduct(t *testing.T, name string, price int64, stock int, categoryID uuid.UUID) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:         uuid.New(),
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, db.Products.Create(context.Background(), product))
	return product
}

func testAddress() *model.Address {
	return &model.Address{
		Street:     "123 Main St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "12345",
		Country:    "United States",
	}
}
