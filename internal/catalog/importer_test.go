package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubLoader returns a fixed set of entries.
type stubLoader struct {
	entries []Entry
	err     error
}

func (l *stubLoader) Load(ctx context.Context, source string) ([]Entry, error) {
	return l.entries, l.err
}

// mockProductRepo is a mock implementation of repository.ProductRepository.
type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductRepo) GetByNameTx(ctx context.Context, tx pgx.Tx, name string) (*model.Product, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductRepo) GetByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) UpsertByName(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// mockCategoryRepo is a mock implementation of repository.CategoryRepository.
type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()

	loader := &stubLoader{entries: []Entry{
		{Name: "Drone", Description: "A flying camera", Price: 9999, Stock: 50, Category: "Electronics"},
		{Name: "Signature Box III", Price: 300000, Stock: 10, Category: "Electronics"},
		{Name: "Rubber Gloves", Price: 499, Stock: 500, Category: "Kitchen"},
	}}

	products := new(mockProductRepo)
	categories := new(mockCategoryRepo)

	// Neither category exists yet; each is created exactly once even
	// though Electronics appears on two lines.
	categories.On("GetByName", ctx, "Electronics").Return(nil, nil).Once()
	categories.On("GetByName", ctx, "Kitchen").Return(nil, nil).Once()
	categories.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(nil).Twice()
	products.On("UpsertByName", ctx, mock.AnythingOfType("*model.Product")).Return(nil).Times(3)

	importer := NewImporter(loader, products, categories, zerolog.Nop())

	err := importer.Import(ctx, "feed.jsonl.gz")

	require.NoError(t, err)
	products.AssertExpectations(t)
	categories.AssertExpectations(t)
}

func TestImporter_Import_ExistingCategoryReused(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	loader := &stubLoader{entries: []Entry{
		{Name: "Drone", Price: 9999, Stock: 50, Category: "Electronics"},
	}}

	products := new(mockProductRepo)
	categories := new(mockCategoryRepo)

	categories.On("GetByName", ctx, "Electronics").
		Return(&model.Category{ID: categoryID, Name: "Electronics"}, nil)
	products.On("UpsertByName", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	importer := NewImporter(loader, products, categories, zerolog.Nop())

	err := importer.Import(ctx, "feed.jsonl.gz")

	require.NoError(t, err)

	upserted := products.Calls[0].Arguments.Get(1).(*model.Product)
	assert.Equal(t, categoryID, upserted.CategoryID)
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImporter_Import_UncategorisedFallback(t *testing.T) {
	ctx := context.Background()

	loader := &stubLoader{entries: []Entry{
		{Name: "Mystery Item", Price: 100, Stock: 1},
	}}

	products := new(mockProductRepo)
	categories := new(mockCategoryRepo)

	categories.On("GetByName", ctx, "Uncategorised").Return(nil, nil)
	categories.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(nil)
	products.On("UpsertByName", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	importer := NewImporter(loader, products, categories, zerolog.Nop())

	err := importer.Import(ctx, "feed.jsonl.gz")

	require.NoError(t, err)

	created := categories.Calls[1].Arguments.Get(1).(*model.Category)
	assert.Equal(t, "Uncategorised", created.Name)
}

func TestImporter_Import_LoaderError(t *testing.T) {
	ctx := context.Background()

	loader := &stubLoader{err: errors.New("no such bucket")}

	products := new(mockProductRepo)
	categories := new(mockCategoryRepo)

	importer := NewImporter(loader, products, categories, zerolog.Nop())

	err := importer.Import(ctx, "feed.jsonl.gz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such bucket")
	products.AssertNotCalled(t, "UpsertByName", mock.Anything, mock.Anything)
}

func TestImporter_Import_UpsertFailureAborts(t *testing.T) {
	ctx := context.Background()

	loader := &stubLoader{entries: []Entry{
		{Name: "Drone", Price: 9999, Stock: 50, Category: "Electronics"},
		{Name: "Rubber Gloves", Price: 499, Stock: 500, Category: "Kitchen"},
	}}

	products := new(mockProductRepo)
	categories := new(mockCategoryRepo)

	categories.On("GetByName", ctx, "Electronics").Return(nil, nil)
	categories.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(nil)
	products.On("UpsertByName", ctx, mock.AnythingOfType("*model.Product")).Return(errors.New("connection reset"))

	importer := NewImporter(loader, products, categories, zerolog.Nop())

	err := importer.Import(ctx, "feed.jsonl.gz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Drone")
	products.AssertNumberOfCalls(t, "UpsertByName", 1)
}
