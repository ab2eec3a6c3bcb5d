package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/pipeline"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListOrdered(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBio(ctx context.Context, id uint, bio string) error {
	args := m.Called(ctx, id, bio)
	return args.Error(0)
}

func (m *MockUserRepository) CreditGeneration(ctx context.Context, id uint, reward decimal.Decimal, at time.Time) error {
	args := m.Called(ctx, id, reward, at)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.GenerationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.GenerationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) HasProcessing(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]model.GenerationTask, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GenerationTask), args.Error(1)
}

// MockBanknoteRepository is a mock implementation of BanknoteRepository.
type MockBanknoteRepository struct {
	mock.Mock
}

func (m *MockBanknoteRepository) FindByID(ctx context.Context, id uint) (*model.Banknote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banknote), args.Error(1)
}

func (m *MockBanknoteRepository) Update(ctx context.Context, note *model.Banknote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockBanknoteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Banknote, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Banknote), args.Error(1)
}

func (m *MockBanknoteRepository) ListPublicByUser(ctx context.Context, userID uint) ([]model.Banknote, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Banknote), args.Error(1)
}

func (m *MockBanknoteRepository) HasAny(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBanknoteRepository) CreateMintedBatch(ctx context.Context, batch []repository.Minted) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// MockSerialNumberRepository is a mock implementation of SerialNumberRepository.
type MockSerialNumberRepository struct {
	mock.Mock
}

func (m *MockSerialNumberRepository) Create(ctx context.Context, serial *model.SerialNumber) error {
	args := m.Called(ctx, serial)
	return args.Error(0)
}

func (m *MockSerialNumberRepository) FindActiveBySerial(ctx context.Context, serial string) (*model.SerialNumber, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SerialNumber), args.Error(1)
}

func (m *MockSerialNumberRepository) Deactivate(ctx context.Context, serial string) error {
	args := m.Called(ctx, serial)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// stubRunner is a canned pipeline runner for worker tests.
type stubRunner struct {
	result   *pipeline.Result
	err      error
	panicMsg string
}

func (r *stubRunner) Run(ctx context.Context, identity string) (*pipeline.Result, error) {
	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	return r.result, r.err
}

// stubRenderer records render calls instead of rasterizing anything.
type stubRenderer struct {
	thumbnails []string
	documents  []string
	combined   []string
	err        error
}

func (r *stubRenderer) Thumbnail(svgPath, pngPath string) error {
	if r.err != nil {
		return r.err
	}
	r.thumbnails = append(r.thumbnails, pngPath)
	return nil
}

func (r *stubRenderer) Document(svgPath, pdfPath string) error {
	if r.err != nil {
		return r.err
	}
	r.documents = append(r.documents, pdfPath)
	return nil
}

func (r *stubRenderer) Combined(notes []model.Banknote, pdfPath string) error {
	if r.err != nil {
		return r.err
	}
	r.combined = append(r.combined, pdfPath)
	return nil
}

// fakeIngestor replaces the real ingest step in worker tests.
type fakeIngestor struct {
	err   error
	calls int
}

func (f *fakeIngestor) Ingest(ctx context.Context, userID uint, identity string) error {
	f.calls++
	return f.err
}
