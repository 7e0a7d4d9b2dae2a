package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	clientRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/client"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
)

type fakeClientRepo struct {
	byPhone    *domain.Client
	byPhoneErr error
	createErr  error

	created *domain.Client
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *c
	created.ID = 42
	f.created = &created
	return &created, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, _, _ int64) (*domain.Client, error) {
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeClientRepo) GetByPhone(_ context.Context, _ int64, _ string) (*domain.Client, error) {
	if f.byPhoneErr != nil {
		return nil, f.byPhoneErr
	}
	return f.byPhone, nil
}

func (f *fakeClientRepo) GetByBusiness(_ context.Context, _ int64, _ *int64) ([]*domain.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) Update(_ context.Context, _ *domain.Client) error { return nil }

func (f *fakeClientRepo) Delete(_ context.Context, _, _ int64) error { return nil }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestFindOrCreate(t *testing.T) {
	t.Run("existing client found by phone", func(t *testing.T) {
		existing := &domain.Client{ID: 7, BusinessID: 1, Name: "Анна"}
		repo := &fakeClientRepo{byPhone: existing}
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		got, err := svc.FindOrCreate(context.Background(), 1, nil, "Другая Анна", "+79990001122", "web_chat", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		// новый клиент не создается
		assert.Nil(t, repo.created)
	})

	t.Run("new client created when phone unknown", func(t *testing.T) {
		repo := &fakeClientRepo{byPhoneErr: clientRepo.ErrClientNotFound}
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		chatID := ptr.Ptr("chat-15")
		got, err := svc.FindOrCreate(context.Background(), 1, ptr.Ptr(int64(10)), "Анна", "+79990001122", "web_chat", chatID)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)

		require.NotNil(t, repo.created)
		assert.Equal(t, "Анна", repo.created.Name)
		require.NotNil(t, repo.created.Phone)
		assert.Equal(t, "+79990001122", *repo.created.Phone)
		assert.Equal(t, "web_chat", repo.created.Platform)
		assert.Equal(t, chatID, repo.created.ChatID)
	})

	t.Run("name and phone required", func(t *testing.T) {
		svc := NewService(&fakeClientRepo{}, fakeTxManager{}, nopLogger{})

		_, err := svc.FindOrCreate(context.Background(), 1, nil, "", "+79990001122", "web_chat", nil)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.FindOrCreate(context.Background(), 1, nil, "Анна", "", "web_chat", nil)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		repo := &fakeClientRepo{byPhoneErr: errors.New("db down")}
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		_, err := svc.FindOrCreate(context.Background(), 1, nil, "Анна", "+79990001122", "web_chat", nil)
		require.ErrorIs(t, err, ErrInternal)
	})
}
