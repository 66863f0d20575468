package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

// MockSweetRepository is a mock implementation of repository.SweetRepository.
type MockSweetRepository struct {
	mock.Mock
}

func (m *MockSweetRepository) Create(ctx context.Context, sweet *model.Sweet) error {
	args := m.Called(ctx, sweet)
	return args.Error(0)
}

func (m *MockSweetRepository) Update(ctx context.Context, sweet *model.Sweet) error {
	args := m.Called(ctx, sweet)
	return args.Error(0)
}

func (m *MockSweetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sweet), args.Error(1)
}

func (m *MockSweetRepository) List(ctx context.Context) ([]model.Sweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Sweet), args.Error(1)
}

func (m *MockSweetRepository) Search(ctx context.Context, filter repository.SweetFilter) ([]model.Sweet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Sweet), args.Error(1)
}

func (m *MockSweetRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSweetRepository) DecrementQuantity(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSweetRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, amount int) (int64, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(int64), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestSweetService_Create(t *testing.T) {
	tests := []struct {
		name             string
		input            CreateSweetInput
		setupMock        func(*MockSweetRepository)
		expectedQuantity int
		expectedMessages []string
	}{
		{
			name: "successful create with explicit quantity",
			input: CreateSweetInput{
				Name:     "Gulab Jamun",
				Category: "Indian",
				Price:    floatPtr(50),
				Quantity: intPtr(10),
			},
			setupMock: func(m *MockSweetRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Sweet")).Return(nil)
			},
			expectedQuantity: 10,
		},
		{
			name: "quantity defaults to zero",
			input: CreateSweetInput{
				Name:     "Rasgulla",
				Category: "Indian",
				Price:    floatPtr(40),
			},
			setupMock: func(m *MockSweetRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Sweet")).Return(nil)
			},
			expectedQuantity: 0,
		},
		{
			name: "zero price is valid",
			input: CreateSweetInput{
				Name:     "Free Sample",
				Category: "Candy",
				Price:    floatPtr(0),
			},
			setupMock: func(m *MockSweetRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Sweet")).Return(nil)
			},
		},
		{
			name:      "every violated field is reported",
			input:     CreateSweetInput{},
			setupMock: func(m *MockSweetRepository) {},
			expectedMessages: []string{
				"Sweet name is required",
				"Sweet category is required",
				"Sweet price is required",
			},
		},
		{
			name: "negative price and quantity",
			input: CreateSweetInput{
				Name:     "Broken",
				Category: "Candy",
				Price:    floatPtr(-1),
				Quantity: intPtr(-5),
			},
			setupMock: func(m *MockSweetRepository) {},
			expectedMessages: []string{
				"Price cannot be negative",
				"Quantity cannot be negative",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSweetRepository)
			tt.setupMock(mockRepo)

			svc := NewSweetService(mockRepo, nil)
			sweet, err := svc.Create(context.Background(), tt.input)

			if len(tt.expectedMessages) > 0 {
				var ve *errors.ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.expectedMessages, ve.Messages)
				assert.Nil(t, sweet)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input.Name, sweet.Name)
				assert.Equal(t, tt.expectedQuantity, sweet.Quantity)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSweetService_GetByID(t *testing.T) {
	sweetID := uuid.New()
	stored := &model.Sweet{ID: sweetID, Name: "Kaju Katli", Category: "Indian", Price: 90, Quantity: 8}

	tests := []struct {
		name        string
		id          string
		setupMock   func(*MockSweetRepository)
		expectedErr error
	}{
		{
			name: "found",
			id:   sweetID.String(),
			setupMock: func(m *MockSweetRepository) {
				m.On("FindByID", mock.Anything, sweetID).Return(stored, nil)
			},
		},
		{
			name:        "malformed id",
			id:          "not-a-uuid",
			setupMock:   func(m *MockSweetRepository) {},
			expectedErr: errors.ErrInvalidSweetID,
		},
		{
			name: "well-formed but unknown id",
			id:   sweetID.String(),
			setupMock: func(m *MockSweetRepository) {
				m.On("FindByID", mock.Anything, sweetID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedErr: errors.ErrSweetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSweetRepository)
			tt.setupMock(mockRepo)

			svc := NewSweetService(mockRepo, nil)
			sweet, err := svc.GetByID(context.Background(), tt.id)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, sweet)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.Name, sweet.Name)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSweetService_Update(t *testing.T) {
	sweetID := uuid.New()

	t.Run("explicit zeros are applied, absent fields untouched", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		stored := &model.Sweet{ID: sweetID, Name: "Lemon Drop", Category: "Candy", Price: 15, Quantity: 50}
		mockRepo.On("FindByID", mock.Anything, sweetID).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Sweet")).Return(nil)

		svc := NewSweetService(mockRepo, nil)
		sweet, err := svc.Update(context.Background(), sweetID.String(), UpdateSweetInput{
			Price:    floatPtr(0),
			Quantity: intPtr(0),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Lemon Drop", sweet.Name)
		assert.Equal(t, "Candy", sweet.Category)
		assert.Equal(t, float64(0), sweet.Price)
		assert.Equal(t, 0, sweet.Quantity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("provided fields replace existing values", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		stored := &model.Sweet{ID: sweetID, Name: "Lemon Drop", Category: "Candy", Price: 15, Quantity: 50}
		mockRepo.On("FindByID", mock.Anything, sweetID).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Sweet")).Return(nil)

		svc := NewSweetService(mockRepo, nil)
		sweet, err := svc.Update(context.Background(), sweetID.String(), UpdateSweetInput{
			Name:  strPtr("Sour Lemon Drop"),
			Price: floatPtr(18),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Sour Lemon Drop", sweet.Name)
		assert.Equal(t, float64(18), sweet.Price)
		assert.Equal(t, 50, sweet.Quantity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("violations rejected before any lookup", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)

		svc := NewSweetService(mockRepo, nil)
		_, err := svc.Update(context.Background(), sweetID.String(), UpdateSweetInput{
			Name:  strPtr(""),
			Price: floatPtr(-2),
		})

		var ve *errors.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Sweet name is required", "Price cannot be negative"}, ve.Messages)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("FindByID", mock.Anything, sweetID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewSweetService(mockRepo, nil)
		_, err := svc.Update(context.Background(), sweetID.String(), UpdateSweetInput{Price: floatPtr(10)})

		assert.ErrorIs(t, err, errors.ErrSweetNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewSweetService(new(MockSweetRepository), nil)
		_, err := svc.Update(context.Background(), "junk", UpdateSweetInput{Price: floatPtr(10)})
		assert.ErrorIs(t, err, errors.ErrInvalidSweetID)
	})
}

func TestSweetService_Delete(t *testing.T) {
	sweetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("Delete", mock.Anything, sweetID).Return(int64(1), nil)

		svc := NewSweetService(mockRepo, nil)
		assert.NoError(t, svc.Delete(context.Background(), sweetID.String()))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("Delete", mock.Anything, sweetID).Return(int64(0), nil)

		svc := NewSweetService(mockRepo, nil)
		assert.ErrorIs(t, svc.Delete(context.Background(), sweetID.String()), errors.ErrSweetNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewSweetService(new(MockSweetRepository), nil)
		assert.ErrorIs(t, svc.Delete(context.Background(), "junk"), errors.ErrInvalidSweetID)
	})
}

func TestSweetService_Purchase(t *testing.T) {
	sweetID := uuid.New()

	t.Run("decrements stock by one", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("DecrementQuantity", mock.Anything, sweetID).Return(int64(1), nil)
		mockRepo.On("FindByID", mock.Anything, sweetID).
			Return(&model.Sweet{ID: sweetID, Name: "Gulab Jamun", Quantity: 9}, nil)

		svc := NewSweetService(mockRepo, nil)
		sweet, err := svc.Purchase(context.Background(), sweetID.String())

		assert.NoError(t, err)
		assert.Equal(t, 9, sweet.Quantity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("out of stock leaves the record untouched", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("DecrementQuantity", mock.Anything, sweetID).Return(int64(0), nil)
		mockRepo.On("FindByID", mock.Anything, sweetID).
			Return(&model.Sweet{ID: sweetID, Name: "Gulab Jamun", Quantity: 0}, nil)

		svc := NewSweetService(mockRepo, nil)
		sweet, err := svc.Purchase(context.Background(), sweetID.String())

		assert.ErrorIs(t, err, errors.ErrOutOfStock)
		assert.Nil(t, sweet)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("DecrementQuantity", mock.Anything, sweetID).Return(int64(0), nil)
		mockRepo.On("FindByID", mock.Anything, sweetID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewSweetService(mockRepo, nil)
		_, err := svc.Purchase(context.Background(), sweetID.String())

		assert.ErrorIs(t, err, errors.ErrSweetNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewSweetService(new(MockSweetRepository), nil)
		_, err := svc.Purchase(context.Background(), "junk")
		assert.ErrorIs(t, err, errors.ErrInvalidSweetID)
	})
}

func TestSweetService_Restock(t *testing.T) {
	sweetID := uuid.New()

	t.Run("increments stock by the given amount", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("IncrementQuantity", mock.Anything, sweetID, 5).Return(int64(1), nil)
		mockRepo.On("FindByID", mock.Anything, sweetID).
			Return(&model.Sweet{ID: sweetID, Name: "Gulab Jamun", Quantity: 13}, nil)

		svc := NewSweetService(mockRepo, nil)
		sweet, err := svc.Restock(context.Background(), sweetID.String(), 5)

		assert.NoError(t, err)
		assert.Equal(t, 13, sweet.Quantity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("zero and negative amounts are rejected before any write", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		svc := NewSweetService(mockRepo, nil)

		for _, quantity := range []int{0, -3} {
			_, err := svc.Restock(context.Background(), sweetID.String(), quantity)
			assert.ErrorIs(t, err, errors.ErrInvalidRestockQuantity)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockSweetRepository)
		mockRepo.On("IncrementQuantity", mock.Anything, sweetID, 5).Return(int64(0), nil)

		svc := NewSweetService(mockRepo, nil)
		_, err := svc.Restock(context.Background(), sweetID.String(), 5)

		assert.ErrorIs(t, err, errors.ErrSweetNotFound)
	})
}
