package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"sweetshop/internal/auth"
	"sweetshop/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
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

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
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

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestLoadUser(t *testing.T) {
	userID := uuid.New()

	t.Run("attaches identity for a known user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Role: model.RoleAdmin}, nil)

		c := newTestContext()
		c.Set("user", &jwt.Token{Claims: &auth.Claims{UserID: userID.String()}, Valid: true})

		err := LoadUser(mockRepo)(okHandler)(c)
		assert.NoError(t, err)

		identity := IdentityFrom(c)
		assert.NotNil(t, identity)
		assert.Equal(t, userID, identity.ID)
		assert.Equal(t, model.RoleAdmin, identity.Role)
	})

	t.Run("rejects when no token was verified", func(t *testing.T) {
		c := newTestContext()

		err := LoadUser(new(MockUserRepository))(okHandler)(c)

		var he *echo.HTTPError
		assert.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("rejects when the token user no longer exists", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		c := newTestContext()
		c.Set("user", &jwt.Token{Claims: &auth.Claims{UserID: userID.String()}, Valid: true})

		err := LoadUser(mockRepo)(okHandler)(c)

		var he *echo.HTTPError
		assert.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name         string
		identity     *Identity
		expectedCode int
	}{
		{name: "no identity", identity: nil, expectedCode: http.StatusUnauthorized},
		{name: "regular user", identity: &Identity{ID: uuid.New(), Role: model.RoleUser}, expectedCode: http.StatusForbidden},
		{name: "admin passes through", identity: &Identity{ID: uuid.New(), Role: model.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext()
			if tt.identity != nil {
				c.Set(identityKey, tt.identity)
			}

			err := RequireAdmin(okHandler)(c)

			if tt.expectedCode != 0 {
				var he *echo.HTTPError
				assert.ErrorAs(t, err, &he)
				assert.Equal(t, tt.expectedCode, he.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
