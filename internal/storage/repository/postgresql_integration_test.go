package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	tests := []struct {
		name    string
		user    models.User
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful register user",
			user: models.User{
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "hashedpassword",
				IsActive:     true,
			},
			setup: func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "duplicate username",
			user: models.User{
				Username:     "alice",
				Email:        "other@example.com",
				PasswordHash: "hashedpassword",
				IsActive:     true,
			},
			wantErr: models.ErrUserExists,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
			},
		},
		{
			name: "duplicate email",
			user: models.User{
				Username:     "bob",
				Email:        "alice@example.com",
				PasswordHash: "hashedpassword",
				IsActive:     true,
			},
			wantErr: models.ErrUserExists,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			gotID, err := storage.RegisterUser(context.Background(), tt.user)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Positive(t, gotID)
			}
		})
	}
}

func TestStorage_GetUserByUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:     "successful get user by username",
			username: "alice",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
			},
		},
		{
			name:     "non-existing user",
			username: "ghost",
			wantErr:  models.ErrUserNotFound,
			setup:    func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.GetUserByUsername(context.Background(), tt.username)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.username, got.Username)
				assert.Equal(t, "alice@example.com", got.Email)
				assert.True(t, got.IsActive)
			}
		})
	}
}

func TestStorage_DeactivateUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:     "successful deactivate user",
			username: "alice",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
			},
		},
		{
			name:     "non-existing user",
			username: "ghost",
			wantErr:  models.ErrUserNotFound,
			setup:    func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			err := storage.DeactivateUser(context.Background(), tt.username)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)

				// Строка сохраняется, меняется только флаг
				verification := NewTestVerification(storage)
				verification.VerifyUserActive(t, tt.username, false)
			}
		})
	}
}

func TestStorage_RemoveMagazine(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name: "successful remove magazine",
			setup: func(t *testing.T, factory *TestDataFactory) int {
				return factory.CreateMagazine(t, "Nature", "science weekly", 500)
			},
		},
		{
			name:    "non-existing magazine",
			wantErr: models.ErrMagazineNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) int { return 99 },
		},
		{
			name:    "magazine referenced by active subscription",
			wantErr: models.ErrCatalogInUse,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
				magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
				planID := factory.CreatePlan(t, "monthly", 1, 1, 0.0)
				factory.CreateSubscription(t, userID, magazineID, planID, 500, renewalDate, true)
				return magazineID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			magazineID := tt.setup(t, factory)

			err := storage.RemoveMagazine(context.Background(), magazineID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)

				verification := NewTestVerification(storage)
				verification.VerifyMagazineDeleted(t, magazineID)
			}
		})
	}
}

func TestStorage_RemovePlan(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name: "successful remove plan",
			setup: func(t *testing.T, factory *TestDataFactory) int {
				return factory.CreatePlan(t, "monthly", 1, 1, 0.1)
			},
		},
		{
			name:    "plan referenced by active subscription",
			wantErr: models.ErrCatalogInUse,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
				magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
				planID := factory.CreatePlan(t, "monthly", 1, 1, 0.1)
				factory.CreateSubscription(t, userID, magazineID, planID, 450, renewalDate, true)
				return planID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			planID := tt.setup(t, factory)

			err := storage.RemovePlan(context.Background(), planID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStorage_CreateSubscription(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("duplicate active triple hits the partial unique index", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)

		sub := models.Subscription{
			UserID:      userID,
			MagazineID:  magazineID,
			PlanID:      planID,
			Price:       400,
			RenewalDate: renewalDate,
			IsActive:    true,
		}

		firstID, err := storage.CreateSubscription(context.Background(), sub)
		require.NoError(t, err)
		assert.Positive(t, firstID)

		_, err = storage.CreateSubscription(context.Background(), sub)
		require.ErrorIs(t, err, models.ErrSubscriptionExists)
	})

	t.Run("deactivated subscription frees the triple", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)

		sub := models.Subscription{
			UserID:      userID,
			MagazineID:  magazineID,
			PlanID:      planID,
			Price:       400,
			RenewalDate: renewalDate,
			IsActive:    true,
		}

		firstID, err := storage.CreateSubscription(context.Background(), sub)
		require.NoError(t, err)

		err = storage.DeactivateSubscription(context.Background(), firstID, userID)
		require.NoError(t, err)

		secondID, err := storage.CreateSubscription(context.Background(), sub)
		require.NoError(t, err)
		assert.NotEqual(t, firstID, secondID)

		// Неактивная строка осталась в истории
		verification := NewTestVerification(storage)
		verification.VerifySubscriptionExists(t, firstID)
		verification.VerifySubscriptionActive(t, firstID, false)
	})
}

func TestStorage_ExistsActiveSubscription(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		wantExists bool
		setup      func(t *testing.T, factory *TestDataFactory) (int, int, int)
	}{
		{
			name:       "active subscription exists",
			wantExists: true,
			setup: func(t *testing.T, factory *TestDataFactory) (int, int, int) {
				userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
				magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
				planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
				factory.CreateSubscription(t, userID, magazineID, planID, 400, renewalDate, true)
				return userID, magazineID, planID
			},
		},
		{
			name:       "inactive subscription does not count",
			wantExists: false,
			setup: func(t *testing.T, factory *TestDataFactory) (int, int, int) {
				userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
				magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
				planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
				factory.CreateSubscription(t, userID, magazineID, planID, 400, renewalDate, false)
				return userID, magazineID, planID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			userID, magazineID, planID := tt.setup(t, factory)

			gotExists, err := storage.ExistsActiveSubscription(context.Background(), userID, magazineID, planID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantExists, gotExists)
		})
	}
}

func TestStorage_DeactivateSubscription(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("owner deactivates own subscription", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
		subscriptionID := factory.CreateSubscription(t, userID, magazineID, planID, 400, renewalDate, true)

		err := storage.DeactivateSubscription(context.Background(), subscriptionID, userID)
		require.NoError(t, err)

		verification := NewTestVerification(storage)
		verification.VerifySubscriptionActive(t, subscriptionID, false)
	})

	t.Run("foreign subscription looks like missing", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		ownerID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
		strangerID := factory.CreateUser(t, "bob", "bob@example.com", "hashedpassword", true)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
		subscriptionID := factory.CreateSubscription(t, ownerID, magazineID, planID, 400, renewalDate, true)

		err := storage.DeactivateSubscription(context.Background(), subscriptionID, strangerID)
		require.ErrorIs(t, err, models.ErrSubscriptionNotFound)

		// Подписка владельца не тронута
		verification := NewTestVerification(storage)
		verification.VerifySubscriptionActive(t, subscriptionID, true)
	})
}

func TestStorage_ListSubscriptions(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name:      "history includes inactive subscriptions",
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
				magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
				monthlyID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
				yearlyID := factory.CreatePlan(t, "yearly", 12, 2, 0.4)
				factory.CreateSubscription(t, userID, magazineID, monthlyID, 400, renewalDate, false)
				factory.CreateSubscription(t, userID, magazineID, yearlyID, 300, renewalDate, true)
				return userID
			},
		},
		{
			name:      "user without subscriptions",
			wantCount: 0,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				return factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			userID := tt.setup(t, factory)

			got, err := storage.ListSubscriptions(context.Background(), userID)

			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_UpdateSubscription(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newRenewalDate := time.Date(2027, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("successful update subscription", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		monthlyID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
		yearlyID := factory.CreatePlan(t, "yearly", 12, 2, 0.4)
		subscriptionID := factory.CreateSubscription(t, userID, magazineID, monthlyID, 400, renewalDate, true)

		err := storage.UpdateSubscription(context.Background(), subscriptionID, magazineID, yearlyID, 300, newRenewalDate)
		require.NoError(t, err)

		got, err := storage.ReadSubscription(context.Background(), subscriptionID)
		require.NoError(t, err)
		assert.Equal(t, yearlyID, got.PlanID)
		assert.InDelta(t, 300.0, got.Price, 0.0001)
		assert.Equal(t, newRenewalDate.Format("2006-01-02"), got.RenewalDate.Format("2006-01-02"))
	})

	t.Run("non-existing subscription", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		planID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)

		err := storage.UpdateSubscription(context.Background(), 99, magazineID, planID, 400, renewalDate)
		require.ErrorIs(t, err, models.ErrSubscriptionNotFound)
	})
}

func TestStorage_CountActiveSubscriptionsByMagazine(t *testing.T) {
	renewalDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("counts only active subscriptions", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "alice", "alice@example.com", "hashedpassword", true)
		magazineID := factory.CreateMagazine(t, "Nature", "science weekly", 500)
		monthlyID := factory.CreatePlan(t, "monthly", 1, 1, 0.2)
		yearlyID := factory.CreatePlan(t, "yearly", 12, 2, 0.4)
		factory.CreateSubscription(t, userID, magazineID, monthlyID, 400, renewalDate, true)
		factory.CreateSubscription(t, userID, magazineID, yearlyID, 300, renewalDate, false)

		count, err := storage.CountActiveSubscriptionsByMagazine(context.Background(), magazineID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
