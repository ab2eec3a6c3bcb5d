package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taellinglin/LingTreasury/internal/model"
)

func TestEligibilityPolicy_CanGenerate(t *testing.T) {
	now := time.Now()
	threeDaysAgo := now.Add(-3 * 24 * time.Hour)
	eightDaysAgo := now.Add(-8 * 24 * time.Hour)

	tests := []struct {
		name          string
		lastGen       *time.Time
		setupMock     func(*MockTaskRepository)
		expected      bool
		expectedError error
	}{
		{
			name:    "never generated",
			lastGen: nil,
			setupMock: func(m *MockTaskRepository) {
				m.On("HasProcessing", mock.Anything, uint(1)).Return(false, nil)
			},
			expected: true,
		},
		{
			name:      "within cooldown",
			lastGen:   &threeDaysAgo,
			setupMock: func(m *MockTaskRepository) {},
			expected:  false,
		},
		{
			name:    "cooldown elapsed",
			lastGen: &eightDaysAgo,
			setupMock: func(m *MockTaskRepository) {
				m.On("HasProcessing", mock.Anything, uint(1)).Return(false, nil)
			},
			expected: true,
		},
		{
			name:    "cooldown elapsed but task still processing",
			lastGen: &eightDaysAgo,
			setupMock: func(m *MockTaskRepository) {
				m.On("HasProcessing", mock.Anything, uint(1)).Return(true, nil)
			},
			expected: false,
		},
		{
			name:    "ledger error",
			lastGen: nil,
			setupMock: func(m *MockTaskRepository) {
				m.On("HasProcessing", mock.Anything, uint(1)).Return(false, errors.New("db down"))
			},
			expected:      false,
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskRepository)
			tt.setupMock(mockTasks)

			policy := NewEligibilityPolicy(mockTasks)
			user := &model.User{ID: 1, Username: "linus", LastGeneration: tt.lastGen}

			ok, err := policy.CanGenerate(context.Background(), user)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.False(t, ok)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, ok)
			}
			mockTasks.AssertExpectations(t)
		})
	}
}

func TestEligibilityPolicy_CooldownBoundary(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockTasks.On("HasProcessing", mock.Anything, uint(1)).Return(false, nil)
	policy := NewEligibilityPolicy(mockTasks)

	// A generation exactly one cooldown plus a margin ago is allowed again.
	boundary := time.Now().Add(-generationCooldown - time.Minute)
	user := &model.User{ID: 1, LastGeneration: &boundary}

	ok, err := policy.CanGenerate(context.Background(), user)
	assert.NoError(t, err)
	assert.True(t, ok)

	// One minute short of the cooldown still blocks.
	tooSoon := time.Now().Add(-generationCooldown + time.Minute)
	user.LastGeneration = &tooSoon
	ok, err = policy.CanGenerate(context.Background(), user)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEligibilityPolicy_DaysUntilNextGeneration(t *testing.T) {
	policy := NewEligibilityPolicy(new(MockTaskRepository))

	t.Run("never generated", func(t *testing.T) {
		user := &model.User{ID: 1}
		assert.Equal(t, 0, policy.DaysUntilNextGeneration(user))
	})

	t.Run("just generated reports the full horizon", func(t *testing.T) {
		now := time.Now()
		user := &model.User{ID: 1, LastGeneration: &now}
		days := policy.DaysUntilNextGeneration(user)
		assert.InDelta(t, generationHorizonDays, days, 1)
	})

	t.Run("past the horizon clamps to zero", func(t *testing.T) {
		longAgo := time.Now().AddDate(-2, 0, 0)
		user := &model.User{ID: 1, LastGeneration: &longAgo}
		assert.Equal(t, 0, policy.DaysUntilNextGeneration(user))
	})
}
