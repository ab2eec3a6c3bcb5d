package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/model"
)

type userFixture struct {
	users *MockUserRepository
	tasks *MockTaskRepository
	notes *MockBanknoteRepository
}

func newUserFixture(imagesRoot string) (*userFixture, UserService) {
	f := &userFixture{
		users: new(MockUserRepository),
		tasks: new(MockTaskRepository),
		notes: new(MockBanknoteRepository),
	}
	svc := NewUserService(f.users, f.tasks, f.notes, NewEligibilityPolicy(f.tasks), imagesRoot)
	return f, svc
}

func TestUserService_GetProfile(t *testing.T) {
	owner := &model.User{ID: 1, Username: "linus"}

	t.Run("owner sees private banknotes", func(t *testing.T) {
		f, svc := newUserFixture(t.TempDir())
		f.users.On("FindByUsername", mock.Anything, "linus").Return(owner, nil)
		f.tasks.On("ListRecentByUser", mock.Anything, uint(1), recentTaskLimit).
			Return([]model.GenerationTask{{ID: 4}}, nil)
		f.notes.On("ListByUser", mock.Anything, uint(1)).
			Return([]model.Banknote{{ID: 1, IsPublic: false}}, nil)

		profile, err := svc.GetProfile(context.Background(), "linus", 1)

		assert.NoError(t, err)
		assert.Equal(t, owner, profile.User)
		assert.Len(t, profile.Tasks, 1)
		assert.Len(t, profile.Banknotes, 1)
		f.notes.AssertNotCalled(t, "ListPublicByUser", mock.Anything, mock.Anything)
	})

	t.Run("visitor sees only public banknotes", func(t *testing.T) {
		f, svc := newUserFixture(t.TempDir())
		f.users.On("FindByUsername", mock.Anything, "linus").Return(owner, nil)
		f.tasks.On("ListRecentByUser", mock.Anything, uint(1), recentTaskLimit).
			Return([]model.GenerationTask{}, nil)
		f.notes.On("ListPublicByUser", mock.Anything, uint(1)).
			Return([]model.Banknote{{ID: 2, IsPublic: true}}, nil)

		profile, err := svc.GetProfile(context.Background(), "linus", 7)

		assert.NoError(t, err)
		assert.Len(t, profile.Banknotes, 1)
		f.notes.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		f, svc := newUserFixture(t.TempDir())
		f.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		profile, err := svc.GetProfile(context.Background(), "ghost", 0)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, profile)
	})
}

func TestUserService_UpdateBio(t *testing.T) {
	f, svc := newUserFixture(t.TempDir())

	var stored string
	f.users.On("UpdateBio", mock.Anything, uint(1), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			stored = args.String(2)
		}).Return(nil)

	clean, err := svc.UpdateBio(context.Background(), 1, "[b]hello[/b] <script>alert(1)</script>")

	assert.NoError(t, err)
	assert.Equal(t, stored, clean)
	assert.Contains(t, clean, "<strong>hello</strong>")
	assert.NotContains(t, clean, "<script>")
}

func TestUserService_Wallet(t *testing.T) {
	root := t.TempDir()
	identity := "linus"

	write := func(parts ...string) {
		path := filepath.Join(append([]string{root, identity}, parts...)...)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<svg/>"), 0o644))
	}
	write("1", "1_a_FRONT.svg")
	write("1", "1_b_FRONT.svg")
	write("1", "1_a_back.svg")
	write("100", "100_a_back.svg")

	_, svc := newUserFixture(root)
	wallet, err := svc.Wallet(context.Background(), identity)

	require.NoError(t, err)
	require.Len(t, wallet, 2)

	assert.Equal(t, "1", wallet[0].Denomination)
	assert.Equal(t, filepath.Join(root, identity, "1", "1_b_FRONT.svg"), wallet[0].FrontPath,
		"the lexically newest front wins")
	assert.Equal(t, filepath.Join(root, identity, "1", "1_a_back.svg"), wallet[0].BackPath)

	assert.Equal(t, "100", wallet[1].Denomination)
	assert.Empty(t, wallet[1].FrontPath)
	assert.NotEmpty(t, wallet[1].BackPath)
}

func TestUserService_Wallet_NoDirectory(t *testing.T) {
	_, svc := newUserFixture(t.TempDir())

	wallet, err := svc.Wallet(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, wallet)
}

func TestSortBanknotes(t *testing.T) {
	notes := []model.Banknote{
		{ID: 1, Denomination: "100", Side: model.SideBack},
		{ID: 2, Denomination: "5", Side: model.SideBack},
		{ID: 3, Denomination: "100", Side: model.SideFront},
		{ID: 4, Denomination: "5", Side: model.SideFront},
		{ID: 5, Denomination: "20", Side: model.SideFront},
	}

	sortBanknotes(notes)

	order := make([]uint, 0, len(notes))
	for _, n := range notes {
		order = append(order, n.ID)
	}
	// Ascending numeric value, fronts before backs.
	assert.Equal(t, []uint{4, 2, 5, 3, 1}, order)
}
