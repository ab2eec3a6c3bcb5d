package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
	"github.com/taellinglin/LingTreasury/internal/sanitize"
)

const recentTaskLimit = 10

// Profile is everything a profile page needs in one call.
type Profile struct {
	User          *model.User            `json:"user"`
	Tasks         []model.GenerationTask `json:"generation_tasks"`
	Banknotes     []model.Banknote       `json:"banknotes"`
	DaysUntilNext int                    `json:"days_until_next_generation"`
}

// WalletDenomination groups the latest front/back artifact of one
// denomination in a user's wallet.
type WalletDenomination struct {
	Denomination string `json:"denomination"`
	FrontPath    string `json:"front_path,omitempty"`
	BackPath     string `json:"back_path,omitempty"`
}

// UserService handles profile, bio, and wallet operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetProfile(ctx context.Context, username string, viewerID uint) (*Profile, error)
	UpdateBio(ctx context.Context, userID uint, rawBio string) (string, error)
	Wallet(ctx context.Context, username string) ([]WalletDenomination, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	users      repository.UserRepository
	tasks      repository.TaskRepository
	notes      repository.BanknoteRepository
	policy     *EligibilityPolicy
	imagesRoot string
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	notes repository.BanknoteRepository,
	policy *EligibilityPolicy,
	imagesRoot string,
) UserService {
	return &userService{
		users:      users,
		tasks:      tasks,
		notes:      notes,
		policy:     policy,
		imagesRoot: imagesRoot,
	}
}

// ListUsers returns all users ordered by username, for the gallery index.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListOrdered(ctx)
}

// FindByID loads one user.
func (s *userService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetProfile assembles the profile page: the user, their ten most recent
// generation attempts, and their banknotes. Owners see private notes,
// everyone else only public ones.
func (s *userService) GetProfile(ctx context.Context, username string, viewerID uint) (*Profile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	tasks, err := s.tasks.ListRecentByUser(ctx, user.ID, recentTaskLimit)
	if err != nil {
		return nil, err
	}

	var notes []model.Banknote
	if viewerID == user.ID {
		notes, err = s.notes.ListByUser(ctx, user.ID)
	} else {
		notes, err = s.notes.ListPublicByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	sortBanknotes(notes)

	return &Profile{
		User:          user,
		Tasks:         tasks,
		Banknotes:     notes,
		DaysUntilNext: s.policy.DaysUntilNextGeneration(user),
	}, nil
}

// UpdateBio sanitizes and stores the user's biography, returning the clean
// version.
func (s *userService) UpdateBio(ctx context.Context, userID uint, rawBio string) (string, error) {
	clean := sanitize.Bio(rawBio)
	if err := s.users.UpdateBio(ctx, userID, clean); err != nil {
		return "", err
	}
	return clean, nil
}

// Wallet scans the user's output directory and reports, per denomination,
// the newest front and back artifact.
func (s *userService) Wallet(ctx context.Context, username string) ([]WalletDenomination, error) {
	root := filepath.Join(s.imagesRoot, username)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var wallet []WalletDenomination
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		denomPath := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(denomPath)
		if err != nil {
			continue
		}

		var fronts, backs []string
		for _, file := range files {
			name := file.Name()
			if !strings.HasSuffix(strings.ToLower(name), ".svg") {
				continue
			}
			if strings.Contains(strings.ToUpper(name), "_FRONT") {
				fronts = append(fronts, name)
			} else {
				backs = append(backs, name)
			}
		}
		if len(fronts) == 0 && len(backs) == 0 {
			continue
		}

		sort.Strings(fronts)
		sort.Strings(backs)
		denom := WalletDenomination{Denomination: entry.Name()}
		if len(fronts) > 0 {
			denom.FrontPath = filepath.Join(denomPath, fronts[len(fronts)-1])
		}
		if len(backs) > 0 {
			denom.BackPath = filepath.Join(denomPath, backs[len(backs)-1])
		}
		wallet = append(wallet, denom)
	}

	sort.Slice(wallet, func(i, j int) bool {
		return wallet[i].Denomination < wallet[j].Denomination
	})
	return wallet, nil
}

var digitsPattern = regexp.MustCompile(`\d+`)

// sortBanknotes orders notes by numeric denomination value, fronts before
// backs, then by the denomination string.
func sortBanknotes(notes []model.Banknote) {
	sideOrder := func(side model.NoteSide) int {
		switch side {
		case model.SideFront:
			return 0
		case model.SideBack:
			return 1
		default:
			return 2
		}
	}
	numeric := func(denom string) int {
		if match := digitsPattern.FindString(denom); match != "" {
			if v, err := strconv.Atoi(match); err == nil {
				return v
			}
		}
		return 0
	}

	sort.SliceStable(notes, func(i, j int) bool {
		ni, nj := numeric(notes[i].Denomination), numeric(notes[j].Denomination)
		if ni != nj {
			return ni < nj
		}
		si, sj := sideOrder(notes[i].Side), sideOrder(notes[j].Side)
		if si != sj {
			return si < sj
		}
		return notes[i].Denomination < notes[j].Denomination
	})
}
