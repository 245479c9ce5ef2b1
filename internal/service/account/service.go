package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kindling-app/kindling-backend/internal/app"
	"github.com/kindling-app/kindling-backend/internal/db"
	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
	"github.com/kindling-app/kindling-backend/internal/repository"
)

// Service implements user registration, authentication and profile browsing.
// It contains the business logic on top of the repository layer.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates a new account service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// RegisterInput carries everything needed to create a user.
// Interests, Bio and Location are optional.
type RegisterInput struct {
	Username  string
	Password  string
	Name      string
	Age       int
	Gender    string
	Interests string
	Bio       string
	Location  string
}

// Register creates a new user with a bcrypt-hashed password and returns its id.
//
// Behavior:
//   - Required fields must be non-empty and age positive.
//   - A duplicate username surfaces as a conflict error; the unique index on
//     username is the arbiter, not the application.
func (s *Service) Register(ctx context.Context, in RegisterInput) (uint64, error) {
	s.appCtx.Logger.Debug("Register called", "username", in.Username)

	missing := missingFields(map[string]string{
		"username": in.Username,
		"password": in.Password,
		"name":     in.Name,
		"gender":   in.Gender,
	})
	if len(missing) > 0 {
		return 0, svcErr.Validation("Missing fields: " + strings.Join(missing, ", "))
	}
	if in.Age <= 0 {
		return 0, svcErr.Validation("Age must be a positive integer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, svcErr.Map(err)
	}

	user := db.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Age:          in.Age,
		Gender:       in.Gender,
		Interests:    in.Interests,
		Bio:          in.Bio,
		Location:     in.Location,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, svcErr.Conflict("Username already exists")
		}
		s.appCtx.Logger.Error("user insert failed", "err", err)
		return 0, svcErr.Map(err)
	}

	return user.ID, nil
}

// Authenticate verifies the credentials and returns the user id.
// bcrypt.CompareHashAndPassword does the salted, timing-safe verification;
// unknown usernames and bad passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (uint64, error) {
	s.appCtx.Logger.Debug("Authenticate called", "username", username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, svcErr.Auth("Invalid credentials")
		}
		return 0, svcErr.Map(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, svcErr.Auth("Invalid credentials")
	}

	return user.ID, nil
}

// Get returns a single user or a not-found error.
func (s *Service) Get(ctx context.Context, id uint64) (db.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.User{}, svcErr.NotFound("User not found")
		}
		return db.User{}, svcErr.Map(err)
	}
	return user, nil
}

// Profiles returns the public view of every user except the given one.
// Fails with not-found when the browsing user itself does not exist.
func (s *Service) Profiles(ctx context.Context, userID uint64) ([]db.PublicProfile, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListExcluding(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	profiles := make([]db.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles, nil
}

func missingFields(fields map[string]string) []string {
	// fixed order so error messages are stable
	order := []string{"username", "password", "name", "gender"}
	var missing []string
	for _, k := range order {
		if strings.TrimSpace(fields[k]) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}
