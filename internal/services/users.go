package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/auth"
	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/config"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophcal/internal/validation"
)

const entityUser = "user"

// UserService handles accounts: registration, password authentication,
// login tokens, profile changes and account removal.
type UserService struct {
	base
	secret        []byte
	tokenValidity time.Duration
	cost          int
}

// NewUserService constructs a UserService using repositories and config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, opts ...Option) *UserService {
	return &UserService{
		base:          newBase(db, m, "users", opts),
		secret:        []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		cost:          auth.NormalizeCost(cfg.BcryptCost),
	}
}

// Register creates an account. Only the bcrypt hash of the password is
// stored. A taken email fails with common.ErrorDuplicateEmail.
func (s *UserService) Register(ctx context.Context, r models.Registration) (user *models.User, err error) {
	defer s.observe(entityUser, "register", time.Now(), &err)

	if err := validation.Registration(r); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(r.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user = &models.User{
		Email:        r.Email,
		PasswordHash: hash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CreatedAt:    s.stamp(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)
		if err := emailFree(ctx, repo.GetByEmail, user.Email, 0); err != nil {
			return err
		}
		_, err := repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both give (nil, false, nil) after the same amount of bcrypt
// work; only storage failures are errors.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (user *models.User, ok bool, err error) {
	defer s.observe(entityUser, "authenticate", time.Now(), &err)

	user, err = s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password, s.cost)
			return nil, false, nil
		}
		return nil, false, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug(ctx, "password mismatch", "user_id", user.ID)
		return nil, false, nil
	}
	return user, true, nil
}

// Login authenticates and issues a signed token carrying the user id.
// Failed authentication yields common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, ok, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.secret, s.tokenValidity)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, user, nil
}

// UserFromToken resolves a token issued by Login. Tokens of deleted users
// are invalid.
func (s *UserService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	id, err := auth.GetUserIDFromToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInvalidToken
	}
	return user, err
}

func (s *UserService) Get(ctx context.Context, id int64) (user *models.User, err error) {
	defer s.observe(entityUser, "get", time.Now(), &err)
	return s.repos.Users(s.db).GetByID(ctx, id)
}

// List returns users by ascending id; limit <= 0 means all.
func (s *UserService) List(ctx context.Context, limit int) (list []models.User, err error) {
	defer s.observe(entityUser, "list", time.Now(), &err)
	return s.repos.Users(s.db).List(ctx, limit)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repos.Users(s.db).Count(ctx)
}

// Update applies the non-nil fields of patch. A new password is hashed; the
// merged record is validated before it is written. Email and password changes
// require patch.CurrentPassword: a missing one is a validation error, a wrong
// one common.ErrorUnauthorized.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (user *models.User, err error) {
	defer s.observe(entityUser, "update", time.Now(), &err)

	var hash string
	if patch.Password != nil {
		if err := validation.Password(*patch.Password); err != nil {
			return nil, err
		}
		if hash, err = auth.HashPassword(*patch.Password, s.cost); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Email != nil || patch.Password != nil {
			if err := reauthenticate(current, patch.CurrentPassword); err != nil {
				s.logger.Warn(ctx, "credential change refused", "user_id", id)
				return err
			}
		}

		merged := patch.Apply(*current)
		if hash != "" {
			merged.PasswordHash = hash
		}
		if err := validation.User(&merged); err != nil {
			return err
		}
		if merged.Email != current.Email {
			if err := emailFree(ctx, repo.GetByEmail, merged.Email, id); err != nil {
				return err
			}
		}

		if err := repo.Update(ctx, &merged); err != nil {
			return err
		}
		user = &merged
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	s.logger.Info(ctx, "user updated", "user_id", id, "password_changed", hash != "")
	return user, nil
}

// ChangeEmail re-authenticates the user with password before switching the
// email. A wrong password gives (nil, false, nil) and changes nothing.
func (s *UserService) ChangeEmail(ctx context.Context, id int64, password, newEmail string) (*models.User, bool, error) {
	user, err := s.Update(ctx, id, models.UserPatch{Email: &newEmail, CurrentPassword: &password})
	if errors.Is(err, common.ErrorUnauthorized) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Delete removes the user together with the events in their calendars,
// the events they authored elsewhere and their calendars.
func (s *UserService) Delete(ctx context.Context, id int64) (err error) {
	defer s.observe(entityUser, "delete", time.Now(), &err)

	var inCalendars, authored, calendars int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Users(tx).GetByID(ctx, id); err != nil {
			return err
		}

		evRepo := s.repos.Events(tx)
		var err error
		if inCalendars, err = evRepo.DeleteByCalendarOwner(ctx, id); err != nil {
			return err
		}
		if authored, err = evRepo.DeleteByCreator(ctx, id); err != nil {
			return err
		}
		if calendars, err = s.repos.Calendars(tx).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		return s.repos.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", id,
		"calendars", calendars, "events", inCalendars+authored)
	return nil
}

// reauthenticate checks password against the stored hash of u.
func reauthenticate(u *models.User, password *string) error {
	if password == nil {
		return common.NewFieldError("current_password", common.ErrorMissingField)
	}
	if !auth.CheckPassword(u.PasswordHash, *password) {
		return common.ErrorUnauthorized
	}
	return nil
}

// emailFree fails with a duplicate email error when email belongs to an
// account other than self.
func emailFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), email string, self int64) error {
	other, err := lookup(ctx, email)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != self:
		return common.NewFieldError("email", common.ErrorDuplicateEmail)
	}
	return nil
}
