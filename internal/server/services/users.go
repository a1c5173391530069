// Package services implements the server's application logic on top of the
// repository layer.
package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelichko/skillswap/internal/common"
	"github.com/avelichko/skillswap/internal/dbx"
	"github.com/avelichko/skillswap/internal/server/auth"
	"github.com/avelichko/skillswap/internal/server/config"
	"github.com/avelichko/skillswap/internal/server/models"
	"github.com/avelichko/skillswap/internal/server/repositories/repomanager"
)

var (
	// ErrCodeInvalid means the submitted verification code does not match the
	// one issued for the email.
	ErrCodeInvalid = errors.New("incorrect verification code")

	// ErrCodeExpired means the issued code's validity window has closed.
	ErrCodeExpired = errors.New("verification code expired")
)

type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	jwtSecret               []byte
	sessionValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
	}
}

// Signup registers a new, unverified account.
func (s *UserService) Signup(ctx context.Context, name, email, password, location string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Location:     location,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns the user.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Directory lists verified members for target selection.
func (s *UserService) Directory(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).ListVerified(ctx)
}

// SessionToken issues a signed session token for the user.
func (s *UserService) SessionToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.sessionValidityDuration)
}

// SessionValidity returns how long issued session tokens stay valid.
func (s *UserService) SessionValidity() time.Duration {
	return s.sessionValidityDuration
}

func hashCode(code string) []byte {
	h := sha256.Sum256([]byte(code))
	return h[:]
}

// IssueCode generates a fresh verification code for the email, superseding
// any earlier one, and returns the plain code for delivery. Only the hash is
// stored.
func (s *UserService) IssueCode(ctx context.Context, email, userName string) (string, error) {

	code, err := common.RandomDigits(common.OTPDigits)
	if err != nil {
		return "", common.ErrorInternal
	}

	vc := &models.VerificationCode{
		Email:     email,
		UserName:  userName,
		CodeHash:  hashCode(code),
		ExpiresAt: time.Now().Add(common.VerificationWindow),
	}

	repo := s.repomanager.Verifications(s.db)
	if err := repo.Upsert(ctx, vc); err != nil {
		return "", common.ErrorInternal
	}

	return code, nil
}

// VerifyCode checks the submitted code for the email and, on success,
// consumes it and returns the verified user. A first-time email gets an
// account created on the spot; an existing account is marked verified.
func (s *UserService) VerifyCode(ctx context.Context, email, code string) (*models.User, error) {

	vcRepo := s.repomanager.Verifications(s.db)

	vc, err := vcRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrCodeInvalid
		}
		return nil, common.ErrorInternal
	}

	if time.Now().After(vc.ExpiresAt) {
		return nil, ErrCodeExpired
	}

	if subtle.ConstantTimeCompare(vc.CodeHash, hashCode(code)) != 1 {
		return nil, ErrCodeInvalid
	}

	var user *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Verifications(tx).Delete(ctx, email); err != nil {
			return err
		}

		userRepo := s.repomanager.Users(tx)
		user, err = userRepo.GetByEmail(ctx, email)

		if errors.Is(err, common.ErrorNotFound) {
			// first-time email: create the account on the spot
			// no password yet: the account is OTP-only until one is set
			user, err = userRepo.Create(ctx, &models.User{
				Name:         vc.UserName,
				Email:        email,
				PasswordHash: []byte{},
				Verified:     true,
			})
			return err
		}
		if err != nil {
			return err
		}

		user.Verified = true
		return userRepo.MarkVerified(ctx, user.ID)
	})

	if err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}
