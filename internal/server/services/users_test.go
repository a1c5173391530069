package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelichko/skillswap/internal/common"
	"github.com/avelichko/skillswap/internal/dbx"
	"github.com/avelichko/skillswap/internal/server/config"
	"github.com/avelichko/skillswap/internal/server/models"
	swapsrepo "github.com/avelichko/skillswap/internal/server/repositories/swaps"
	usersrepo "github.com/avelichko/skillswap/internal/server/repositories/users"
	verificationsrepo "github.com/avelichko/skillswap/internal/server/repositories/verifications"
)

// --- fakes ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	created   []*models.User
	createErr error
	verified  []string
	photoKeys map[string]string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail:   map[string]*models.User{},
		byID:      map[string]*models.User{},
		photoKeys: map[string]string{},
	}
}

func (f *fakeUsersRepo) add(u *models.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-created"
	u.CreatedAt = time.Now()
	f.created = append(f.created, u)
	f.add(u)
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) ListVerified(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.byID {
		if u.Verified {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsersRepo) MarkVerified(ctx context.Context, id string) error {
	f.verified = append(f.verified, id)
	return nil
}

func (f *fakeUsersRepo) SetPhotoKey(ctx context.Context, id, key string) error {
	f.photoKeys[id] = key
	return nil
}

type fakeVerificationsRepo struct {
	stored  map[string]*models.VerificationCode
	deleted []string
}

func newFakeVerificationsRepo() *fakeVerificationsRepo {
	return &fakeVerificationsRepo{stored: map[string]*models.VerificationCode{}}
}

func (f *fakeVerificationsRepo) Upsert(ctx context.Context, vc *models.VerificationCode) error {
	f.stored[vc.Email] = vc
	return nil
}

func (f *fakeVerificationsRepo) GetByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	if vc, ok := f.stored[email]; ok {
		return vc, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeVerificationsRepo) Delete(ctx context.Context, email string) error {
	delete(f.stored, email)
	f.deleted = append(f.deleted, email)
	return nil
}

type fakeSwapsRepo struct {
	byID      map[string]*models.SwapRequest
	listOut   []*models.SwapRequest
	created   []*models.SwapRequest
	updateErr error
}

func newFakeSwapsRepo() *fakeSwapsRepo {
	return &fakeSwapsRepo{byID: map[string]*models.SwapRequest{}}
}

func (f *fakeSwapsRepo) Create(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error) {
	req.ID = "sr-created"
	f.created = append(f.created, req)
	f.byID[req.ID] = req
	return req, nil
}

func (f *fakeSwapsRepo) GetByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSwapsRepo) ListForUser(ctx context.Context, userID string) ([]*models.SwapRequest, error) {
	return f.listOut, nil
}

func (f *fakeSwapsRepo) Update(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	req.UpdatedAt = time.Now()
	f.byID[req.ID] = req
	return req, nil
}

type fakeRepoManager struct {
	users         *fakeUsersRepo
	verifications *fakeVerificationsRepo
	swaps         *fakeSwapsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:         newFakeUsersRepo(),
		verifications: newFakeVerificationsRepo(),
		swaps:         newFakeSwapsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.users }
func (m *fakeRepoManager) Verifications(db dbx.DBTX) verificationsrepo.Repository {
	return m.verifications
}
func (m *fakeRepoManager) Swaps(db dbx.DBTX) swapsrepo.Repository { return m.swaps }

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

// --- tests ---

func TestSignup_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	svc := newUserService(t, db, rm)

	u, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "hunter22", "Riga")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if u.Verified {
		t.Fatalf("new account must start unverified")
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("hunter22")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	rm.users.add(&models.User{ID: "u1", Email: "alice@example.com"})
	svc := newUserService(t, db, rm)

	_, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pw", "")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	rm.users.add(&models.User{ID: "u1", Email: "alice@example.com", PasswordHash: hash})
	svc := newUserService(t, db, rm)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "alice@example.com", "correct"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for unknown email, got %v", err)
	}
}

func TestIssueCode_StoresHashedCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	svc := newUserService(t, db, rm)

	code, err := svc.IssueCode(context.Background(), "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("IssueCode error: %v", err)
	}
	if len(code) != common.OTPDigits {
		t.Fatalf("expected %d digits, got %q", common.OTPDigits, code)
	}

	vc := rm.verifications.stored["alice@example.com"]
	if vc == nil {
		t.Fatalf("code was not stored")
	}
	if string(vc.CodeHash) == code {
		t.Fatalf("plain code must not be stored")
	}
	if subtleEqual(vc.CodeHash, hashCode(code)) != true {
		t.Fatalf("stored hash does not match issued code")
	}
	until := time.Until(vc.ExpiresAt)
	if until < common.VerificationWindow-time.Minute || until > common.VerificationWindow {
		t.Fatalf("unexpected expiry: %v", until)
	}
}

func subtleEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVerifyCode_ExistingUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	rm.users.add(&models.User{ID: "u1", Email: "alice@example.com"})
	rm.verifications.stored["alice@example.com"] = &models.VerificationCode{
		Email:     "alice@example.com",
		CodeHash:  hashCode("123456"),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	svc := newUserService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectCommit()

	u, err := svc.VerifyCode(context.Background(), "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("VerifyCode error: %v", err)
	}
	if !u.Verified {
		t.Fatalf("user must be verified")
	}
	if len(rm.verifications.deleted) != 1 {
		t.Fatalf("code must be consumed")
	}
	if len(rm.users.verified) != 1 || rm.users.verified[0] != "u1" {
		t.Fatalf("existing user must be marked verified")
	}
}

func TestVerifyCode_AutoCreatesUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	rm.verifications.stored["new@example.com"] = &models.VerificationCode{
		Email:     "new@example.com",
		UserName:  "Newbie",
		CodeHash:  hashCode("654321"),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	svc := newUserService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectCommit()

	u, err := svc.VerifyCode(context.Background(), "new@example.com", "654321")
	if err != nil {
		t.Fatalf("VerifyCode error: %v", err)
	}
	if u.Name != "Newbie" || !u.Verified {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(rm.users.created) != 1 {
		t.Fatalf("account must be created on first verification")
	}
}

func TestVerifyCode_WrongCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	rm.verifications.stored["alice@example.com"] = &models.VerificationCode{
		Email:     "alice@example.com",
		CodeHash:  hashCode("123456"),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	svc := newUserService(t, db, rm)

	_, err := svc.VerifyCode(context.Background(), "alice@example.com", "000000")
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}
	if _, ok := rm.verifications.stored["alice@example.com"]; !ok {
		t.Fatalf("failed attempt must not consume the code")
	}
}

func TestVerifyCode_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	rm.verifications.stored["alice@example.com"] = &models.VerificationCode{
		Email:     "alice@example.com",
		CodeHash:  hashCode("123456"),
		ExpiresAt: time.Now().Add(-time.Second),
	}
	svc := newUserService(t, db, rm)

	_, err := svc.VerifyCode(context.Background(), "alice@example.com", "123456")
	if !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
}

func TestVerifyCode_NoIssuedCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	svc := newUserService(t, db, newFakeRepoManager())

	_, err := svc.VerifyCode(context.Background(), "ghost@example.com", "123456")
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	svc := newUserService(t, db, newFakeRepoManager())

	tok, err := svc.SessionToken("u1")
	if err != nil {
		t.Fatalf("SessionToken error: %v", err)
	}
	if tok == "" {
		t.Fatalf("empty token")
	}
}
