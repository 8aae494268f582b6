package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"wonnda/internal/domain"
	"wonnda/internal/repository"
)

// fakeStore simula las tablas users, perfiles y email_verification_codes en memoria.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]domain.User
	retailers map[string]domain.RetailerProfile
	suppliers map[string]domain.SupplierProfile
	codes     []domain.EmailVerificationCode
	drafts    map[string]domain.OnboardingDraft

	createCalls int
	createErr   error
	lookupErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]domain.User{},
		retailers: map[string]domain.RetailerProfile{},
		suppliers: map[string]domain.SupplierProfile{},
		drafts:    map[string]domain.OnboardingDraft{},
	}
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.lookupErr != nil {
		return domain.User{}, f.s.lookupErr
	}
	if u, ok := f.s.users[id]; ok {
		return u, nil
	}
	return domain.User{}, pgx.ErrNoRows
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.lookupErr != nil {
		return domain.User{}, f.s.lookupErr
	}
	for _, u := range f.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (f fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (f fakeUsers) UpdateProfile(_ context.Context, id string, update repository.UserUpdate) (domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.PhoneCountryCode != nil {
		u.PhoneCountryCode = *update.PhoneCountryCode
	}
	u.UpdatedAt = update.UpdatedAt
	f.s.users[id] = u
	return u, nil
}

type fakeCodes struct{ s *fakeStore }

func (f fakeCodes) Replace(_ context.Context, code domain.EmailVerificationCode) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.deleteCodesLocked(code.Email)
	f.s.codes = append(f.s.codes, code)
	return nil
}

func (f fakeCodes) FindActive(_ context.Context, email, code string, now time.Time) (domain.EmailVerificationCode, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.codes {
		if c.Email == email && c.Code == code && !c.Verified && c.ActiveAt(now) {
			return c, nil
		}
	}
	return domain.EmailVerificationCode{}, pgx.ErrNoRows
}

func (f fakeCodes) MarkVerified(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range f.s.codes {
		if f.s.codes[i].ID == id {
			f.s.codes[i].Verified = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f fakeCodes) FindVerified(_ context.Context, email string, now time.Time) (domain.EmailVerificationCode, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.codes {
		if c.Email == email && c.Verified && c.ActiveAt(now) {
			return c, nil
		}
	}
	return domain.EmailVerificationCode{}, pgx.ErrNoRows
}

func (f fakeCodes) DeleteByEmail(_ context.Context, email string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.deleteCodesLocked(email)
	return nil
}

func (s *fakeStore) deleteCodesLocked(email string) {
	kept := s.codes[:0]
	for _, c := range s.codes {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	s.codes = kept
}

func (s *fakeStore) codeFor(email string) (domain.EmailVerificationCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.codes {
		if c.Email == email {
			return c, true
		}
	}
	return domain.EmailVerificationCode{}, false
}

type fakeAccounts struct{ s *fakeStore }

func (f fakeAccounts) create(user domain.User) error {
	f.s.createCalls++
	if f.s.createErr != nil {
		return f.s.createErr
	}
	for _, u := range f.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.s.users[user.ID] = user
	f.s.deleteCodesLocked(user.Email)
	return nil
}

func (f fakeAccounts) CreateRetailerAccount(_ context.Context, user domain.User, profile domain.RetailerProfile) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.create(user); err != nil {
		return err
	}
	f.s.retailers[user.ID] = profile
	return nil
}

func (f fakeAccounts) CreateSupplierAccount(_ context.Context, user domain.User, profile domain.SupplierProfile) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.create(user); err != nil {
		return err
	}
	f.s.suppliers[user.ID] = profile
	return nil
}

type fakeProfiles struct{ s *fakeStore }

func (f fakeProfiles) GetRetailerByUserID(_ context.Context, userID string) (domain.RetailerProfile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.retailers[userID]; ok {
		return p, nil
	}
	return domain.RetailerProfile{}, pgx.ErrNoRows
}

func (f fakeProfiles) GetSupplierByUserID(_ context.Context, userID string) (domain.SupplierProfile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.suppliers[userID]; ok {
		return p, nil
	}
	return domain.SupplierProfile{}, pgx.ErrNoRows
}

type fakeDrafts struct{ s *fakeStore }

func (f fakeDrafts) Create(_ context.Context, draft domain.OnboardingDraft) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.drafts[draft.ID] = cloneDraft(draft)
	return nil
}

func (f fakeDrafts) Get(_ context.Context, id string) (domain.OnboardingDraft, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drafts[id]
	if !ok {
		return domain.OnboardingDraft{}, pgx.ErrNoRows
	}
	return cloneDraft(d), nil
}

func (f fakeDrafts) Update(_ context.Context, draft domain.OnboardingDraft) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.drafts[draft.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.s.drafts[draft.ID] = cloneDraft(draft)
	return nil
}

func cloneDraft(d domain.OnboardingDraft) domain.OnboardingDraft {
	answers := make(map[string]json.RawMessage, len(d.Answers))
	for k, v := range d.Answers {
		answers[k] = append(json.RawMessage(nil), v...)
	}
	d.Answers = answers
	return d
}

type sentCode struct {
	to   string
	code string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (f *fakeSender) SendVerificationCode(_ context.Context, to, code string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentCode{to: to, code: code})
	return nil
}

func (f *fakeSender) last() sentCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentCode{}
	}
	return f.sent[len(f.sent)-1]
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) bool { return true }

// testClock es un reloj manual para probar vencimientos.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
