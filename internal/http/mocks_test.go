package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"wonnda/internal/domain"
	"wonnda/internal/repository"
	"wonnda/internal/service"
)

type memStore struct {
	mu        sync.Mutex
	users     map[string]domain.User
	retailers map[string]domain.RetailerProfile
	suppliers map[string]domain.SupplierProfile
	codes     []domain.EmailVerificationCode
	drafts    map[string]domain.OnboardingDraft
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]domain.User{},
		retailers: map[string]domain.RetailerProfile{},
		suppliers: map[string]domain.SupplierProfile{},
		drafts:    map[string]domain.OnboardingDraft{},
	}
}

func (m *memStore) userByEmail(email string) (domain.User, bool) {
	for _, u := range m.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type mockUserRepo struct{ m *memStore }

func (r mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		return u, nil
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.userByEmail(email); ok {
		return u, nil
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, ok := r.m.userByEmail(email)
	return ok, nil
}

func (r mockUserRepo) UpdateProfile(_ context.Context, id string, update repository.UserUpdate) (domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
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
	r.m.users[id] = u
	return u, nil
}

type mockCodeRepo struct{ m *memStore }

func (r mockCodeRepo) Replace(_ context.Context, code domain.EmailVerificationCode) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.dropCodes(code.Email)
	r.m.codes = append(r.m.codes, code)
	return nil
}

func (r mockCodeRepo) FindActive(_ context.Context, email, code string, now time.Time) (domain.EmailVerificationCode, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.codes {
		if c.Email == email && c.Code == code && !c.Verified && c.ActiveAt(now) {
			return c, nil
		}
	}
	return domain.EmailVerificationCode{}, pgx.ErrNoRows
}

func (r mockCodeRepo) MarkVerified(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.codes {
		if r.m.codes[i].ID == id {
			r.m.codes[i].Verified = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r mockCodeRepo) FindVerified(_ context.Context, email string, now time.Time) (domain.EmailVerificationCode, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.codes {
		if c.Email == email && c.Verified && c.ActiveAt(now) {
			return c, nil
		}
	}
	return domain.EmailVerificationCode{}, pgx.ErrNoRows
}

func (r mockCodeRepo) DeleteByEmail(_ context.Context, email string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.dropCodes(email)
	return nil
}

func (m *memStore) dropCodes(email string) {
	kept := m.codes[:0]
	for _, c := range m.codes {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	m.codes = kept
}

type mockAccountRepo struct{ m *memStore }

func (r mockAccountRepo) insert(user domain.User) error {
	if _, ok := r.m.userByEmail(user.Email); ok {
		return repository.ErrDuplicateEmail
	}
	r.m.users[user.ID] = user
	r.m.dropCodes(user.Email)
	return nil
}

func (r mockAccountRepo) CreateRetailerAccount(_ context.Context, user domain.User, profile domain.RetailerProfile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.insert(user); err != nil {
		return err
	}
	r.m.retailers[user.ID] = profile
	return nil
}

func (r mockAccountRepo) CreateSupplierAccount(_ context.Context, user domain.User, profile domain.SupplierProfile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.insert(user); err != nil {
		return err
	}
	r.m.suppliers[user.ID] = profile
	return nil
}

type mockProfileRepo struct{ m *memStore }

func (r mockProfileRepo) GetRetailerByUserID(_ context.Context, userID string) (domain.RetailerProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if p, ok := r.m.retailers[userID]; ok {
		return p, nil
	}
	return domain.RetailerProfile{}, pgx.ErrNoRows
}

func (r mockProfileRepo) GetSupplierByUserID(_ context.Context, userID string) (domain.SupplierProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if p, ok := r.m.suppliers[userID]; ok {
		return p, nil
	}
	return domain.SupplierProfile{}, pgx.ErrNoRows
}

type mockDraftRepo struct{ m *memStore }

func (r mockDraftRepo) Create(_ context.Context, d domain.OnboardingDraft) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.drafts[d.ID] = copyDraft(d)
	return nil
}

func (r mockDraftRepo) Get(_ context.Context, id string) (domain.OnboardingDraft, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.drafts[id]
	if !ok {
		return domain.OnboardingDraft{}, pgx.ErrNoRows
	}
	return copyDraft(d), nil
}

func (r mockDraftRepo) Update(_ context.Context, d domain.OnboardingDraft) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.drafts[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.m.drafts[d.ID] = copyDraft(d)
	return nil
}

func copyDraft(d domain.OnboardingDraft) domain.OnboardingDraft {
	answers := make(map[string]json.RawMessage, len(d.Answers))
	for k, v := range d.Answers {
		answers[k] = append(json.RawMessage(nil), v...)
	}
	d.Answers = answers
	return d
}

type mockSender struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (s *mockSender) SendVerificationCode(_ context.Context, to, code string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.codes == nil {
		s.codes = map[string]string{}
	}
	s.codes[to] = code
	return nil
}

func (s *mockSender) codeFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[email]
}

type testServer struct {
	router *gin.Engine
	store  *memStore
	sender *mockSender
}

type serverOptions struct {
	production bool
	limiter    *IPRateLimiter
}

func newTestServer(t *testing.T, opts serverOptions) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := newMemStore()
	sender := &mockSender{}

	accounts := service.NewAccountService(logger, mockUserRepo{store}, mockCodeRepo{store}, mockAccountRepo{store}, sender, nil,
		service.WithOTPEcho(!opts.production))
	credentials := service.NewCredentialService(logger, mockUserRepo{store}, nil)
	sessions := service.NewSessionService("test-secret", service.NewMemorySessionStore())
	profiles := service.NewProfileService(logger, mockUserRepo{store}, mockProfileRepo{store})
	onboarding := service.NewOnboardingService(logger, mockDraftRepo{store}, accounts)

	h := Handlers{
		Auth:       NewAuthHandler(logger, accounts, credentials, sessions, sender, opts.production, !opts.production),
		Onboarding: NewOnboardingHandler(logger, onboarding, sessions, opts.production),
		Profile:    NewProfileHandler(logger, profiles),
	}
	router := NewRouter(logger, sessions, h, RouterOptions{AuthLimiter: opts.limiter})
	return testServer{router: router, store: store, sender: sender}
}

type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Data    json.RawMessage     `json:"data"`
	Details map[string][]string `json:"details"`
}

func (s testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeData(t *testing.T, resp apiResponse, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", string(resp.Data), err)
	}
}

var errSMTPDown = errors.New("dial tcp: connection refused")
