package http

import (
	"net/http"
	"strings"
	"testing"
)

const scenarioPassword = "Aa1!aaaaaaaa"

func retailerPayload(email string) map[string]any {
	return map[string]any{
		"email":                email,
		"password":             scenarioPassword,
		"firstName":            "Ada",
		"lastName":             "Lovelace",
		"phone":                "+1 555 0100",
		"phoneCountryCode":     "+1",
		"companyName":          "Acme",
		"address":              "1 Main St",
		"companyType":          "Retailer",
		"annualRevenue":        "Under $100K",
		"businessGoals":        []string{"Find suppliers"},
		"hasLaunchedProduct":   false,
		"interestedCategories": []string{"Packaging"},
		"productDescription":   "sample",
	}
}

func supplierPayload(email string) map[string]any {
	return map[string]any{
		"email":                  email,
		"password":               scenarioPassword,
		"firstName":              "Grace",
		"lastName":               "Hopper",
		"phone":                  "030 1234",
		"phoneCountryCode":       "+49",
		"companyName":            "Fab GmbH",
		"address":                "Hauptstr. 1",
		"website":                "https://fab.example",
		"companyType":            "Manufacturer",
		"userRole":               "Founder/CEO",
		"teamSize":               "11-50",
		"annualRevenue":          "1m-5m",
		"offerings":              []string{"Private label"},
		"productionTypes":        []string{"Cosmetics"},
		"moqQuantities":          []map[string]string{{"type": "units", "quantity": "500"}},
		"productionOutsourcing":  "Inhouse",
		"manufacturingCountries": []string{"DE"},
		"supportGoals":           []string{"Find retailers"},
		"companyDescription":     strings.Repeat("d", 140),
	}
}

// verifyEmail pide y confirma un código para email.
func (s testServer) verifyEmail(t *testing.T, email string) {
	t.Helper()
	w, resp := s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": email})
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("send verification: %d %+v", w.Code, resp)
	}
	w, resp = s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"email": email, "code": s.sender.codeFor(email)})
	if w.Code != http.StatusOK || resp.Message != "Email verified successfully" {
		t.Fatalf("verify: %d %+v", w.Code, resp)
	}
}

func TestHappyPathRetailer(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w, resp := s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": "a@b.com"})
	if w.Code != http.StatusOK || resp.Message != "Verification code sent successfully" {
		t.Fatalf("unexpected send response: %d %+v", w.Code, resp)
	}
	var sent struct {
		OTP string `json:"otp"`
	}
	decodeData(t, resp, &sent)
	if len(sent.OTP) != 4 || sent.OTP != s.sender.codeFor("a@b.com") {
		t.Fatalf("expected echoed 4 digit code, got %q", sent.OTP)
	}

	w, resp = s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"email": "a@b.com", "code": sent.OTP})
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("verify: %d %+v", w.Code, resp)
	}

	w, resp = s.do(t, http.MethodPost, "/api/auth/signup-retailer", retailerPayload("a@b.com"))
	if w.Code != http.StatusOK || resp.Message != "Account created successfully" {
		t.Fatalf("signup: %d %+v", w.Code, resp)
	}
	var created struct {
		UserID         string `json:"userId"`
		ShouldRedirect bool   `json:"shouldRedirect"`
		RedirectURL    string `json:"redirectUrl"`
	}
	decodeData(t, resp, &created)
	if created.UserID == "" || !created.ShouldRedirect || created.RedirectURL != "/dashboard/retailer" {
		t.Fatalf("unexpected signup data: %+v", created)
	}

	cookie := sessionCookie(w)
	if cookie == nil || !cookie.HttpOnly || cookie.Path != "/" || cookie.MaxAge != 7*24*60*60 || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected session cookie: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatalf("expected insecure cookie outside production")
	}

	w, resp = s.do(t, http.MethodGet, "/dashboard/retailer", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
	var dash struct {
		Retailer struct {
			UserID               string   `json:"userId"`
			CompanyType          string   `json:"companyType"`
			AnnualRevenue        string   `json:"annualRevenue"`
			BusinessGoals        []string `json:"businessGoals"`
			HasLaunchedProduct   bool     `json:"hasLaunchedProduct"`
			InterestedCategories []string `json:"interestedCategories"`
			ProductDescription   string   `json:"productDescription"`
		} `json:"retailer"`
	}
	decodeData(t, resp, &dash)
	r := dash.Retailer
	if r.UserID != created.UserID || r.CompanyType != "Retailer" || r.AnnualRevenue != "Under $100K" ||
		len(r.BusinessGoals) != 1 || r.BusinessGoals[0] != "Find suppliers" || r.HasLaunchedProduct ||
		len(r.InterestedCategories) != 1 || r.InterestedCategories[0] != "Packaging" || r.ProductDescription != "sample" {
		t.Fatalf("profile does not match payload: %+v", r)
	}
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": "w@b.com"})
	wrong := "1000"
	if s.sender.codeFor("w@b.com") == wrong {
		wrong = "1001"
	}
	w, resp := s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"email": "w@b.com", "code": wrong})
	if w.Code != http.StatusBadRequest || resp.Success || resp.Error != "Invalid or expired verification code" {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if len(s.store.codes) != 1 || s.store.codes[0].Verified {
		t.Fatalf("expected code untouched, got %+v", s.store.codes)
	}
}

func TestVerifyEmail_MalformedCode(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w, resp := s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"email": "w@b.com", "code": "12"})
	if w.Code != http.StatusBadRequest || resp.Error != "Invalid email or code" || len(resp.Details["code"]) == 0 {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
}

func TestSendVerification_InvalidEmail(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w, resp := s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": "nope"})
	if w.Code != http.StatusBadRequest || resp.Error != "Invalid email address" {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
	w, resp = s.do(t, http.MethodPost, "/api/auth/send-verification", "{")
	if w.Code != http.StatusBadRequest || resp.Error != "Invalid email address" {
		t.Fatalf("unexpected response for malformed body: %d %+v", w.Code, resp)
	}
}

func TestSendVerification_SendFailure(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.sender.err = errSMTPDown
	w, resp := s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": "f@b.com"})
	if w.Code != http.StatusBadRequest || resp.Error != "Failed to send verification email" {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
	if strings.Contains(w.Body.String(), errSMTPDown.Error()) {
		t.Fatalf("collaborator detail leaked to client")
	}
}

func TestSendVerification_NoEchoInProduction(t *testing.T) {
	s := newTestServer(t, serverOptions{production: true})
	w, resp := s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": "p@b.com"})
	if w.Code != http.StatusOK || len(resp.Data) != 0 {
		t.Fatalf("expected no data in production, got %d %s", w.Code, w.Body.String())
	}
}

func TestDuplicateSignup(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.verifyEmail(t, "dup@b.com")
	if w, resp := s.do(t, http.MethodPost, "/api/auth/signup-retailer", retailerPayload("dup@b.com")); w.Code != http.StatusOK {
		t.Fatalf("first signup: %d %+v", w.Code, resp)
	}

	w, resp := s.do(t, http.MethodPost, "/api/auth/send-verification", map[string]string{"email": "dup@b.com"})
	if w.Code != http.StatusBadRequest || resp.Error != "An account with this email already exists" {
		t.Fatalf("expected already exists on send, got %d %+v", w.Code, resp)
	}
	w, resp = s.do(t, http.MethodPost, "/api/auth/signup-retailer", retailerPayload("dup@b.com"))
	if w.Code != http.StatusBadRequest || resp.Error != "An account with this email already exists" {
		t.Fatalf("expected already exists on signup, got %d %+v", w.Code, resp)
	}
	if n := s.store.userCount(); n != 1 {
		t.Fatalf("expected exactly one user, got %d", n)
	}
}

func TestSignupRequiresVerification(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w, resp := s.do(t, http.MethodPost, "/api/auth/signup-retailer", retailerPayload("nv@b.com"))
	if w.Code != http.StatusBadRequest || resp.Error != "Email not verified or verification expired" {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
}

func TestSupplierSignup_DescriptionBoundary(t *testing.T) {
	for n, ok := range map[int]bool{139: false, 140: true, 501: false} {
		s := newTestServer(t, serverOptions{})
		s.verifyEmail(t, "s@b.com")
		payload := supplierPayload("s@b.com")
		payload["companyDescription"] = strings.Repeat("d", n)
		w, resp := s.do(t, http.MethodPost, "/api/auth/signup-supplier", payload)
		if ok && (w.Code != http.StatusOK || resp.Message != "Supplier account created successfully") {
			t.Fatalf("length %d: expected success, got %d %+v", n, w.Code, resp)
		}
		if !ok && (w.Code != http.StatusBadRequest || resp.Error != "Invalid form data" || len(resp.Details["companyDescription"]) == 0) {
			t.Fatalf("length %d: expected rejection, got %d %+v", n, w.Code, resp)
		}
	}
}

func TestSupplierSignup_EnumRejectedBeforeWrite(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.verifyEmail(t, "enum@b.com")
	payload := supplierPayload("enum@b.com")
	payload["companyType"] = "Not A Real Type"
	w, resp := s.do(t, http.MethodPost, "/api/auth/signup-supplier", payload)
	if w.Code != http.StatusBadRequest || len(resp.Details["companyType"]) == 0 {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
	if s.store.userCount() != 0 || len(s.store.suppliers) != 0 {
		t.Fatalf("expected no rows written")
	}
}

func TestSignInAfterSignup(t *testing.T) {
	s := newTestServer(t, serverOptions{production: true})
	s.verifyEmail(t, "sup@b.com")
	if w, resp := s.do(t, http.MethodPost, "/api/auth/signup-supplier", supplierPayload("sup@b.com")); w.Code != http.StatusOK {
		t.Fatalf("signup: %d %+v", w.Code, resp)
	}

	w, resp := s.do(t, http.MethodPost, "/api/auth/signin-after-signup", map[string]string{"email": "sup@b.com", "password": "Wrong#Pass1234"})
	if w.Code != http.StatusUnauthorized || resp.Error != "Invalid credentials" || sessionCookie(w) != nil {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}

	w, resp = s.do(t, http.MethodPost, "/api/auth/signin-after-signup", map[string]string{"email": "sup@b.com", "password": scenarioPassword})
	if w.Code != http.StatusOK || resp.Message != "Signed in successfully" {
		t.Fatalf("unexpected response: %d %+v", w.Code, resp)
	}
	var data struct {
		User struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
		RedirectURL string `json:"redirectUrl"`
	}
	decodeData(t, resp, &data)
	if data.User.Name != "Grace Hopper" || data.User.Role != "supplier" || data.RedirectURL != "/dashboard/supplier" {
		t.Fatalf("unexpected data: %+v", data)
	}
	cookie := sessionCookie(w)
	if cookie == nil || !cookie.Secure || cookie.MaxAge != 7*24*60*60 {
		t.Fatalf("expected secure 7 day cookie, got %+v", cookie)
	}

	w, _ = s.do(t, http.MethodPost, "/api/auth/signin", map[string]string{"email": "sup@b.com", "password": scenarioPassword})
	if c := sessionCookie(w); c == nil || c.MaxAge != 30*24*60*60 {
		t.Fatalf("expected 30 day provider cookie, got %+v", c)
	}
}

func TestSessionAndSignOut(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w, resp := s.do(t, http.MethodGet, "/api/auth/session", nil)
	if w.Code != http.StatusOK || string(resp.Data) != `{"user":null}` {
		t.Fatalf("expected null user, got %d %s", w.Code, w.Body.String())
	}

	s.verifyEmail(t, "out@b.com")
	w, _ = s.do(t, http.MethodPost, "/api/auth/signup-retailer", retailerPayload("out@b.com"))
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatalf("expected auto sign in cookie")
	}

	_, resp = s.do(t, http.MethodGet, "/api/auth/session", nil, cookie)
	var session struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, resp, &session)
	if session.User.Email != "out@b.com" || session.User.Role != "retailer" {
		t.Fatalf("unexpected session: %s", string(resp.Data))
	}

	w, resp = s.do(t, http.MethodPost, "/api/auth/signout", nil, cookie)
	if w.Code != http.StatusOK || resp.Message != "Signed out successfully" {
		t.Fatalf("signout: %d %+v", w.Code, resp)
	}
	if c := sessionCookie(w); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected cookie cleared, got %+v", c)
	}
	_, resp = s.do(t, http.MethodGet, "/api/auth/session", nil, cookie)
	if string(resp.Data) != `{"user":null}` {
		t.Fatalf("expected revoked session, got %s", string(resp.Data))
	}
}

func TestTestEmailOnlyOutsideProduction(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w, _ := s.do(t, http.MethodPost, "/api/test-email", map[string]string{"email": "dev@b.com"})
	if w.Code != http.StatusOK || s.sender.codeFor("dev@b.com") != "1234" {
		t.Fatalf("expected test email sent, got %d", w.Code)
	}
	prod := newTestServer(t, serverOptions{production: true})
	if w, _ := prod.do(t, http.MethodPost, "/api/test-email", map[string]string{"email": "dev@b.com"}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 in production, got %d", w.Code)
	}
}
