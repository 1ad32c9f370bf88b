package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/db"
	"github.com/mitwpu/finditnow/internal/model"
)

const testJWTSecret = "test-secret"

// fakeAPI is an in-memory stand-in for the lost-and-found REST service.
type fakeAPI struct {
	mux           *http.ServeMux
	tokens        map[string]model.User
	items         []model.Item
	claims        []model.Claim
	prefs         model.NotificationPreferences
	nextID        atomic.Int64
	registerCalls atomic.Int64
	revoked       atomic.Bool
}

var fakeUsers = map[string]model.User{
	"student@mitwpu.edu.in": {ID: "u-student", Name: "Student One", Email: "student@mitwpu.edu.in", Role: "ROLE_USER"},
	"owner@mitwpu.edu.in":   {ID: "u-owner", Name: "Owner One", Email: "owner@mitwpu.edu.in", Role: "ROLE_USER"},
	"admin@mitwpu.edu.in":   {ID: "u-admin", Name: "Admin One", Email: "admin@mitwpu.edu.in", Role: "ROLE_ADMIN"},
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{
		mux:    http.NewServeMux(),
		tokens: make(map[string]model.User),
		prefs:  model.DefaultNotificationPreferences(),
	}

	f.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		user, ok := fakeUsers[creds.Email]
		if !ok || creds.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		token := "tok-" + user.ID
		f.tokens[token] = user
		json.NewEncoder(w).Encode(map[string]string{
			"id": user.ID, "name": user.Name, "email": user.Email,
			"role": user.Role, "token": token,
		})
	})
	f.mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.registerCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "u-new", "name": "New User", "email": "new@mitwpu.edu.in",
			"role": "ROLE_USER", "token": "tok-u-new",
		})
	})
	f.mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	f.mux.HandleFunc("GET /items", func(w http.ResponseWriter, r *http.Request) {
		if f.revoked.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(f.items)
	})
	f.mux.HandleFunc("GET /items/user", func(w http.ResponseWriter, r *http.Request) {
		user, ok := f.authed(w, r)
		if !ok {
			return
		}
		mine := []model.Item{}
		for _, item := range f.items {
			if item.UserID == user.ID {
				mine = append(mine, item)
			}
		}
		json.NewEncoder(w).Encode(mine)
	})
	f.mux.HandleFunc("GET /items/match/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Item{})
	})
	f.mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, item := range f.items {
			if item.ID == r.PathValue("id") {
				json.NewEncoder(w).Encode(item)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Item not found"})
	})
	f.mux.HandleFunc("POST /items", func(w http.ResponseWriter, r *http.Request) {
		user, ok := f.authed(w, r)
		if !ok {
			return
		}
		var draft model.ItemDraft
		json.NewDecoder(r.Body).Decode(&draft)
		item := model.Item{
			ID: fmt.Sprintf("item-%d", f.nextID.Add(1)), Title: draft.Title,
			Description: draft.Description, Category: draft.Category,
			Status: draft.Status, Location: draft.Location, Date: draft.Date,
			SecretQuestion: draft.SecretQuestion, SecretAnswer: draft.SecretAnswer,
			UserID: user.ID,
		}
		f.items = append(f.items, item)
		json.NewEncoder(w).Encode(item)
	})
	f.mux.HandleFunc("PUT /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		var draft model.ItemDraft
		json.NewDecoder(r.Body).Decode(&draft)
		for i := range f.items {
			if f.items[i].ID == r.PathValue("id") {
				f.items[i].Title = draft.Title
				f.items[i].Status = draft.Status
				json.NewEncoder(w).Encode(f.items[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	f.mux.HandleFunc("GET /claims", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		json.NewEncoder(w).Encode(f.claims)
	})
	f.mux.HandleFunc("GET /claims/user", func(w http.ResponseWriter, r *http.Request) {
		user, ok := f.authed(w, r)
		if !ok {
			return
		}
		mine := []model.Claim{}
		for _, claim := range f.claims {
			if claim.ClaimantID == user.ID {
				mine = append(mine, claim)
			}
		}
		json.NewEncoder(w).Encode(mine)
	})
	f.mux.HandleFunc("GET /claims/item/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		matching := []model.Claim{}
		for _, claim := range f.claims {
			if claim.ItemID == r.PathValue("itemId") {
				matching = append(matching, claim)
			}
		}
		json.NewEncoder(w).Encode(matching)
	})
	f.mux.HandleFunc("GET /claims/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		for _, claim := range f.claims {
			if claim.ID == r.PathValue("id") {
				json.NewEncoder(w).Encode(claim)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	f.mux.HandleFunc("POST /claims", func(w http.ResponseWriter, r *http.Request) {
		user, ok := f.authed(w, r)
		if !ok {
			return
		}
		var draft model.ClaimDraft
		json.NewDecoder(r.Body).Decode(&draft)
		claim := model.Claim{
			ID: fmt.Sprintf("claim-%d", f.nextID.Add(1)), ItemID: draft.ItemID,
			ClaimantID: user.ID, Justification: draft.Justification,
			Answer: draft.Answer, Status: model.ClaimStatusPending,
		}
		f.claims = append(f.claims, claim)
		json.NewEncoder(w).Encode(claim)
	})
	f.mux.HandleFunc("PUT /claims/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		for i := range f.claims {
			if f.claims[i].ID == r.PathValue("id") {
				f.claims[i].Status = body["status"]
				json.NewEncoder(w).Encode(f.claims[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	f.mux.HandleFunc("DELETE /claims/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		for i := range f.claims {
			if f.claims[i].ID == r.PathValue("id") {
				f.claims = append(f.claims[:i], f.claims[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	f.mux.HandleFunc("GET /comments/item/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Comment{})
	})
	f.mux.HandleFunc("GET /reports/user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Report{})
	})
	f.mux.HandleFunc("GET /notifications/preferences", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		json.NewEncoder(w).Encode(f.prefs)
	})
	f.mux.HandleFunc("PUT /notifications/preferences", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		json.NewDecoder(r.Body).Decode(&f.prefs)
		json.NewEncoder(w).Encode(f.prefs)
	})
	f.mux.HandleFunc("GET /admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.authed(w, r); !ok {
			return
		}
		var analytics model.Analytics
		analytics.Items.Total = 42
		analytics.Items.Lost = 20
		analytics.Items.Found = 15
		analytics.Items.Recovered = 7
		analytics.Users = 120
		json.NewEncoder(w).Encode(analytics)
	})

	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)
	return f, server.URL
}

func (f *fakeAPI) authed(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	user, ok := f.tokens[token]
	if !ok || f.revoked.Load() {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
		return model.User{}, false
	}
	return user, true
}

func setupWebServer(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	fake, fakeURL := newFakeAPI(t)

	router, err := NewRouter(RouterConfig{
		DB:             db.NewTestDB(t),
		Backend:        backend.NewClient(fakeURL),
		JWTSecret:      testJWTSecret,
		SealKey:        &[32]byte{1, 2, 3},
		EmailDomain:    "mitwpu.edu.in",
		MaxUploadBytes: 5 << 20,
	})
	if err != nil {
		t.Fatalf("setting up router: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return fake, server
}

// newBrowser returns an HTTP client that keeps cookies and surfaces
// redirects instead of following them.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func signIn(t *testing.T, client *http.Client, serverURL, email string) {
	t.Helper()
	resp, err := client.PostForm(serverURL+"/login", url.Values{
		"email":    {email},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after login, got %d", resp.StatusCode)
	}
}

func multipartForm(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		mw.WriteField(key, value)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func postForm(t *testing.T, client *http.Client, target string, fields map[string]string) *http.Response {
	t.Helper()
	body, contentType := multipartForm(t, fields)
	req, err := http.NewRequest(http.MethodPost, target, body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(data)
}

func TestLoginAndBrowse(t *testing.T) {
	fake, server := setupWebServer(t)
	fake.items = []model.Item{
		{ID: "item-1", Title: "Blue Umbrella", Category: "accessories", Status: model.ItemStatusFound, Date: "2025-04-10", UserID: "u-owner"},
	}
	client := newBrowser(t)

	resp, err := client.Get(server.URL + "/login")
	if err != nil {
		t.Fatalf("login page: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for login page, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	signIn(t, client, server.URL, "student@mitwpu.edu.in")

	resp, err = client.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("home page: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Student One") {
		t.Error("expected signed-in user name in page")
	}
	if !strings.Contains(body, "Blue Umbrella") {
		t.Error("expected item listing in page")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, server := setupWebServer(t)
	client := newBrowser(t)

	resp, err := client.PostForm(server.URL+"/login", url.Values{
		"email":    {"student@mitwpu.edu.in"},
		"password": {"wrong"},
	})
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Incorrect email or password.") {
		t.Error("expected credential error message")
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	_, server := setupWebServer(t)
	client := newBrowser(t)

	resp, err := client.Get(server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRegisterValidatesBeforeBackend(t *testing.T) {
	fake, server := setupWebServer(t)
	client := newBrowser(t)

	resp, err := client.PostForm(server.URL+"/register", url.Values{
		"name":             {"Outsider"},
		"email":            {"outsider@gmail.com"},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	})
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "mitwpu.edu.in") {
		t.Error("expected domain validation message")
	}
	if fake.registerCalls.Load() != 0 {
		t.Error("register should not reach the backend on a validation error")
	}
}

func TestItemReportFlow(t *testing.T) {
	_, server := setupWebServer(t)
	client := newBrowser(t)
	signIn(t, client, server.URL, "student@mitwpu.edu.in")

	resp := postForm(t, client, server.URL+"/items", map[string]string{
		"title":    "Black Wallet",
		"category": "wallet",
		"status":   "lost",
		"date":     "2025-04-15",
		"location": "Library",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after create, got %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if !strings.HasPrefix(location, "/items/") {
		t.Fatalf("expected redirect to item page, got %q", location)
	}

	resp, err := client.Get(server.URL + location)
	if err != nil {
		t.Fatalf("item detail: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Black Wallet") {
		t.Error("expected item title on detail page")
	}
	if !strings.Contains(body, "Edit") {
		t.Error("expected owner actions on own item")
	}
}

func TestClaimLifecycle(t *testing.T) {
	fake, server := setupWebServer(t)
	fake.items = []model.Item{
		{ID: "item-1", Title: "Silver Watch", Category: "accessories", Status: model.ItemStatusFound, Date: "2025-04-01", UserID: "u-owner"},
	}

	// The student claims the found item.
	student := newBrowser(t)
	signIn(t, student, server.URL, "student@mitwpu.edu.in")

	resp := postForm(t, student, server.URL+"/items/item-1/claims", map[string]string{
		"justification": "It has my initials engraved on the back.",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after claim, got %d", resp.StatusCode)
	}
	if len(fake.claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(fake.claims))
	}
	if fake.claims[0].Status != model.ClaimStatusPending {
		t.Errorf("expected pending claim, got %q", fake.claims[0].Status)
	}

	resp, err := student.Get(server.URL + "/items/item-1")
	if err != nil {
		t.Fatalf("item detail: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Withdraw claim") {
		t.Error("expected withdraw action for pending claim")
	}

	// The owner reviews and approves it.
	owner := newBrowser(t)
	signIn(t, owner, server.URL, "owner@mitwpu.edu.in")

	resp, err = owner.Get(server.URL + "/items/item-1")
	if err != nil {
		t.Fatalf("item detail: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "Approve") {
		t.Error("expected approve action for owner")
	}

	resp = postForm(t, owner, server.URL+"/claims/"+fake.claims[0].ID+"/approve", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after approve, got %d", resp.StatusCode)
	}
	if fake.claims[0].Status != model.ClaimStatusApproved {
		t.Errorf("expected approved claim, got %q", fake.claims[0].Status)
	}

	// With an approved claim the owner can mark the item recovered.
	resp, err = owner.Get(server.URL + "/items/item-1")
	if err != nil {
		t.Fatalf("item detail: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "Mark as recovered") {
		t.Error("expected recover action after approval")
	}
}

func TestCannotClaimOwnItem(t *testing.T) {
	fake, server := setupWebServer(t)
	fake.items = []model.Item{
		{ID: "item-1", Title: "Red Scarf", Category: "clothing", Status: model.ItemStatusFound, Date: "2025-03-20", UserID: "u-owner"},
	}
	client := newBrowser(t)
	signIn(t, client, server.URL, "owner@mitwpu.edu.in")

	resp := postForm(t, client, server.URL+"/items/item-1/claims", map[string]string{
		"justification": "This is mine.",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if len(fake.claims) != 0 {
		t.Errorf("expected no claims on own item, got %d", len(fake.claims))
	}
}

func TestAdminAccess(t *testing.T) {
	_, server := setupWebServer(t)

	student := newBrowser(t)
	signIn(t, student, server.URL, "student@mitwpu.edu.in")
	resp, err := student.Get(server.URL + "/admin")
	if err != nil {
		t.Fatalf("admin request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	admin := newBrowser(t)
	signIn(t, admin, server.URL, "admin@mitwpu.edu.in")
	resp, err = admin.Get(server.URL + "/admin")
	if err != nil {
		t.Fatalf("admin request: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "42") {
		t.Error("expected analytics totals in page")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	_, server := setupWebServer(t)
	client := newBrowser(t)
	signIn(t, client, server.URL, "student@mitwpu.edu.in")

	resp, err := client.Post(server.URL+"/logout", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("logout request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after logout, got %d", resp.StatusCode)
	}

	resp, err = client.Get(server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected redirect after logout, got %d", resp.StatusCode)
	}
}

func TestRevokedTokenForcesLogoutOnBrowse(t *testing.T) {
	fake, server := setupWebServer(t)
	client := newBrowser(t)
	signIn(t, client, server.URL, "student@mitwpu.edu.in")

	fake.revoked.Store(true)

	// A signed-in browse with a dead token must not render a logged-in
	// page from stale state; it ends the session instead.
	resp, err := client.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("home page: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 on browse with revoked token, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	// Anonymous browsing still degrades to an empty state.
	anon := newBrowser(t)
	resp, err = anon.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("anonymous home page: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for anonymous browse, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Nothing here yet") {
		t.Error("expected empty-state listing for anonymous viewer")
	}
}

func TestApproveNotOfferedOnceLocked(t *testing.T) {
	fake, server := setupWebServer(t)
	fake.items = []model.Item{
		{ID: "item-1", Title: "Gray Backpack", Category: "accessories", Status: model.ItemStatusFound, Date: "2025-05-02", UserID: "u-owner"},
	}
	fake.claims = []model.Claim{
		{ID: "claim-1", ItemID: "item-1", ClaimantID: "u-student", Justification: "Mine.", Status: model.ClaimStatusApproved},
		{ID: "claim-2", ItemID: "item-1", ClaimantID: "u-admin", Justification: "Also mine.", Status: model.ClaimStatusPending},
	}

	owner := newBrowser(t)
	signIn(t, owner, server.URL, "owner@mitwpu.edu.in")

	resp, err := owner.Get(server.URL + "/items/item-1")
	if err != nil {
		t.Fatalf("item detail: %v", err)
	}
	body := readBody(t, resp)
	if strings.Contains(body, "/claims/claim-2/approve") {
		t.Error("approve action should not be offered while another claim holds approval")
	}
	if !strings.Contains(body, "/claims/claim-2/reject") {
		t.Error("reject action should still be offered for the pending claim")
	}
}

func TestNotificationPreferences(t *testing.T) {
	fake, server := setupWebServer(t)
	client := newBrowser(t)
	signIn(t, client, server.URL, "student@mitwpu.edu.in")

	resp, err := client.Get(server.URL + "/preferences")
	if err != nil {
		t.Fatalf("preferences page: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Potential matches") {
		t.Error("expected preference toggles in page")
	}

	// Unchecking a box means the field is absent from the form.
	resp, err = client.PostForm(server.URL+"/preferences", url.Values{
		"claim_received": {"on"},
		"claim_updated":  {"on"},
		"item_recovered": {"on"},
	})
	if err != nil {
		t.Fatalf("saving preferences: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after save, got %d", resp.StatusCode)
	}

	if fake.prefs.MatchFound {
		t.Error("expected match notifications to be switched off")
	}
	if !fake.prefs.ClaimReceived || !fake.prefs.ClaimUpdated || !fake.prefs.ItemRecovered {
		t.Error("expected remaining notifications to stay on")
	}
}

func TestRevokedTokenEndsSession(t *testing.T) {
	fake, server := setupWebServer(t)
	client := newBrowser(t)
	signIn(t, client, server.URL, "student@mitwpu.edu.in")

	fake.revoked.Store(true)

	resp, err := client.Get(server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 when token is revoked, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}
