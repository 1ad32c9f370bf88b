package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitwpu/finditnow/internal/model"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestLoginNormalizesRole(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds LoginCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@mitwpu.edu.in", creds.Email)

		json.NewEncoder(w).Encode(map[string]any{
			"id":    "u1",
			"name":  "Admin",
			"email": creds.Email,
			"role":  "ROLE_ADMIN",
			"token": "tok-123",
		})
	})

	user, token, err := client.Login(context.Background(), LoginCredentials{
		Email:    "admin@mitwpu.edu.in",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]map[string]any{})
	})

	_, err := client.ListItems(context.Background(), "secret-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClaimFieldVariantsNormalized(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Older payload shape: description instead of justification,
		// proofUrl instead of proofImageUrl, adminNotes instead of notes.
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "c1",
			"itemId":     "i1",
			"claimantId": "u2",
			"description": "That wallet is mine",
			"proofUrl":    "/uploads/proof.jpg",
			"adminNotes":  "checked id card",
			"status":      "PENDING",
			"createdAt":   "2025-04-15T10:21:00",
		})
	})

	claim, err := client.GetClaim(context.Background(), "tok", "c1")
	require.NoError(t, err)
	assert.Equal(t, "That wallet is mine", claim.Justification)
	assert.Equal(t, "/uploads/proof.jpg", claim.ProofImageURL)
	assert.Equal(t, "checked id card", claim.Notes)
	assert.Equal(t, model.ClaimStatusPending, claim.Status)
	assert.Equal(t, 2025, claim.CreatedAt.Year())
}

func TestCommentContentVariantNormalized(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "m1", "itemId": "i1", "userId": "u1", "content": "meet at the library desk"},
			{"id": "m2", "itemId": "i1", "userId": "u2", "text": "works for me"},
		})
	})

	comments, err := client.ItemComments(context.Background(), "tok", "i1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "meet at the library desk", comments[0].Text)
	assert.Equal(t, "works for me", comments[1].Text)
}

func TestServerErrorMessagePropagates(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "You cannot claim your own item"})
	})

	_, err := client.CreateClaim(context.Background(), "tok", model.ClaimDraft{ItemID: "i1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "You cannot claim your own item", apiErr.Message)
}

func TestUnauthorizedDetection(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})

	_, err := client.CurrentUser(context.Background(), "stale-token")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestUploadImage(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "wallet.jpg", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{"url": "/uploads/abc.jpg"})
	})

	url, err := client.UploadImage(context.Background(), "tok", "wallet.jpg", []byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.jpg", url)
}

func TestItemRoundTripFields(t *testing.T) {
	draft := model.ItemDraft{
		Title:    "Lost Black Wallet",
		Category: "wallet",
		Status:   model.ItemStatusLost,
		Date:     "2025-04-15",
	}

	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var got model.ItemDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, draft, got)

		json.NewEncoder(w).Encode(map[string]any{
			"id":       "i9",
			"title":    got.Title,
			"category": got.Category,
			"status":   got.Status,
			"date":     got.Date,
			"userId":   "u1",
		})
	})

	item, err := client.CreateItem(context.Background(), "tok", draft)
	require.NoError(t, err)
	assert.Equal(t, draft.Title, item.Title)
	assert.Equal(t, draft.Category, item.Category)
	assert.Equal(t, draft.Status, item.Status)
	assert.Equal(t, draft.Date, item.Date)
}
