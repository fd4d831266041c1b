package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/routes"
)

// setupRouter wires the full route surface against a scratch database.
// Skips unless MONGODB_URL is set, following the pack convention for
// integration tests.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	if os.Getenv("MONGODB_URL") == "" {
		t.Skip("MONGODB_URL not set; skipping integration test")
	}

	t.Setenv("JWT_SECRET", "integration-secret")
	t.Setenv("DB_NAME", "skillsync_test")
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("CLOUDINARY_URL", "")

	gin.SetMode(gin.TestMode)
	database.InitDB()

	ctx := context.Background()
	for _, name := range []string{"users", "groups", "events", "messages", "conversations"} {
		_ = database.GetCollection(name).Drop(ctx)
	}

	controllers.InitAuthController()
	controllers.InitGroupController()
	controllers.InitEventController()
	controllers.InitMessageController()
	controllers.InitConversationController()

	router := gin.New()
	routes.AuthRoute(router)
	routes.ProfileRoute(router)
	routes.GroupRoute(router)
	routes.EventRoute(router)
	routes.MessageRoute(router)
	routes.ConversationRoute(router)
	routes.UserRoute(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// registerAndLogin creates a user and returns its bearer token and id.
func registerAndLogin(t *testing.T, router *gin.Engine, name, email string) (string, string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: got %d: %s", email, w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: got %d: %s", email, w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in response", email)
	}

	w = doJSON(t, router, http.MethodGet, "/api/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile %s: got %d", email, w.Code)
	}
	id, _ := decode(t, w)["_id"].(string)
	if id == "" {
		t.Fatalf("profile %s: no _id in response", email)
	}
	return token, id
}

func TestRegisterAndLogin(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: got %d: %s", w.Code, w.Body.String())
	}

	// Same email again must conflict, regardless of case.
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice Again", "email": "Alice@Example.com", "password": "different456",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: got %d, want 400", w.Code)
	}

	// Wrong password and unknown email fail identically.
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrongpass",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong-password login: got %d, want 400", w.Code)
	}
	wrongPw := decode(t, w)["message"]

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "wrongpass",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown-email login: got %d, want 400", w.Code)
	}
	if decode(t, w)["message"] != wrongPw {
		t.Fatal("unknown email and wrong password are distinguishable")
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", w.Code, w.Body.String())
	}

	// No token, no access.
	w = doJSON(t, router, http.MethodGet, "/api/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated profile: got %d, want 401", w.Code)
	}
}

func TestGroupJoinIsIdempotent(t *testing.T) {
	router := setupRouter(t)
	tokenA, _ := registerAndLogin(t, router, "Alice", "alice@example.com")
	tokenB, _ := registerAndLogin(t, router, "Bob", "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/groups", tokenA, gin.H{
		"name": "Go Study Group", "description": "weekly sessions",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create group: got %d: %s", w.Code, w.Body.String())
	}
	created := decode(t, w)
	groupID, _ := created["_id"].(string)
	if members, _ := created["members"].([]any); len(members) != 1 {
		t.Fatalf("new group has %d members, want 1 (creator)", len(members))
	}

	join := func() int {
		w := doJSON(t, router, http.MethodPost, "/api/groups/"+groupID+"/join", tokenB, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("join: got %d: %s", w.Code, w.Body.String())
		}
		group := decode(t, w)["group"].(map[string]any)
		members, _ := group["members"].([]any)
		return len(members)
	}

	if n := join(); n != 2 {
		t.Fatalf("after first join: %d members, want 2", n)
	}
	if n := join(); n != 2 {
		t.Fatalf("after second join: %d members, want 2 (idempotent)", n)
	}

	// Leaving twice is a no-op, not an error.
	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPost, "/api/groups/"+groupID+"/leave", tokenB, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("leave #%d: got %d: %s", i+1, w.Code, w.Body.String())
		}
	}

	w = doJSON(t, router, http.MethodGet, "/api/groups/"+groupID, tokenA, nil)
	group := decode(t, w)
	if members, _ := group["members"].([]any); len(members) != 1 {
		t.Fatalf("after leaves: %d members, want 1", len(members))
	}
}

func TestGroupCreatorOnlyMutations(t *testing.T) {
	router := setupRouter(t)
	tokenA, idA := registerAndLogin(t, router, "Alice", "alice@example.com")
	tokenB, _ := registerAndLogin(t, router, "Bob", "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/groups", tokenA, gin.H{"name": "Design Circle"})
	groupID, _ := decode(t, w)["_id"].(string)

	doJSON(t, router, http.MethodPost, "/api/groups/"+groupID+"/join", tokenB, nil)

	// Non-creator cannot rename the group or remove members.
	w = doJSON(t, router, http.MethodPut, "/api/groups/"+groupID, tokenB, gin.H{"name": "Hijacked"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-creator update: got %d, want 403", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/api/groups/"+groupID+"/members/"+idA, tokenB, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-creator remove member: got %d, want 403", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/api/groups/"+groupID, tokenA, gin.H{"name": "Design Guild"})
	if w.Code != http.StatusOK {
		t.Fatalf("creator update: got %d: %s", w.Code, w.Body.String())
	}
	group := decode(t, w)["group"].(map[string]any)
	if group["name"] != "Design Guild" {
		t.Fatalf("rename did not apply: %v", group["name"])
	}
	// Partial update: description untouched when omitted.
	if group["description"] != "" {
		t.Fatalf("description changed unexpectedly: %v", group["description"])
	}
}

func TestEventOwnershipFoldedIntoNotFound(t *testing.T) {
	router := setupRouter(t)
	tokenA, _ := registerAndLogin(t, router, "Alice", "alice@example.com")
	tokenB, _ := registerAndLogin(t, router, "Bob", "bob@example.com")

	start := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(26 * time.Hour).UTC().Format(time.RFC3339)

	w := doJSON(t, router, http.MethodPost, "/api/events", tokenA, gin.H{
		"title": "Standup", "description": "daily", "start": start, "end": end,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create event: got %d: %s", w.Code, w.Body.String())
	}
	eventID, _ := decode(t, w)["_id"].(string)

	// Every non-owner access reports not-found, never forbidden.
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/events/" + eventID},
		{http.MethodPut, "/api/events/" + eventID},
		{http.MethodDelete, "/api/events/" + eventID},
	} {
		w = doJSON(t, router, tc.method, tc.path, tokenB, gin.H{"title": "Hijacked"})
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s by non-owner: got %d, want 404", tc.method, w.Code)
		}
	}

	// The record is unchanged after the failed mutations.
	w = doJSON(t, router, http.MethodGet, "/api/events/"+eventID, tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner get: got %d", w.Code)
	}
	if decode(t, w)["title"] != "Standup" {
		t.Fatal("non-owner mutation altered the event")
	}

	w = doJSON(t, router, http.MethodDelete, "/api/events/"+eventID, tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete: got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/events/"+eventID, tokenA, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted event still readable: %d", w.Code)
	}
}

func TestConversationLookupIsOrderIndependent(t *testing.T) {
	router := setupRouter(t)
	tokenA, idA := registerAndLogin(t, router, "Alice", "alice@example.com")
	tokenB, idB := registerAndLogin(t, router, "Bob", "bob@example.com")

	start := func(token, otherID string) (int, map[string]any) {
		w := doJSON(t, router, http.MethodPost, "/api/conversations", token, gin.H{"userId": otherID})
		if w.Code != http.StatusOK {
			return w.Code, nil
		}
		return w.Code, decode(t, w)
	}

	code, first := start(tokenA, idB)
	if code != http.StatusOK {
		t.Fatalf("A→B: got %d", code)
	}
	code, second := start(tokenB, idA)
	if code != http.StatusOK {
		t.Fatalf("B→A: got %d", code)
	}
	code, third := start(tokenA, idB)
	if code != http.StatusOK {
		t.Fatalf("repeat A→B: got %d", code)
	}

	if first["_id"] != second["_id"] || first["_id"] != third["_id"] {
		t.Fatalf("conversation ids diverge: %v / %v / %v", first["_id"], second["_id"], third["_id"])
	}

	w := doJSON(t, router, http.MethodGet, "/api/conversations", tokenA, nil)
	if got := len(decodeList(t, w)); got != 1 {
		t.Fatalf("conversation list has %d entries, want 1", got)
	}

	// Self-conversation always fails.
	w = doJSON(t, router, http.MethodPost, "/api/conversations", tokenA, gin.H{"userId": idA})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("self conversation: got %d, want 400", w.Code)
	}

	// Nonexistent other user fails as not-found.
	w = doJSON(t, router, http.MethodPost, "/api/conversations", tokenA, gin.H{"userId": "000000000000000000000000"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("conversation with ghost: got %d, want 404", w.Code)
	}
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	router := setupRouter(t)
	tokenA, _ := registerAndLogin(t, router, "Alice", "alice@example.com")
	tokenB, idB := registerAndLogin(t, router, "Bob", "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/messages/direct", tokenA, gin.H{
		"recipientId": idB, "content": "hello bob",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("send direct: got %d: %s", w.Code, w.Body.String())
	}
	messageID, _ := decode(t, w)["_id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/api/messages/"+messageID, tokenB, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-sender delete: got %d, want 403", w.Code)
	}

	// Message survived the rejected delete.
	w = doJSON(t, router, http.MethodGet, "/api/messages/direct/"+idB, tokenA, nil)
	if got := len(decodeList(t, w)); got != 1 {
		t.Fatalf("after rejected delete: %d messages, want 1", got)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/messages/"+messageID, tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sender delete: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodGet, "/api/messages/direct/"+idB, tokenA, nil)
	if got := len(decodeList(t, w)); got != 0 {
		t.Fatalf("after delete: %d messages, want 0", got)
	}
}

func TestGroupMessagesRoundTrip(t *testing.T) {
	router := setupRouter(t)
	tokenA, _ := registerAndLogin(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/groups", tokenA, gin.H{"name": "Chatty Group"})
	groupID, _ := decode(t, w)["_id"].(string)

	sendGroupMessage := func(content string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("groupId", groupID)
		if content != "" {
			_ = mw.WriteField("content", content)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/messages", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tokenA)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := sendGroupMessage(""); w.Code != http.StatusBadRequest {
		t.Fatalf("empty group message: got %d, want 400", w.Code)
	}

	for i := 1; i <= 3; i++ {
		if w := sendGroupMessage(fmt.Sprintf("message %d", i)); w.Code != http.StatusCreated {
			t.Fatalf("send group message %d: got %d: %s", i, w.Code, w.Body.String())
		}
	}

	w = doJSON(t, router, http.MethodGet, "/api/messages/"+groupID, tokenA, nil)
	messages := decodeList(t, w)
	if len(messages) != 3 {
		t.Fatalf("group chat has %d messages, want 3", len(messages))
	}
	// Oldest-first ordering.
	if messages[0]["content"] != "message 1" || messages[2]["content"] != "message 3" {
		t.Fatalf("messages out of order: %v", messages)
	}
	sender, _ := messages[0]["sender"].(map[string]any)
	if sender["name"] != "Alice" {
		t.Fatalf("sender not populated: %v", messages[0]["sender"])
	}

	// The group now shows up in the sender's chat overview.
	w = doJSON(t, router, http.MethodGet, "/api/messages/conversations", tokenA, nil)
	overview := decodeList(t, w)
	if len(overview) != 1 {
		t.Fatalf("chat overview has %d entries, want 1", len(overview))
	}
	last, _ := overview[0]["lastMessage"].(map[string]any)
	if last["content"] != "message 3" {
		t.Fatalf("overview lastMessage mismatch: %v", last)
	}
}

func TestProfileUpdateIsPartial(t *testing.T) {
	router := setupRouter(t)
	tokenA, _ := registerAndLogin(t, router, "Alice", "alice@example.com")
	_, _ = registerAndLogin(t, router, "Bob", "bob@example.com")

	update := func(fields map[string]string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			_ = mw.WriteField(k, v)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPut, "/api/profile", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tokenA)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := update(map[string]string{"phone": "555-0100", "skills": "go, mongodb"})
	if w.Code != http.StatusOK {
		t.Fatalf("update profile: got %d: %s", w.Code, w.Body.String())
	}

	// A later update of a different field keeps the earlier ones.
	w = update(map[string]string{"education": "BSc"})
	if w.Code != http.StatusOK {
		t.Fatalf("second update: got %d: %s", w.Code, w.Body.String())
	}
	user, _ := decode(t, w)["user"].(map[string]any)
	if user["phone"] != "555-0100" {
		t.Fatalf("phone lost on partial update: %v", user["phone"])
	}
	if user["education"] != "BSc" {
		t.Fatalf("education not applied: %v", user["education"])
	}
	skills, _ := user["skills"].([]any)
	if len(skills) != 2 || skills[0] != "go" || skills[1] != "mongodb" {
		t.Fatalf("skills not normalized: %v", user["skills"])
	}

	// Switching to an email that is already taken conflicts.
	w = update(map[string]string{"email": "bob@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email update: got %d, want 400", w.Code)
	}
}

func TestUserDirectoryExcludesActor(t *testing.T) {
	router := setupRouter(t)
	tokenA, idA := registerAndLogin(t, router, "Alice", "alice@example.com")
	_, idB := registerAndLogin(t, router, "Bob", "bob@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/users", tokenA, nil)
	users := decodeList(t, w)
	if len(users) != 1 {
		t.Fatalf("directory has %d users, want 1", len(users))
	}
	if users[0]["_id"] == idA {
		t.Fatal("directory includes the actor")
	}

	w = doJSON(t, router, http.MethodGet, "/api/users/"+idB, tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get user: got %d", w.Code)
	}

	// Malformed and missing ids are both not-found.
	w = doJSON(t, router, http.MethodGet, "/api/users/not-a-hex-id", tokenA, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("malformed id: got %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/users/000000000000000000000000", tokenA, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id: got %d, want 404", w.Code)
	}
}
