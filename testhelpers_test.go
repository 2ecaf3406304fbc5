package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jaideepo7/Meal-Planner/internal/genai"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// testQuiet is the debounce window used by test apps; settle waits long
// enough for a pending write to fire (or prove it never will).
const testQuiet = 25 * time.Millisecond

func settle() { time.Sleep(8 * testQuiet) }

// fakeDocStore is an in-memory stand-in for the remote document API,
// serving the owner-scoped doc and item routes the engine uses.
type fakeDocStore struct {
	mu        sync.Mutex
	docs      map[string][]byte            // owner/collection -> document
	items     map[string]map[string][]byte // owner/collection -> id -> fields
	order     map[string][]string          // item insertion order per collection
	seq       int
	putCounts map[string]int // doc PUTs per owner/collection
	failGets  int            // when > 0, doc GETs answer 500 and decrement
	lastAuth  string         // Authorization header of the most recent request
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{
		docs:      make(map[string][]byte),
		items:     make(map[string]map[string][]byte),
		order:     make(map[string][]string),
		putCounts: make(map[string]int),
	}
}

func docKey(owner, collection string) string { return owner + "/" + collection }

func (f *fakeDocStore) putCount(owner, collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putCounts[docKey(owner, collection)]
}

func (f *fakeDocStore) doc(owner, collection string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[docKey(owner, collection)]
}

func (f *fakeDocStore) setDoc(owner, collection string, doc []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[docKey(owner, collection)] = doc
}

// addItem seeds an item record directly, bypassing HTTP.
func (f *fakeDocStore) addItem(owner, collection string, data []byte) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := docKey(owner, collection)
	f.seq++
	id := fmt.Sprintf("item-%d", f.seq)
	if f.items[key] == nil {
		f.items[key] = make(map[string][]byte)
	}
	f.items[key][id] = data
	f.order[key] = append(f.order[key], id)
	return id
}

func (f *fakeDocStore) failNextGets(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGets = n
}

func (f *fakeDocStore) authHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeDocStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuth = r.Header.Get("Authorization")

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 5 || parts[0] != "v1" || parts[1] != "owners" || parts[3] != "docs" {
		http.NotFound(w, r)
		return
	}
	key := docKey(parts[2], parts[4])

	switch {
	case len(parts) == 5: // single document
		switch r.Method {
		case http.MethodGet:
			if f.failGets > 0 {
				f.failGets--
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			doc, ok := f.docs[key]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(doc)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			f.docs[key] = body
			f.putCounts[key]++
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case len(parts) == 6 && parts[5] == "items": // collection
		switch r.Method {
		case http.MethodGet:
			type wireItem struct {
				ID   string          `json:"id"`
				Data json.RawMessage `json:"data"`
			}
			out := struct {
				Items []wireItem `json:"items"`
			}{Items: []wireItem{}}
			for _, id := range f.order[key] {
				out.Items = append(out.Items, wireItem{ID: id, Data: f.items[key][id]})
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			f.seq++
			id := fmt.Sprintf("item-%d", f.seq)
			if f.items[key] == nil {
				f.items[key] = make(map[string][]byte)
			}
			f.items[key][id] = body
			f.order[key] = append(f.order[key], id)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"id":%q}`, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case len(parts) == 7 && parts[5] == "items": // single item
		id := parts[6]
		if _, ok := f.items[key][id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			f.items[key][id] = body
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			delete(f.items[key], id)
			for i, existing := range f.order[key] {
				if existing == id {
					f.order[key] = append(f.order[key][:i], f.order[key][i+1:]...)
					break
				}
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		http.NotFound(w, r)
	}
}

// fakeAuthHandler mimics the auth provider: any password except "wrong"
// signs in, tokens are "tok-<localId>", lookup resolves them back.
func fakeAuthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		str := func(k string) string { s, _ := body[k].(string); return s }

		switch r.URL.Path {
		case "/v1/accounts:signInWithPassword", "/v1/accounts:signUp":
			email := str("email")
			if str("password") == "wrong" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":{"message":"INVALID_PASSWORD"}}`)
				return
			}
			local := "uid-" + strings.SplitN(email, "@", 2)[0]
			json.NewEncoder(w).Encode(map[string]string{
				"localId":     local,
				"email":       email,
				"displayName": str("displayName"),
				"idToken":     "tok-" + local,
			})
		case "/v1/accounts:lookup":
			tok := str("idToken")
			if !strings.HasPrefix(tok, "tok-") {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":{"message":"INVALID_ID_TOKEN"}}`)
				return
			}
			local := strings.TrimPrefix(tok, "tok-")
			json.NewEncoder(w).Encode(map[string]string{
				"localId": local,
				"email":   strings.TrimPrefix(local, "uid-") + "@example.com",
			})
		case "/v1/accounts:signOut", "/v1/accounts:sendOobCode":
			fmt.Fprint(w, `{}`)
		default:
			http.NotFound(w, r)
		}
	})
}

// fakeCompletion answers every call with a fixed reply and records the
// decoded payloads it received.
type fakeCompletion struct {
	mu       sync.Mutex
	reply    string
	requests []genai.Request
}

func (f *fakeCompletion) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req genai.Request
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	f.requests = append(f.requests, req)
	reply := f.reply
	f.mu.Unlock()

	b, _ := json.Marshal(reply)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, b)
}

func (f *fakeCompletion) lastRequest() (genai.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return genai.Request{}, false
	}
	return f.requests[len(f.requests)-1], true
}

type testEnv struct {
	app  *App
	docs *fakeDocStore
	ai   *fakeCompletion
	cfg  Config
}

func newTestEnv(t *testing.T, mutate ...func(*Config)) *testEnv {
	t.Helper()

	docs := newFakeDocStore()
	docSrv := httptest.NewServer(docs)
	t.Cleanup(docSrv.Close)

	authSrv := httptest.NewServer(fakeAuthHandler())
	t.Cleanup(authSrv.Close)

	ai := &fakeCompletion{reply: "Try the lemon chicken with rice."}
	aiSrv := httptest.NewServer(ai)
	t.Cleanup(aiSrv.Close)

	cfg := Config{
		AuthURL:          authSrv.URL,
		AuthAPIKey:       "test-key",
		DocstoreURL:      docSrv.URL,
		CompletionURL:    aiSrv.URL,
		CompletionAPIKey: "ai-key",
		QuietPeriod:      testQuiet,
		HTTPTimeout:      5 * time.Second,
		TokenPath:        filepath.Join(t.TempDir(), "session.json"),
	}
	for _, m := range mutate {
		m(&cfg)
	}

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return &testEnv{app: app, docs: docs, ai: ai, cfg: cfg}
}

// login starts the app if needed and signs in; any password but "wrong"
// succeeds against the fake provider.
func (e *testEnv) login(t *testing.T, email string) *types.Identity {
	t.Helper()
	require.NoError(t, e.app.Start(context.Background()))
	id, err := e.app.Session.Login(context.Background(), email, "pw")
	require.NoError(t, err)
	return id
}
