package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func startDB(t *testing.T) *FakeDB {
	t.Helper()
	db := NewFakeDB(t)
	T(t).Setup(db)
	return db
}

func call(t *testing.T, db *FakeDB, method, url, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	client := &http.Client{Transport: db.Transport()}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(data)
}

func TestFakeDBGetSeeded(t *testing.T) {
	db := startDB(t)
	if err := db.Seed("dinosaurs", `{"trex":true}`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	status, body := call(t, db, http.MethodGet, "https://dinosaur-facts.firebaseio.com/dinosaurs.json", "")
	if status != http.StatusOK || body != `{"trex":true}` {
		t.Errorf("got %d %s", status, body)
	}

	_, body = call(t, db, http.MethodGet, "https://dinosaur-facts.firebaseio.com/missing.json", "")
	if body != "null" {
		t.Errorf("expected null for missing path, got %s", body)
	}

	last, ok := db.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	if last.Host != "dinosaur-facts.firebaseio.com" || last.Path != "/missing.json" {
		t.Errorf("unexpected recorded request %+v", last)
	}
}

func TestFakeDBWrites(t *testing.T) {
	db := startDB(t)
	base := db.Endpoint("demo")

	status, body := call(t, db, http.MethodPut, base+"users/jack.json", `{"name":"Jack","age":30}`)
	if status != http.StatusOK || body != `{"age":30,"name":"Jack"}` {
		t.Fatalf("put: %d %s", status, body)
	}

	status, body = call(t, db, http.MethodPatch, base+"users/jack.json", `{"age":31,"city":"Oslo"}`)
	if status != http.StatusOK {
		t.Fatalf("patch: %d %s", status, body)
	}
	if got := db.Value("users/jack"); got != `{"age":31,"city":"Oslo","name":"Jack"}` {
		t.Errorf("after patch: %s", got)
	}

	status, body = call(t, db, http.MethodPost, base+"users.json", `{"name":"Jill"}`)
	if status != http.StatusOK {
		t.Fatalf("post: %d %s", status, body)
	}
	var created struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(body), &created); err != nil || created.Name == "" {
		t.Fatalf("expected generated name, got %s (%v)", body, err)
	}
	if got := db.Value("users/" + created.Name + "/name"); got != `"Jill"` {
		t.Errorf("pushed child: %s", got)
	}

	status, body = call(t, db, http.MethodDelete, base+"users/jack.json", "")
	if status != http.StatusOK || body != "null" {
		t.Errorf("delete: %d %s", status, body)
	}
	if got := db.Value("users/jack"); got != "null" {
		t.Errorf("expected jack removed, got %s", got)
	}

	reqs := db.Requests()
	if len(reqs) != 4 {
		t.Fatalf("expected 4 recorded requests, got %d", len(reqs))
	}
	if reqs[0].Method != http.MethodPut || reqs[0].Body != `{"name":"Jack","age":30}` {
		t.Errorf("unexpected first request %+v", reqs[0])
	}
}

func TestFakeDBPutNullDeletes(t *testing.T) {
	db := startDB(t)
	if err := db.Seed("a/b", `1`); err != nil {
		t.Fatal(err)
	}
	call(t, db, http.MethodPut, db.Endpoint("demo")+"a/b.json", "null")
	if got := db.Value(""); got != "null" {
		t.Errorf("expected empty parents pruned, got %s", got)
	}
}

func TestFakeDBErrors(t *testing.T) {
	db := startDB(t)
	base := db.Endpoint("demo")

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
	}{
		{"invalid json", http.MethodPut, base + "a.json", "{", http.StatusBadRequest},
		{"patch non object", http.MethodPatch, base + "a.json", "1", http.StatusBadRequest},
		{"missing suffix", http.MethodGet, base + "a", "", http.StatusNotFound},
		{"filter without orderBy", http.MethodGet, base + "a.json?limitToFirst=1", "", http.StatusBadRequest},
		{"bad orderBy", http.MethodGet, base + "a.json?orderBy=name", "", http.StatusBadRequest},
		{"bad limit", http.MethodGet, base + `a.json?orderBy="$key"&limitToFirst=x`, "", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := call(t, db, tc.method, tc.url, tc.body)
			if status != tc.status {
				t.Errorf("expected %d, got %d", tc.status, status)
			}
		})
	}
}

func TestFakeDBQuery(t *testing.T) {
	db := startDB(t)
	if err := db.Seed("dinosaurs", `{
		"bruhathkayosaurus": {"height": 25},
		"lambeosaurus": {"height": 2.1},
		"linhenykus": {"height": 0.6},
		"pterodactyl": {"height": 0.6},
		"stegosaurus": {"height": 4}
	}`); err != nil {
		t.Fatal(err)
	}
	base := db.Endpoint("dinosaur-facts") + "dinosaurs.json?"

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"first by key", `orderBy="$key"&limitToFirst=2`, []string{"bruhathkayosaurus", "lambeosaurus"}},
		{"last by child", `orderBy="height"&limitToLast=2`, []string{"bruhathkayosaurus", "stegosaurus"}},
		{"equal child", `orderBy="height"&equalTo=0.6`, []string{"linhenykus", "pterodactyl"}},
		{"key range", `orderBy="$key"&startAt="l"&endAt="m"`, []string{"lambeosaurus", "linhenykus"}},
		{"child range", `orderBy="height"&startAt=2&endAt=5`, []string{"lambeosaurus", "stegosaurus"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, db, http.MethodGet, base+tc.query, "")
			if status != http.StatusOK {
				t.Fatalf("status %d: %s", status, body)
			}
			var got map[string]any
			if err := json.Unmarshal([]byte(body), &got); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %s", tc.want, body)
			}
			for _, k := range tc.want {
				if _, ok := got[k]; !ok {
					t.Errorf("missing %s in %s", k, body)
				}
			}
		})
	}
}

func TestFakeDBRecordsRawQuery(t *testing.T) {
	db := startDB(t)
	call(t, db, http.MethodGet, db.Endpoint("demo")+`a.json?orderBy="$key"&limitToFirst=1`, "")
	last, _ := db.LastRequest()
	if last.RawQuery != `orderBy="$key"&limitToFirst=1` {
		t.Errorf("raw query %q", last.RawQuery)
	}
	if last.RequestURI != `/a.json?orderBy="$key"&limitToFirst=1` {
		t.Errorf("request URI %q", last.RequestURI)
	}
}

func TestFakeDBFailNext(t *testing.T) {
	db := startDB(t)
	db.FailNext(http.StatusUnauthorized, `{"error":"Permission denied"}`)

	status, body := call(t, db, http.MethodPut, db.Endpoint("demo")+"a.json", "1")
	if status != http.StatusUnauthorized || body != `{"error":"Permission denied"}` {
		t.Errorf("got %d %s", status, body)
	}
	if got := db.Value("a"); got != "null" {
		t.Errorf("injected failure must not write, got %s", got)
	}

	status, _ = call(t, db, http.MethodPut, db.Endpoint("demo")+"a.json", "1")
	if status != http.StatusOK {
		t.Errorf("expected failure consumed, got %d", status)
	}
}

func TestFakeDBSnapshotRestoreReset(t *testing.T) {
	db := startDB(t)
	h := T(t)
	if err := db.Seed("a", `{"b":1}`); err != nil {
		t.Fatal(err)
	}
	snap := h.Snapshot(db)

	if err := db.Seed("a/c", `2`); err != nil {
		t.Fatal(err)
	}
	h.Restore(db, snap)
	if got := db.Value("a"); got != `{"b":1}` {
		t.Errorf("after restore: %s", got)
	}

	call(t, db, http.MethodGet, db.Endpoint("demo")+"a.json", "")
	db.FailNext(http.StatusInternalServerError, "")
	h.Reset(db)
	if got := db.Value(""); got != "null" {
		t.Errorf("after reset: %s", got)
	}
	if len(db.Requests()) != 0 {
		t.Error("expected requests cleared")
	}
	if status, _ := call(t, db, http.MethodGet, db.Endpoint("demo")+"a.json", ""); status != http.StatusOK {
		t.Errorf("expected pending failure cleared, got %d", status)
	}

	if err := db.Restore(context.Background(), "not bytes"); err == nil {
		t.Error("expected error for unsupported snapshot")
	}
}

func TestFakeDBLifecycle(t *testing.T) {
	db := NewFakeDB(t)
	ctx := context.Background()

	if db.Addr() != "" {
		t.Error("expected no address before start")
	}
	client := &http.Client{Transport: db.Transport()}
	if _, err := client.Get(db.Endpoint("demo") + ".json"); err == nil {
		t.Error("expected dial error before start")
	}

	if err := db.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := db.Start(ctx); err == nil {
		t.Error("expected error on second start")
	}
	if db.Addr() == "" {
		t.Error("expected address after start")
	}
	if err := db.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := db.Stop(ctx); err != nil {
		t.Errorf("second stop: %v", err)
	}
}
