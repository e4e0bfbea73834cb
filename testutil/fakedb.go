package testutil

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/firekit/logger"
)

const bodyKey = "fakedb.body"

// RecordedRequest is one request received by a FakeDB.
type RecordedRequest struct {
	Method      string
	Host        string
	Path        string
	RawQuery    string
	RequestURI  string
	Body        string
	ContentType string
	UserAgent   string
}

type injected struct {
	status int
	body   string
}

// FakeDB is an in-memory Realtime Database REST server for tests. It serves
// HTTPS with a certificate valid for *.firebaseio.com, and Transport routes
// every connection to it regardless of the requested host.
type FakeDB struct {
	mu       sync.Mutex
	root     any
	requests []RecordedRequest
	failures []injected

	certs  *Certs
	server *httptest.Server
	engine *gin.Engine
	log    *logger.Logger
}

var _ TestComponent = (*FakeDB)(nil)

// NewFakeDB creates a stopped FakeDB with an empty tree.
func NewFakeDB(t testing.TB) *FakeDB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := &FakeDB{
		certs: GenerateCerts(t, "*.firebaseio.com", "firebaseio.com", "localhost", "127.0.0.1"),
		log:   logger.Get("fakedb"),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), db.record)
	engine.Any("/*path", db.handle)
	db.engine = engine
	return db
}

func (db *FakeDB) Name() string { return "fakedb" }

// Start begins serving TLS on a loopback port.
func (db *FakeDB) Start(_ context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.server != nil {
		return errors.New("fakedb: already started")
	}
	srv := httptest.NewUnstartedServer(db.engine)
	srv.TLS = &tls.Config{
		Certificates: []tls.Certificate{db.certs.ServerTLS},
		MinVersion:   tls.VersionTLS12,
	}
	srv.StartTLS()
	db.server = srv
	db.log.Debug("fakedb started", logger.Fields("addr", srv.Listener.Addr().String()))
	return nil
}

// Stop closes the listener. Stored data survives a restart.
func (db *FakeDB) Stop(_ context.Context) error {
	db.mu.Lock()
	srv := db.server
	db.server = nil
	db.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Reset clears the tree, recorded requests and pending failures.
func (db *FakeDB) Reset(_ context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.root = nil
	db.requests = nil
	db.failures = nil
	return nil
}

// Snapshot returns the tree encoded as JSON.
func (db *FakeDB) Snapshot(_ context.Context) (any, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return json.Marshal(db.root)
}

// Restore replaces the tree with a value returned by Snapshot.
func (db *FakeDB) Restore(_ context.Context, snapshot any) error {
	data, ok := snapshot.([]byte)
	if !ok {
		return fmt.Errorf("fakedb: unsupported snapshot type %T", snapshot)
	}
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("fakedb: decode snapshot: %w", err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.root = prune(root)
	return nil
}

// Endpoint returns the database URL for name, e.g.
// https://name.firebaseio.com/. Requests to it reach this FakeDB only through
// Transport.
func (db *FakeDB) Endpoint(name string) string {
	return "https://" + name + ".firebaseio.com/"
}

// Addr returns the listener address, or "" when stopped.
func (db *FakeDB) Addr() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.server == nil {
		return ""
	}
	return db.server.Listener.Addr().String()
}

// Transport returns a transport that dials this FakeDB for every host and
// trusts its CA.
func (db *FakeDB) Transport() *http.Transport {
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			addr := db.Addr()
			if addr == "" {
				return nil, errors.New("fakedb: not started")
			}
			return dialer.DialContext(ctx, network, addr)
		},
		TLSClientConfig: &tls.Config{
			RootCAs:    db.certs.CertPool,
			MinVersion: tls.VersionTLS12,
		},
		DisableKeepAlives: true,
	}
}

// Certs returns the certificates the FakeDB serves.
func (db *FakeDB) Certs() *Certs { return db.certs }

// Seed stores the JSON value at path ("" or "/" for the root).
func (db *FakeDB) Seed(path, value string) error {
	var v any
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return fmt.Errorf("fakedb: seed %s: %w", path, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.root = setPath(db.root, splitPath(path), prune(v))
	return nil
}

// Value returns the value at path encoded as JSON ("null" when absent).
func (db *FakeDB) Value(path string) string {
	db.mu.Lock()
	defer db.mu.Unlock()
	data, _ := json.Marshal(getPath(db.root, splitPath(path)))
	return string(data)
}

// FailNext makes the next request answer status with body, without touching
// the tree. Calls queue up.
func (db *FakeDB) FailNext(status int, body string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failures = append(db.failures, injected{status: status, body: body})
}

// Requests returns every request received so far.
func (db *FakeDB) Requests() []RecordedRequest {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]RecordedRequest, len(db.requests))
	copy(out, db.requests)
	return out
}

// LastRequest returns the most recent request. ok is false when none was received.
func (db *FakeDB) LastRequest() (req RecordedRequest, ok bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.requests) == 0 {
		return RecordedRequest{}, false
	}
	return db.requests[len(db.requests)-1], true
}

func (db *FakeDB) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	c.Set(bodyKey, body)

	req := RecordedRequest{
		Method:      c.Request.Method,
		Host:        c.Request.Host,
		Path:        c.Request.URL.Path,
		RawQuery:    c.Request.URL.RawQuery,
		RequestURI:  c.Request.RequestURI,
		Body:        string(body),
		ContentType: c.GetHeader("Content-Type"),
		UserAgent:   c.GetHeader("User-Agent"),
	}
	db.mu.Lock()
	db.requests = append(db.requests, req)
	db.mu.Unlock()

	db.log.Debug("fakedb request", logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.RequestURI,
	))
	c.Next()
}

func (db *FakeDB) handle(c *gin.Context) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.failures) > 0 {
		f := db.failures[0]
		db.failures = db.failures[1:]
		c.Data(f.status, "application/json; charset=utf-8", []byte(f.body))
		return
	}

	path := c.Request.URL.Path
	if !strings.HasSuffix(path, ".json") {
		writeError(c, http.StatusNotFound, "Not Found")
		return
	}
	segs := splitPath(strings.TrimSuffix(path, ".json"))
	raw, _ := c.Get(bodyKey)
	body, _ := raw.([]byte)

	switch c.Request.Method {
	case http.MethodGet:
		db.handleGet(c, segs)
	case http.MethodPut:
		v, ok := decodeBody(c, body)
		if !ok {
			return
		}
		v = prune(v)
		db.root = setPath(db.root, segs, v)
		writeJSON(c, http.StatusOK, v)
	case http.MethodPost:
		v, ok := decodeBody(c, body)
		if !ok {
			return
		}
		id, err := uuid.NewV7()
		if err != nil {
			writeError(c, http.StatusInternalServerError, err.Error())
			return
		}
		key := id.String()
		db.root = setPath(db.root, append(segs, key), prune(v))
		writeJSON(c, http.StatusOK, map[string]any{"name": key})
	case http.MethodPatch:
		v, ok := decodeBody(c, body)
		if !ok {
			return
		}
		update, isObject := v.(map[string]any)
		if !isObject {
			writeError(c, http.StatusBadRequest, "Invalid data; couldn't parse JSON object. Are you sending a JSON object with valid key names?")
			return
		}
		for key, child := range update {
			db.root = setPath(db.root, append(append([]string{}, segs...), splitPath(key)...), prune(child))
		}
		writeJSON(c, http.StatusOK, update)
	case http.MethodDelete:
		db.root = setPath(db.root, segs, nil)
		writeJSON(c, http.StatusOK, nil)
	default:
		writeError(c, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (db *FakeDB) handleGet(c *gin.Context, segs []string) {
	q, err := parseQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, q.apply(getPath(db.root, segs)))
}

func decodeBody(c *gin.Context, body []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid data; couldn't parse JSON object, array, or value.")
		return nil, false
	}
	return v, true
}

func writeJSON(c *gin.Context, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

func writeError(c *gin.Context, status int, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	c.Data(status, "application/json; charset=utf-8", data)
}
