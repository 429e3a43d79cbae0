// Package edctest provides an in-memory fake of a connector management API
// for tests.
package edctest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
	"github.com/c360studio/edcclient/query"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
)

// Resource names served under /management/v3.
const (
	Assets              = "assets"
	Policies            = "policydefinitions"
	ContractDefinitions = "contractdefinitions"
	Negotiations        = "contractnegotiations"
	Agreements          = "contractagreements"
	Transfers           = "transferprocesses"
	Secrets             = "secrets"
)

// Request is a request received by the server.
type Request struct {
	Method    string
	Path      string
	APIKey    string
	RequestID string
	Body      []byte
}

// Server is a fake management API. Documents are kept per resource in
// creation order.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	apiKey     string
	stores     map[string]*store
	catalog    *properties.Properties
	datasets   map[string]*properties.Properties
	dataPlanes []*properties.Properties
	failures   []int
	requests   []Request
}

type store struct {
	ids  []string
	docs map[string]*properties.Properties
}

func newStore() *store {
	return &store{docs: make(map[string]*properties.Properties)}
}

func (s *store) put(id string, doc *properties.Properties) {
	if _, ok := s.docs[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.docs[id] = doc
}

func (s *store) delete(id string) bool {
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	s.ids = slices.DeleteFunc(s.ids, func(x string) bool { return x == id })
	return true
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKey makes the server reject requests without this X-Api-Key.
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// NewServer starts a fake connector. It is closed when the test ends.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		stores:   make(map[string]*store),
		datasets: make(map[string]*properties.Properties),
	}
	for _, name := range []string{Assets, Policies, ContractDefinitions, Negotiations, Agreements, Transfers, Secrets} {
		s.stores[name] = newStore()
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// ManagementURL returns the base URL to hand to a client.
func (s *Server) ManagementURL() string {
	return s.URL + "/management"
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.authenticate, s.injectFailures)

	r.Route("/management/v3", func(r chi.Router) {
		for _, name := range []string{Assets, Policies, ContractDefinitions, Secrets} {
			r.Route("/"+name, func(r chi.Router) {
				r.Post("/", s.handleCreate(name, nil))
				r.Put("/", s.handleUpdate(name))
				r.Put("/{id}", s.handleUpdate(name))
				r.Post("/request", s.handleQuery(name))
				r.Get("/{id}", s.handleGet(name))
				r.Delete("/{id}", s.handleDelete(name))
			})
		}

		r.Route("/"+Negotiations, func(r chi.Router) {
			r.Post("/", s.handleCreate(Negotiations, newNegotiation))
			r.Post("/request", s.handleQuery(Negotiations))
			r.Get("/{id}", s.handleGet(Negotiations))
			r.Get("/{id}/state", s.handleState(Negotiations))
			r.Get("/{id}/agreement", s.handleNegotiationAgreement)
			r.Post("/{id}/terminate", s.handleTransition(Negotiations, "TERMINATED"))
		})

		r.Route("/"+Agreements, func(r chi.Router) {
			r.Post("/request", s.handleQuery(Agreements))
			r.Get("/{id}", s.handleGet(Agreements))
			r.Get("/{id}/negotiation", s.handleAgreementNegotiation)
		})

		r.Route("/"+Transfers, func(r chi.Router) {
			r.Post("/", s.handleCreate(Transfers, newTransfer))
			r.Post("/request", s.handleQuery(Transfers))
			r.Get("/{id}", s.handleGet(Transfers))
			r.Get("/{id}/state", s.handleState(Transfers))
			r.Post("/{id}/terminate", s.handleTransition(Transfers, "TERMINATED"))
			r.Post("/{id}/suspend", s.handleTransition(Transfers, "SUSPENDED"))
			r.Post("/{id}/resume", s.handleTransition(Transfers, "STARTED"))
			r.Post("/{id}/deprovision", s.handleTransition(Transfers, "DEPROVISIONED"))
		})

		r.Post("/catalog/request", s.handleCatalog)
		r.Post("/catalog/dataset/request", s.handleDataset)
		r.Get("/dataplanes", s.handleDataPlanes)
	})

	return r
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// FailNext makes the next len(statuses) requests fail with the given status
// codes, in order.
func (s *Server) FailNext(statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, statuses...)
}

// Seed stores a document under resource. It panics on invalid JSON or a
// document without an @id.
func (s *Server) Seed(resource, doc string) {
	props := mustParse(doc)
	id, _, _ := properties.Get[string](props, "@id")
	if id == "" {
		panic("edctest: seeded document has no @id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[resource].put(id, props)
}

// Document returns a copy of a stored document.
func (s *Server) Document(resource, id string) (*properties.Properties, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.stores[resource].docs[id]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// SetCatalog sets the document answered to catalog requests.
func (s *Server) SetCatalog(doc string) {
	props := mustParse(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = props
}

// SetDataset sets the document answered to a dataset request for id.
func (s *Server) SetDataset(id, doc string) {
	props := mustParse(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[id] = props
}

// AddDataPlane registers a data plane document.
func (s *Server) AddDataPlane(doc string) {
	props := mustParse(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataPlanes = append(s.dataPlanes, props)
}

// Finalize moves negotiation id to FINALIZED and stores an agreement for the
// asset it targets.
func (s *Server) Finalize(negotiationID, agreementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	neg, ok := s.stores[Negotiations].docs[negotiationID]
	if !ok {
		panic("edctest: unknown negotiation " + negotiationID)
	}
	neg.Set("state", "FINALIZED").Set("contractAgreementId", agreementID)

	offer, _, _ := properties.Get[*properties.Properties](neg, "policy")
	target, _, _ := properties.Get[string](offer, "target")
	provider, _, _ := properties.Get[string](neg, "counterPartyId")

	agreement := properties.New().
		Set("@type", "ContractAgreement").
		Set("@id", agreementID).
		Set("assetId", target).
		Set("consumerId", "consumer").
		Set("providerId", provider).
		Set("contractSigningDate", time.Now().Unix())
	if offer != nil {
		agreement.Set("policy", offer.Set("@type", "Agreement"))
	}
	s.stores[Agreements].put(agreementID, agreement)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
			return
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			APIKey:    r.Header.Get("X-Api-Key"),
			RequestID: r.Header.Get("X-Request-Id"),
			Body:      body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "AuthenticationFailed", "Request could not be authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var status int
		if len(s.failures) > 0 {
			status, s.failures = s.failures[0], s.failures[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, "InjectedFailure", http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCreate(resource string, build func(body *properties.Properties) *properties.Properties) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := decodeBody(w, r)
		if !ok {
			return
		}
		if build != nil {
			doc = build(doc)
		}
		id, _, _ := properties.Get[string](doc, "@id")
		if id == "" {
			id = uuid.New().String()
			doc.Set("@id", id)
		}
		createdAt := time.Now().UnixMilli()
		if !doc.Has("createdAt") && resource == Negotiations {
			doc.Set("createdAt", createdAt)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		st := s.stores[resource]
		if _, exists := st.docs[id]; exists {
			writeError(w, http.StatusConflict, "ObjectConflict", "Object of type "+resource+" with ID="+id+" already exists")
			return
		}
		st.put(id, doc)

		writeJSON(w, http.StatusOK, envelope(properties.New().
			Set("@type", "IdResponse").
			Set("@id", id).
			Set("createdAt", createdAt)))
	}
}

func (s *Server) handleUpdate(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := decodeBody(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "id")
		if id == "" {
			id, _, _ = properties.Get[string](doc, "@id")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		st := s.stores[resource]
		if _, exists := st.docs[id]; !exists {
			writeNotFound(w, resource, id)
			return
		}
		doc.Set("@id", id)
		st.put(id, doc)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGet(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		s.mu.Lock()
		doc, ok := s.stores[resource].docs[id]
		if ok {
			doc = doc.Clone()
		}
		s.mu.Unlock()

		if !ok {
			writeNotFound(w, resource, id)
			return
		}
		writeJSON(w, http.StatusOK, envelope(doc))
	}
}

func (s *Server) handleDelete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		s.mu.Lock()
		deleted := s.stores[resource].delete(id)
		s.mu.Unlock()

		if !deleted {
			writeNotFound(w, resource, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleQuery(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := query.All()
		if body, _ := readBody(r); len(body) > 0 {
			parsed, err := jsonld.Unwrap[query.Query](body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
				return
			}
			q = parsed
		}

		s.mu.Lock()
		st := s.stores[resource]
		var matched []*properties.Properties
		for _, id := range st.ids {
			if matches(st.docs[id], q.FilterExpression) {
				matched = append(matched, st.docs[id].Clone())
			}
		}
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, page(matched, q))
	}
}

func (s *Server) handleState(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		s.mu.Lock()
		doc, ok := s.stores[resource].docs[id]
		var state string
		if ok {
			state, _, _ = properties.Get[string](doc, "state")
		}
		s.mu.Unlock()

		if !ok {
			writeNotFound(w, resource, id)
			return
		}
		writeJSON(w, http.StatusOK, envelope(properties.New().Set("state", state)))
	}
}

func (s *Server) handleTransition(resource, state string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		s.mu.Lock()
		doc, ok := s.stores[resource].docs[id]
		if ok {
			doc.Set("state", state).Set("stateTimestamp", time.Now().UnixMilli())
		}
		s.mu.Unlock()

		if !ok {
			writeNotFound(w, resource, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleNegotiationAgreement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	var agreement *properties.Properties
	if neg, ok := s.stores[Negotiations].docs[id]; ok {
		agreementID, _, _ := properties.Get[string](neg, "contractAgreementId")
		agreement = s.stores[Agreements].docs[agreementID]
	}
	if agreement != nil {
		agreement = agreement.Clone()
	}
	s.mu.Unlock()

	if agreement == nil {
		writeNotFound(w, Agreements, id)
		return
	}
	writeJSON(w, http.StatusOK, envelope(agreement))
}

func (s *Server) handleAgreementNegotiation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	var found *properties.Properties
	for _, neg := range s.stores[Negotiations].docs {
		if agreementID, _, _ := properties.Get[string](neg, "contractAgreementId"); agreementID == id {
			found = neg.Clone()
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		writeNotFound(w, Negotiations, id)
		return
	}
	writeJSON(w, http.StatusOK, envelope(found))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.catalog
	if doc != nil {
		doc = doc.Clone()
	}
	s.mu.Unlock()

	if doc == nil {
		writeError(w, http.StatusBadGateway, "CatalogUnavailable", "counter-party did not answer")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	body, _ := readBody(r)
	var req struct {
		ID string `json:"@id"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	s.mu.Lock()
	doc, ok := s.datasets[req.ID]
	if ok {
		doc = doc.Clone()
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "dataset", req.ID)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDataPlanes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]*properties.Properties, len(s.dataPlanes))
	for i, dp := range s.dataPlanes {
		out[i] = envelope(dp.Clone())
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func newNegotiation(body *properties.Properties) *properties.Properties {
	doc := properties.New().
		Set("@type", "ContractNegotiation").
		Set("type", "CONSUMER").
		Set("state", "REQUESTED")
	for _, key := range []string{"protocol", "counterPartyId", "counterPartyAddress", "callbackAddresses", "policy"} {
		if v, ok := body.Raw(key); ok {
			doc.SetValue(key, v)
		}
	}
	return doc
}

func newTransfer(body *properties.Properties) *properties.Properties {
	contractID, _, _ := properties.Get[string](body, "contractId")
	doc := properties.New().
		Set("@type", "TransferProcess").
		Set("type", "CONSUMER").
		Set("state", "REQUESTED").
		Set("stateTimestamp", time.Now().UnixMilli()).
		Set("contractId", contractID).
		Set("correlationId", uuid.New().String())
	for _, key := range []string{"transferType", "dataDestination", "callbackAddresses"} {
		if v, ok := body.Raw(key); ok {
			doc.SetValue(key, v)
		}
	}
	return doc
}

// matches applies the equality criteria of a filter. Left operands may be
// plain keys, vocabulary IRIs, or "properties.<key>" paths into asset
// properties.
func matches(doc *properties.Properties, filter []query.Criterion) bool {
	for _, c := range filter {
		if c.Operator != "=" {
			continue
		}
		got, ok := lookup(doc, c.OperandLeft)
		if !ok || !got.Equal(c.OperandRight) {
			return false
		}
	}
	return true
}

func lookup(doc *properties.Properties, path string) (properties.Value, bool) {
	path = strings.TrimPrefix(path, dataspace.EDC)
	if path == "id" {
		path = "@id"
	}
	if v, ok := doc.Raw(path); ok {
		return v, true
	}
	if rest, ok := strings.CutPrefix(path, "properties."); ok {
		props, _, _ := properties.Get[*properties.Properties](doc, "properties")
		return lookup(props, strings.Trim(rest, "'"))
	}
	if props, _, _ := properties.Get[*properties.Properties](doc, "properties"); props != nil {
		if v, ok := props.Raw(dataspace.EDC + path); ok {
			return v, true
		}
		return props.Raw(path)
	}
	return properties.Value{}, false
}

func page(docs []*properties.Properties, q query.Query) []*properties.Properties {
	start := min(max(q.Offset, 0), len(docs))
	end := len(docs)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(docs))
	}
	out := make([]*properties.Properties, 0, end-start)
	for _, doc := range docs[start:end] {
		out = append(out, envelope(doc))
	}
	return out
}
