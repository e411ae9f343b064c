package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso. El memTxRunner implementa rollback
// real por snapshot: si la función transaccional falla, el estado del store
// (incluidos los contadores) vuelve al punto de partida — el mismo contrato
// que da PostgreSQL en producción.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	clients  map[string]*entity.Client
	docs     map[string]*entity.Document
	items    map[string][]*entity.LineItem // por documento
	counters map[string]int64              // kind|clientID|period

	failNextUpdate bool // inyección de fallo para probar rollback
}

func newMemStore() *memStore {
	return &memStore{
		clients:  map[string]*entity.Client{},
		docs:     map[string]*entity.Document{},
		items:    map[string][]*entity.LineItem{},
		counters: map[string]int64{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.clients {
		cp := *v
		c.clients[k] = &cp
	}
	for k, v := range s.docs {
		cp := *v
		c.docs[k] = &cp
	}
	for k, list := range s.items {
		cp := make([]*entity.LineItem, len(list))
		for i, it := range list {
			itc := *it
			cp[i] = &itc
		}
		c.items[k] = cp
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.clients = snap.clients
	s.docs = snap.docs
	s.items = snap.items
	s.counters = snap.counters
}

// ── ClientRepository ──────────────────────────────────────────────────────────

type memClientRepo struct{ store *memStore }

var _ repository.ClientRepository = (*memClientRepo)(nil)

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.store.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.store.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetBySIRET(siret string) (*entity.Client, error) {
	for _, c := range r.store.clients {
		if c.SIRET == siret {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.store.clients))
	for _, c := range r.store.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.store.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) Delete(id string) error {
	delete(r.store.clients, id)
	return nil
}

// ── DocumentRepository ────────────────────────────────────────────────────────

type memDocRepo struct{ store *memStore }

var _ repository.DocumentRepository = (*memDocRepo)(nil)

func (r *memDocRepo) Create(doc *entity.Document) error {
	cp := *doc
	r.store.docs[doc.ID] = &cp
	return nil
}

func (r *memDocRepo) Update(doc *entity.Document) error {
	if r.store.failNextUpdate {
		r.store.failNextUpdate = false
		return fmt.Errorf("update document: %w", domain.ErrStorage)
	}
	cp := *doc
	r.store.docs[doc.ID] = &cp
	return nil
}

func (r *memDocRepo) GetByID(id string) (*entity.Document, error) {
	doc, ok := r.store.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (r *memDocRepo) ListByKind(kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range r.store.docs {
		if doc.Kind == kind {
			cp := *doc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memDocRepo) Delete(id string) error {
	delete(r.store.docs, id)
	return nil
}

func (r *memDocRepo) CountByClient(clientID string) (int, error) {
	n := 0
	for _, doc := range r.store.docs {
		if doc.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (r *memDocRepo) CreateItem(item *entity.LineItem) error {
	cp := *item
	r.store.items[item.DocumentID] = append(r.store.items[item.DocumentID], &cp)
	return nil
}

func (r *memDocRepo) GetItemsByDocumentID(documentID string) ([]*entity.LineItem, error) {
	list := r.store.items[documentID]
	out := make([]*entity.LineItem, len(list))
	for i, it := range list {
		cp := *it
		out[i] = &cp
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memDocRepo) DeleteItemsByDocument(documentID string) error {
	delete(r.store.items, documentID)
	return nil
}

// ── CounterRepository ─────────────────────────────────────────────────────────

type memCounterRepo struct{ store *memStore }

var _ repository.CounterRepository = (*memCounterRepo)(nil)

func (r *memCounterRepo) Next(kind entity.DocumentKind, clientID, period string) (int64, error) {
	key := string(kind) + "|" + clientID + "|" + period
	r.store.counters[key]++
	return r.store.counters[key], nil
}

// ── BillingTxRunner ───────────────────────────────────────────────────────────

type memTxRunner struct{ store *memStore }

var _ BillingTxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) RunBilling(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	counterRepo repository.CounterRepository,
) error) error {
	snap := r.store.clone()
	if err := fn(&memDocRepo{store: r.store}, &memCounterRepo{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
