package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
)

// Memory is an in-memory Store. It backs the unit tests and is handy for
// local hacking without a MongoDB around. A single mutex guards every
// collection, which makes the conditional decrement atomic the same way a
// single-document update is on the real store.
type Memory struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]models.User
	businesses map[primitive.ObjectID]models.Business
	products   map[primitive.ObjectID]models.Product
	suppliers  map[primitive.ObjectID]models.Supplier
	purchases  map[primitive.ObjectID]models.Purchase
	sales      map[primitive.ObjectID]models.Sale
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[primitive.ObjectID]models.User),
		businesses: make(map[primitive.ObjectID]models.Business),
		products:   make(map[primitive.ObjectID]models.Product),
		suppliers:  make(map[primitive.ObjectID]models.Supplier),
		purchases:  make(map[primitive.ObjectID]models.Purchase),
		sales:      make(map[primitive.ObjectID]models.Sale),
	}
}

func (m *Memory) Users() UserStore          { return (*memUsers)(m) }
func (m *Memory) Businesses() BusinessStore { return (*memBusinesses)(m) }
func (m *Memory) Products() ProductStore    { return (*memProducts)(m) }
func (m *Memory) Suppliers() SupplierStore  { return (*memSuppliers)(m) }
func (m *Memory) Purchases() PurchaseStore  { return (*memPurchases)(m) }
func (m *Memory) Sales() SaleStore          { return (*memSales)(m) }

// --- users ---

type memUsers Memory

func (m *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (m *memUsers) FindByBusinessAndRole(_ context.Context, businessID primitive.ObjectID, role string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for _, u := range m.users {
		if u.BusinessID != nil && *u.BusinessID == businessID && u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *memUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) DeleteByBusinessAndRole(_ context.Context, businessID primitive.ObjectID, role string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, u := range m.users {
		if u.BusinessID != nil && *u.BusinessID == businessID && u.Role == role {
			delete(m.users, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memUsers) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// --- businesses ---

type memBusinesses Memory

func (m *memBusinesses) FindByID(_ context.Context, id primitive.ObjectID) (*models.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *memBusinesses) List(_ context.Context) ([]models.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	businesses := make([]models.Business, 0, len(m.businesses))
	for _, b := range m.businesses {
		businesses = append(businesses, b)
	}
	sort.Slice(businesses, func(i, j int) bool { return businesses[i].CreatedAt.After(businesses[j].CreatedAt) })
	return businesses, nil
}

func (m *memBusinesses) Insert(_ context.Context, b *models.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.businesses[b.ID] = *b
	return nil
}

func (m *memBusinesses) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.businesses[id]; !ok {
		return ErrNotFound
	}
	delete(m.businesses, id)
	return nil
}

// --- products ---

type memProducts Memory

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) List(_ context.Context) ([]models.Product, error) {
	return m.filter(func(models.Product) bool { return true })
}

func (m *memProducts) ListInStock(_ context.Context) ([]models.Product, error) {
	return m.filter(func(p models.Product) bool { return p.CurrentQuantity > 0 })
}

func (m *memProducts) filter(keep func(models.Product) bool) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var products []models.Product
	for _, p := range m.products {
		if keep(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) })
	return products, nil
}

func (m *memProducts) Insert(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, upd ProductUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Name = upd.Name
	p.Description = upd.Description
	p.Unit = upd.Unit
	p.PurchasePrice = upd.PurchasePrice
	p.SellingPrice = upd.SellingPrice
	p.MinStock = upd.MinStock
	p.MaxStock = upd.MaxStock
	p.CurrentQuantity = upd.CurrentQuantity
	m.products[id] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProducts) DecrementQuantity(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.CurrentQuantity < qty {
		return false, nil
	}
	p.CurrentQuantity -= qty
	m.products[id] = p
	return true, nil
}

func (m *memProducts) IncrementQuantity(_ context.Context, id primitive.ObjectID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil // matches update_one on a missing document: zero matches, no error
	}
	p.CurrentQuantity += qty
	m.products[id] = p
	return nil
}

// --- suppliers ---

type memSuppliers Memory

func (m *memSuppliers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memSuppliers) List(_ context.Context) ([]models.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	suppliers := make([]models.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		suppliers = append(suppliers, s)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].CreatedAt.Before(suppliers[j].CreatedAt) })
	return suppliers, nil
}

func (m *memSuppliers) Insert(_ context.Context, s *models.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	m.suppliers[s.ID] = *s
	return nil
}

func (m *memSuppliers) Update(_ context.Context, id primitive.ObjectID, upd SupplierUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[id]
	if !ok {
		return ErrNotFound
	}
	s.Name = upd.Name
	s.ContactPerson = upd.ContactPerson
	s.Phone = upd.Phone
	s.Email = upd.Email
	s.Address = upd.Address
	m.suppliers[id] = s
	return nil
}

func (m *memSuppliers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[id]; !ok {
		return ErrNotFound
	}
	delete(m.suppliers, id)
	return nil
}

// --- purchases ---

type memPurchases Memory

func (m *memPurchases) FindByID(_ context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.purchases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *memPurchases) List(_ context.Context) ([]models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	purchases := make([]models.Purchase, 0, len(m.purchases))
	for _, p := range m.purchases {
		purchases = append(purchases, p)
	}
	sort.Slice(purchases, func(i, j int) bool { return purchases[i].Date.After(purchases[j].Date) })
	return purchases, nil
}

func (m *memPurchases) Insert(_ context.Context, p *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.purchases[p.ID] = *p
	return nil
}

// --- sales ---

type memSales Memory

func (m *memSales) FindByID(_ context.Context, id primitive.ObjectID) (*models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memSales) List(_ context.Context) ([]models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sales := make([]models.Sale, 0, len(m.sales))
	for _, s := range m.sales {
		sales = append(sales, s)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	return sales, nil
}

func (m *memSales) Insert(_ context.Context, s *models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	m.sales[s.ID] = *s
	return nil
}
