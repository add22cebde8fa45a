package impl

import (
	"context"
	"fmt"
	"sort"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
)

// memStore is a shared in-memory backing store for the fake repositories.
// The fake transaction manager snapshots and restores it to reproduce
// rollback semantics.
type memStore struct {
	users       map[uuid.UUID]*entity.User
	vendors     map[uuid.UUID]*entity.Vendor
	products    map[uuid.UUID]*entity.Product
	orders      map[uuid.UUID]*entity.Order
	commissions map[uuid.UUID]*entity.Commission
	settlements map[uuid.UUID]*entity.Settlement
	sessions    map[string]*entity.RefreshToken
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uuid.UUID]*entity.User),
		vendors:     make(map[uuid.UUID]*entity.Vendor),
		products:    make(map[uuid.UUID]*entity.Product),
		orders:      make(map[uuid.UUID]*entity.Order),
		commissions: make(map[uuid.UUID]*entity.Commission),
		settlements: make(map[uuid.UUID]*entity.Settlement),
		sessions:    make(map[string]*entity.RefreshToken),
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.Vendor != nil {
		v := *u.Vendor
		c.Vendor = &v
	}

	return &c
}

func cloneVendor(v *entity.Vendor) *entity.Vendor {
	c := *v

	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p

	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = make([]entity.OrderItem, len(o.Items))
	copy(c.Items, o.Items)

	return &c
}

func cloneCommission(c *entity.Commission) *entity.Commission {
	cp := *c

	return &cp
}

func cloneSettlement(s *entity.Settlement) *entity.Settlement {
	c := *s
	if s.PaidAt != nil {
		t := *s.PaidAt
		c.PaidAt = &t
	}

	return &c
}

func cloneSession(s *entity.RefreshToken) *entity.RefreshToken {
	c := *s

	return &c
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	for id, v := range s.vendors {
		snap.vendors[id] = cloneVendor(v)
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for id, c := range s.commissions {
		snap.commissions[id] = cloneCommission(c)
	}
	for id, st := range s.settlements {
		snap.settlements[id] = cloneSettlement(st)
	}
	for hash, sess := range s.sessions {
		snap.sessions[hash] = cloneSession(sess)
	}

	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.users = snap.users
	s.vendors = snap.vendors
	s.products = snap.products
	s.orders = snap.orders
	s.commissions = snap.commissions
	s.settlements = snap.settlements
	s.sessions = snap.sessions
}

// fakeTxManager reproduces transaction semantics against the memStore: the
// callback's writes survive only when it returns nil.
type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snap := m.store.snapshot()
	if err := fn(&fakeFactory{store: m.store}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

type fakeFactory struct {
	store *memStore
}

func (f *fakeFactory) NewUserRepository() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeFactory) NewVendorRepository() repository.VendorRepository {
	return &fakeVendorRepo{store: f.store}
}

func (f *fakeFactory) NewProductRepository() repository.ProductRepository {
	return &fakeProductRepo{store: f.store}
}

func (f *fakeFactory) NewOrderRepository() repository.OrderRepository {
	return &fakeOrderRepo{store: f.store}
}

func (f *fakeFactory) NewCommissionRepository() repository.CommissionRepository {
	return &fakeCommissionRepo{store: f.store}
}

func (f *fakeFactory) NewSettlementRepository() repository.SettlementRepository {
	return &fakeSettlementRepo{store: f.store}
}

func (f *fakeFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return &fakeRefreshTokenRepo{store: f.store}
}

// --- user repository ---

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.store.users[user.ID] = cloneUser(user)

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.withVendor(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return r.withVendor(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) withVendor(user *entity.User) *entity.User {
	c := cloneUser(user)
	for _, vendor := range r.store.vendors {
		if vendor.UserID == user.ID {
			c.Vendor = cloneVendor(vendor)

			break
		}
	}

	return c
}

// --- vendor repository ---

type fakeVendorRepo struct {
	store *memStore
}

func (r *fakeVendorRepo) Create(_ context.Context, vendor *entity.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	vendor.CreatedAt = time.Now()
	r.store.vendors[vendor.ID] = cloneVendor(vendor)

	return nil
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vendor, error) {
	vendor, ok := r.store.vendors[id]
	if !ok {
		return nil, repository.ErrVendorNotFound
	}

	return cloneVendor(vendor), nil
}

func (r *fakeVendorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	for _, vendor := range r.store.vendors {
		if vendor.UserID == userID {
			return cloneVendor(vendor), nil
		}
	}

	return nil, repository.ErrVendorNotFound
}

func (r *fakeVendorRepo) List(_ context.Context, status *entity.ApprovalStatus) ([]*entity.Vendor, error) {
	vendors := make([]*entity.Vendor, 0)
	for _, vendor := range r.store.vendors {
		if status != nil && vendor.Status != *status {
			continue
		}
		c := cloneVendor(vendor)
		if owner, ok := r.store.users[vendor.UserID]; ok {
			c.OwnerName = owner.Name
			c.OwnerEmail = owner.Email
		}
		vendors = append(vendors, c)
	}
	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].CreatedAt.After(vendors[j].CreatedAt)
	})

	return vendors, nil
}

func (r *fakeVendorRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ApprovalStatus) (*entity.Vendor, error) {
	vendor, ok := r.store.vendors[id]
	if !ok {
		return nil, repository.ErrVendorNotFound
	}
	vendor.Status = status
	vendor.UpdatedAt = time.Now()

	return cloneVendor(vendor), nil
}

// --- product repository ---

type fakeProductRepo struct {
	store *memStore
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	r.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, qty int) error {
	product, ok := r.store.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if product.Stock < qty {
		return repository.ErrStockExhausted
	}
	product.Stock -= qty

	return nil
}

func (r *fakeProductRepo) ListPublic(_ context.Context) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	for _, product := range r.store.products {
		if !product.IsPurchasable() {
			continue
		}
		c := cloneProduct(product)
		if vendor, ok := r.store.vendors[product.VendorID]; ok {
			c.ShopName = vendor.ShopName
		}
		products = append(products, c)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *fakeProductRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	for _, product := range r.store.products {
		if product.VendorID == vendorID {
			products = append(products, cloneProduct(product))
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *fakeProductRepo) List(_ context.Context, status *entity.ApprovalStatus) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	for _, product := range r.store.products {
		if status != nil && product.Status != *status {
			continue
		}
		c := cloneProduct(product)
		if vendor, ok := r.store.vendors[product.VendorID]; ok {
			c.ShopName = vendor.ShopName
		}
		products = append(products, c)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	r.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *fakeProductRepo) UpdateModeration(_ context.Context, id uuid.UUID, status entity.ApprovalStatus, visible bool) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	product.Status = status
	product.IsVisible = visible
	product.UpdatedAt = time.Now()

	return cloneProduct(product), nil
}

func (r *fakeProductRepo) SetVisibility(_ context.Context, id uuid.UUID, visible bool) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	product.IsVisible = visible
	product.UpdatedAt = time.Now()

	return cloneProduct(product), nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id, vendorID uuid.UUID) error {
	product, ok := r.store.products[id]
	if !ok || product.VendorID != vendorID {
		return repository.ErrProductNotFound
	}
	delete(r.store.products, id)

	return nil
}

// --- order repository ---

type fakeOrderRepo struct {
	store *memStore
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = order.CreatedAt
	}
	r.store.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *fakeOrderRepo) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)
	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// --- commission repository ---

type fakeCommissionRepo struct {
	store *memStore
}

func (r *fakeCommissionRepo) Create(_ context.Context, commission *entity.Commission) error {
	if commission.ID == uuid.Nil {
		commission.ID = uuid.New()
	}
	if commission.CreatedAt.IsZero() {
		commission.CreatedAt = time.Now()
	}
	r.store.commissions[commission.ID] = cloneCommission(commission)

	return nil
}

func (r *fakeCommissionRepo) FindByVendorInRange(_ context.Context, vendorID uuid.UUID, from, to time.Time) ([]*entity.Commission, error) {
	commissions := make([]*entity.Commission, 0)
	for _, commission := range r.store.commissions {
		if commission.VendorID != vendorID {
			continue
		}
		if commission.CreatedAt.Before(from) || commission.CreatedAt.After(to) {
			continue
		}
		commissions = append(commissions, cloneCommission(commission))
	}
	sort.Slice(commissions, func(i, j int) bool {
		return commissions[i].CreatedAt.Before(commissions[j].CreatedAt)
	})

	return commissions, nil
}

// --- settlement repository ---

type fakeSettlementRepo struct {
	store *memStore
}

func (r *fakeSettlementRepo) Create(_ context.Context, settlement *entity.Settlement) error {
	if settlement.ID == uuid.Nil {
		settlement.ID = uuid.New()
	}
	r.store.settlements[settlement.ID] = cloneSettlement(settlement)

	return nil
}

func (r *fakeSettlementRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Settlement, error) {
	settlement, ok := r.store.settlements[id]
	if !ok {
		return nil, repository.ErrSettlementNotFound
	}

	return cloneSettlement(settlement), nil
}

func (r *fakeSettlementRepo) List(_ context.Context) ([]*entity.Settlement, error) {
	settlements := make([]*entity.Settlement, 0)
	for _, settlement := range r.store.settlements {
		c := cloneSettlement(settlement)
		if vendor, ok := r.store.vendors[settlement.VendorID]; ok {
			c.ShopName = vendor.ShopName
		}
		settlements = append(settlements, c)
	}
	sort.Slice(settlements, func(i, j int) bool {
		return settlements[i].GeneratedAt.After(settlements[j].GeneratedAt)
	})

	return settlements, nil
}

func (r *fakeSettlementRepo) Update(_ context.Context, settlement *entity.Settlement) error {
	if _, ok := r.store.settlements[settlement.ID]; !ok {
		return repository.ErrSettlementNotFound
	}
	r.store.settlements[settlement.ID] = cloneSettlement(settlement)

	return nil
}

// --- refresh token repository ---

type fakeRefreshTokenRepo struct {
	store *memStore
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	r.store.sessions[token.TokenHash] = cloneSession(token)

	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	session, ok := r.store.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, repository.ErrRefreshTokenExpired
	}

	return cloneSession(session), nil
}

func (r *fakeRefreshTokenRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.store.sessions[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.store.sessions, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, session := range r.store.sessions {
		if session.UserID == userID {
			delete(r.store.sessions, hash)
		}
	}

	return nil
}

// --- domain service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues deterministic tokens and remembers the claims it
// minted them with.
type fakeTokenService struct {
	counter    int
	refreshTTL time.Duration
	access     map[string]*service.Claims
	refresh    map[string]*service.Claims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		refreshTTL: 24 * time.Hour,
		access:     make(map[string]*service.Claims),
		refresh:    make(map[string]*service.Claims),
	}
}

func (s *fakeTokenService) GenerateTokens(userID uuid.UUID, role entity.Role, vendorID *uuid.UUID) (string, string, error) {
	s.counter++
	accessToken := fmt.Sprintf("access-%d", s.counter)
	refreshToken := fmt.Sprintf("refresh-%d", s.counter)
	s.access[accessToken] = &service.Claims{UserID: userID, Role: role, VendorID: vendorID, Type: "access"}
	s.refresh[refreshToken] = &service.Claims{UserID: userID, Role: role, VendorID: vendorID, Type: "refresh"}

	return accessToken, refreshToken, nil
}

func (s *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	claims, ok := s.access[tokenString]
	if !ok {
		return nil, fmt.Errorf("unknown access token %q", tokenString)
	}

	return claims, nil
}

func (s *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	claims, ok := s.refresh[tokenString]
	if !ok {
		return nil, fmt.Errorf("unknown refresh token %q", tokenString)
	}

	return claims, nil
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return s.refreshTTL
}
