package stubserver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

var (
	errUserExists         = errors.New("user already exists")
	errInvalidCredentials = errors.New("invalid credentials")
	errUserNotFound       = errors.New("user not found")
	errPresentationGone   = errors.New("presentation not found")
	errItemNotFound       = errors.New("cart item not found")
	errInvalidQuantity    = errors.New("quantity must be at least 1")
	errUnknownLocation    = errors.New("unknown fulfillment location")
	errOutOfStock         = errors.New("insufficient stock")
	errEmptyCart          = errors.New("cart is empty")
)

// Presentation is a purchasable packaging variant in the stub catalog.
type Presentation struct {
	ID         int64
	Name       string
	UnitPrice  decimal.Decimal
	OutOfStock bool
}

type credential struct {
	userID int64
	hash   []byte
}

// Store holds all server-side state: users, catalog, carts, and the order
// counter. All price arithmetic happens here — the client under test must
// only ever echo these numbers back.
type Store struct {
	mu            sync.Mutex
	users         map[int64]*domain.User
	creds         map[string]credential
	presentations map[int64]*Presentation
	locations     map[int64]string
	carts         map[int64]*domain.Cart

	nextUserID  int64
	nextCartID  int64
	nextItemID  int64
	nextOrderID int64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*domain.User),
		creds:         make(map[string]credential),
		presentations: make(map[int64]*Presentation),
		carts:         make(map[int64]*domain.Cart),
		locations: map[int64]string{
			1: "central store",
			2: "north warehouse",
		},
	}
}

// SeedPresentation adds a catalog entry. Price is parsed as a decimal
// string; a malformed price panics, which is acceptable in test setup.
func (s *Store) SeedPresentation(id int64, name, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presentations[id] = &Presentation{
		ID:        id,
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
	}
}

// SetOutOfStock toggles confirm-time stock failure for a presentation.
func (s *Store) SetOutOfStock(id int64, out bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.presentations[id]; ok {
		p.OutOfStock = out
	}
}

func (s *Store) CreateUser(name, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.creds[email]; exists {
		return nil, errUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.nextUserID++
	user := &domain.User{
		ID:     s.nextUserID,
		Name:   name,
		Email:  email,
		Role:   domain.RoleCustomer,
		Active: true,
	}
	s.users[user.ID] = user
	s.creds[email] = credential{userID: user.ID, hash: hash}

	clone := *user
	return &clone, nil
}

func (s *Store) Authenticate(email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[email]
	if !ok {
		return nil, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(cred.hash, []byte(password)) != nil {
		return nil, errInvalidCredentials
	}

	clone := *s.users[cred.userID]
	return &clone, nil
}

func (s *Store) User(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	clone := *user
	return &clone, nil
}

// Cart returns the user's active cart snapshot, or an empty one when no
// cart exists yet.
func (s *Store) Cart(userID int64) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(userID).Clone()
}

func (s *Store) AddItem(userID, presentationID int64, quantity decimal.Decimal, note string) (*domain.Cart, error) {
	if quantity.LessThan(decimal.NewFromInt(1)) {
		return nil, errInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return nil, errPresentationGone
	}

	cart := s.cartLocked(userID)
	if cart.ID == 0 {
		// Implicit cart creation on first add.
		s.nextCartID++
		cart.ID = s.nextCartID
		cart.CreatedAt = time.Now().UTC()
		s.carts[userID] = cart
	}

	// Same presentation twice merges into one line.
	for i := range cart.Items {
		if cart.Items[i].PresentationID == presentationID {
			cart.Items[i].Quantity = cart.Items[i].Quantity.Add(quantity)
			cart.Items[i].LineSubtotal = p.UnitPrice.Mul(cart.Items[i].Quantity).Round(2)
			if note != "" {
				cart.Items[i].Note = note
			}
			cart.UpdatedAt = time.Now().UTC()
			return cart.Clone(), nil
		}
	}

	s.nextItemID++
	cart.Items = append(cart.Items, domain.CartItem{
		ID:             s.nextItemID,
		PresentationID: presentationID,
		Quantity:       quantity,
		UnitPrice:      p.UnitPrice,
		LineSubtotal:   p.UnitPrice.Mul(quantity).Round(2),
		Note:           note,
	})
	cart.UpdatedAt = time.Now().UTC()
	return cart.Clone(), nil
}

func (s *Store) UpdateItem(userID, itemID int64, quantity *decimal.Decimal, note *string) (*domain.Cart, error) {
	if quantity != nil && quantity.LessThan(decimal.NewFromInt(1)) {
		return nil, errInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	item := cart.Item(itemID)
	if item == nil {
		return nil, errItemNotFound
	}

	if quantity != nil {
		p := s.presentations[item.PresentationID]
		item.Quantity = *quantity
		item.LineSubtotal = p.UnitPrice.Mul(*quantity).Round(2)
	}
	if note != nil {
		item.Note = *note
	}
	cart.UpdatedAt = time.Now().UTC()
	return cart.Clone(), nil
}

func (s *Store) RemoveItem(userID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return errItemNotFound
}

func (s *Store) ClearCart(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// ConfirmCart atomically converts the active cart into an order and
// returns the order id and server-computed total.
func (s *Store) ConfirmCart(userID, locationID int64) (int64, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locations[locationID]; !ok {
		return 0, decimal.Zero, errUnknownLocation
	}

	cart, ok := s.carts[userID]
	if !ok || len(cart.Items) == 0 {
		return 0, decimal.Zero, errEmptyCart
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		if p := s.presentations[item.PresentationID]; p != nil && p.OutOfStock {
			return 0, decimal.Zero, fmt.Errorf("%w for %s", errOutOfStock, p.Name)
		}
		total = total.Add(item.LineSubtotal)
	}

	cart.Status = domain.CartStatusConverted
	delete(s.carts, userID)

	s.nextOrderID++
	return s.nextOrderID, total, nil
}

// cartLocked returns the user's active cart, or a fresh empty snapshot not
// yet registered in the map. Caller must hold s.mu.
func (s *Store) cartLocked(userID int64) *domain.Cart {
	if cart, ok := s.carts[userID]; ok {
		return cart
	}
	return &domain.Cart{
		CustomerID: userID,
		Status:     domain.CartStatusActive,
		Items:      []domain.CartItem{},
	}
}
