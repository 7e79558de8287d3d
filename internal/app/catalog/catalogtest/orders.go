package catalogtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	"github.com/light-bringer/shopcat-service/internal/pkg/session"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Orders is an in-memory orders table, newest first.
type Orders struct {
	ledger *Ledger

	mu   sync.Mutex
	rows map[string]*domain.Order
}

var (
	_ contracts.OrderReader     = (*Orders)(nil)
	_ contracts.OrderRepository = (*Orders)(nil)
)

// NewOrders creates an empty table bound to ledger.
func NewOrders(ledger *Ledger) *Orders {
	return &Orders{ledger: ledger, rows: make(map[string]*domain.Order)}
}

func orderSnapshot(o *domain.Order) *domain.Order {
	return domain.ReconstructOrder(o.ID(), o.UserID(), o.Username(), o.Phone(), o.Address(),
		o.Items(), o.TotalPrice(), o.Status(), o.CreatedAt(), o.UpdatedAt())
}

// Seed stores orders directly.
func (s *Orders) Seed(orders ...*domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		s.rows[o.ID()] = orderSnapshot(o)
	}
}

func (s *Orders) sorted(filter paging.Filter) []*domain.Order {
	out := make([]*domain.Order, 0, len(s.rows))
	for _, o := range s.rows {
		if filter.Kind == paging.FilterStatus && string(o.Status()) != filter.Value {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Scan implements paging.Source.
func (s *Orders) Scan(_ context.Context, filter paging.Filter, limit int, after *paging.Cursor) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Order, 0, limit)
	for _, o := range s.sorted(filter) {
		if after != nil {
			at, _ := after.SortValue.(time.Time)
			if o.CreatedAt().After(at) || (o.CreatedAt().Equal(at) && o.ID() <= after.ID) {
				continue
			}
		}
		if len(out) == limit {
			break
		}
		out = append(out, orderSnapshot(o))
	}
	return out, nil
}

// ScanAt implements paging.Seeker.
func (s *Orders) ScanAt(_ context.Context, filter paging.Filter, offset, limit int) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sorted(filter)
	out := make([]*domain.Order, 0, limit)
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, orderSnapshot(all[i]))
	}
	return out, nil
}

// Count implements paging.Source.
func (s *Orders) Count(_ context.Context, filter paging.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sorted(filter)), nil
}

// CursorOf implements paging.Source.
func (s *Orders) CursorOf(_ paging.Filter, o *domain.Order) paging.Cursor {
	return paging.Cursor{SortValue: o.CreatedAt(), ID: o.ID()}
}

// GetByID returns a fresh copy of a stored order.
func (s *Orders) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.rows[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return orderSnapshot(o), nil
}

// GetByIDWith ignores reader.
func (s *Orders) GetByIDWith(ctx context.Context, _ committer.RowReader, orderID string) (*domain.Order, error) {
	return s.GetByID(ctx, orderID)
}

// InsertMut registers the insert of order.
func (s *Orders) InsertMut(order *domain.Order) (*spanner.Mutation, error) {
	row := orderSnapshot(order)
	mut := spanner.Insert("orders", []string{"order_id"}, []interface{}{order.ID()})
	return s.ledger.register(mut, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[row.ID()] = row
	}), nil
}

// UpdateMut registers a status change, or returns nil when it is clean.
func (s *Orders) UpdateMut(order *domain.Order) *spanner.Mutation {
	if !order.Changes().Dirty(domain.FieldOrderStatus) {
		return nil
	}
	row := orderSnapshot(order)
	mut := spanner.Update("orders", []string{"order_id"}, []interface{}{order.ID()})
	return s.ledger.register(mut, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[row.ID()] = row
	})
}

// MustOrder builds a pending single-item order created at fixedTime plus
// minutes.
func MustOrder(id, userID string, minutes int) *domain.Order {
	items := []domain.OrderItem{{ProductID: "p-1", ProductTitle: "Item", Price: decimalFromInt(10), Quantity: 1}}
	o, err := domain.NewOrder(id, userID, "user", "555", "street", items, fixedTime.Add(time.Duration(minutes)*time.Minute))
	if err != nil {
		panic(fmt.Sprintf("invalid test order %s: %v", id, err))
	}
	return o
}

// Notifier records notifications.
type Notifier struct {
	mu   sync.Mutex
	sent []contracts.Notification
	err  error
}

var _ contracts.Notifier = (*Notifier)(nil)

// FailWith makes Notify return err after recording.
func (n *Notifier) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

// Notify records msg.
func (n *Notifier) Notify(_ context.Context, msg contracts.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

// Sent returns the recorded notifications.
func (n *Notifier) Sent() []contracts.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]contracts.Notification{}, n.sent...)
}

// Session is a fixed SessionProvider.
type Session struct {
	UserID string
}

// CurrentUserID returns the fixed user, or an error when none is set.
func (s Session) CurrentUserID(context.Context) (string, error) {
	if s.UserID == "" {
		return "", session.ErrUnauthenticated
	}
	return s.UserID, nil
}
