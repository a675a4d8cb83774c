package domain_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		notFound bool
		business bool
		conflict bool
	}{
		{name: "client not found", err: domain.ErrClientNotFound, notFound: true},
		{name: "product not found", err: domain.ErrProductNotFound, notFound: true},
		{name: "order not found", err: domain.ErrOrderNotFound, notFound: true},
		{name: "client not active", err: domain.ErrClientNotActive, business: true},
		{name: "product not active", err: domain.ErrProductNotActive, business: true},
		{name: "insufficient stock", err: domain.NewInsufficientStockError(3), business: true},
		{name: "order not modifiable", err: domain.ErrOrderNotModifiable, business: true},
		{name: "quantity not positive", err: domain.ErrQuantityNotPositive, business: true},
		{name: "item not in order", err: domain.ErrItemNotInOrder, business: true},
		{
			name:     "status transition",
			err:      domain.NewStatusTransitionError(domain.OrderStatusFinished, domain.OrderStatusPaid),
			business: true,
		},
		{name: "cpf conflict", err: domain.ErrCPFAlreadyRegistered, conflict: true},
		{name: "version conflict", err: domain.ErrVersionConflict, conflict: true},
		{name: "wrapped not found", err: fmt.Errorf("load order: %w", domain.ErrOrderNotFound), notFound: true},
		{name: "unrelated", err: fmt.Errorf("boom")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.IsNotFound(tc.err); got != tc.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tc.notFound)
			}
			if got := domain.IsBusinessRule(tc.err); got != tc.business {
				t.Errorf("IsBusinessRule = %v, want %v", got, tc.business)
			}
			if got := domain.IsConflict(tc.err); got != tc.conflict {
				t.Errorf("IsConflict = %v, want %v", got, tc.conflict)
			}
		})
	}
}

func TestStatusTransitionError_NamesBothStatuses(t *testing.T) {
	err := domain.NewStatusTransitionError(domain.OrderStatusCreated, domain.OrderStatusFinished)
	want := "cannot change order status from created to finished"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Fatalf("error %q does not contain %q", got, want)
	}
}
