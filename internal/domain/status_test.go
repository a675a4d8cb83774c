package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

func TestCanTransition_FullMatrix(t *testing.T) {
	statuses := []domain.OrderStatus{
		domain.OrderStatusCreated,
		domain.OrderStatusPaid,
		domain.OrderStatusFinished,
		domain.OrderStatusCanceled,
	}

	// Четыре разрешённых ребра; остальные 12 пар, включая self-переходы
	// и любые выходы из терминальных статусов, запрещены.
	allowed := map[[2]domain.OrderStatus]bool{
		{domain.OrderStatusCreated, domain.OrderStatusPaid}:     true,
		{domain.OrderStatusCreated, domain.OrderStatusCanceled}: true,
		{domain.OrderStatusPaid, domain.OrderStatusFinished}:    true,
		{domain.OrderStatusPaid, domain.OrderStatusCanceled}:    true,
	}

	legalCount := 0
	for _, from := range statuses {
		for _, to := range statuses {
			got := domain.CanTransition(from, to)
			want := allowed[[2]domain.OrderStatus{from, to}]
			if got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
			if got {
				legalCount++
			}
		}
	}
	if legalCount != 4 {
		t.Fatalf("expected 4 legal edges, got %d", legalCount)
	}
}

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		raw     string
		want    domain.OrderStatus
		wantErr bool
	}{
		{raw: "created", want: domain.OrderStatusCreated},
		{raw: "PAID", want: domain.OrderStatusPaid},
		{raw: "  Finished ", want: domain.OrderStatusFinished},
		{raw: "canceled", want: domain.OrderStatusCanceled},
		{raw: "refunded", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := domain.ParseOrderStatus(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOrderStatus(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOrderStatus(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOrderStatus(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
