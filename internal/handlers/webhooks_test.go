package handlers

import (
	"testing"

	"bitzone/internal/models"
	"bitzone/internal/monobank"
)

func TestPaymentStatusMapping(t *testing.T) {
	cases := []struct {
		invoiceStatus string
		want          string
	}{
		{monobank.StatusSuccess, models.OrderStatusPaid},
		{monobank.StatusFailure, models.OrderStatusFailed},
		{monobank.StatusExpired, models.OrderStatusFailed},
		{monobank.StatusProcessing, ""},
		{"created", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := paymentStatusFor(tc.invoiceStatus); got != tc.want {
			t.Errorf("paymentStatusFor(%q) = %q, want %q", tc.invoiceStatus, got, tc.want)
		}
	}
}
