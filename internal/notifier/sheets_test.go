package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turfmanager/service-booking/internal/domain/booking"
	"go.uber.org/zap"
)

func testBooking(t *testing.T) *booking.Booking {
	t.Helper()
	d, err := booking.ParseDate("2024-06-15")
	require.NoError(t, err)

	q, err := booking.NewStandardPricer().Quote(booking.QuoteParams{
		Date:      d,
		StartTime: 18,
		EndTime:   20,
		Rates:     booking.DefaultRatesConfig(),
	})
	require.NoError(t, err)

	b, err := booking.NewBooking(d, "Bhargav", "+91 98765 43210", 18, 20, q, 0)
	require.NoError(t, err)
	return b
}

func TestSheetsNotifier_PostsAddBookingAction(t *testing.T) {
	var received sheetsPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := testBooking(t)
	ok := NewSheetsNotifier(zap.NewNop()).Notify(context.Background(), b, srv.URL)
	require.True(t, ok)

	assert.Equal(t, "addBooking", received.Action)
	assert.Equal(t, "2024-06-15", received.Data.Date)
	assert.Equal(t, "Bhargav", received.Data.CustomerName)
	assert.Equal(t, "+91 98765 43210", received.Data.Phone)
	assert.Equal(t, 18, received.Data.StartTime)
	assert.Equal(t, 20, received.Data.EndTime)
	assert.Equal(t, 2, received.Data.TotalHours)
	assert.Equal(t, float64(1800), received.Data.Amount)
	assert.Equal(t, "Weekend", received.Data.RateType)
	assert.Equal(t, b.ID().String(), received.Data.ID)
}

func TestSheetsNotifier_EmptyEndpointDisablesForwarding(t *testing.T) {
	ok := NewSheetsNotifier(zap.NewNop()).Notify(context.Background(), testBooking(t), "")
	assert.False(t, ok)
}

func TestSheetsNotifier_ServerErrorIsAdvisory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ok := NewSheetsNotifier(zap.NewNop()).Notify(context.Background(), testBooking(t), srv.URL)
	assert.False(t, ok)
}

func TestSheetsNotifier_UnreachableEndpoint(t *testing.T) {
	ok := NewSheetsNotifier(zap.NewNop()).Notify(context.Background(), testBooking(t), "http://127.0.0.1:1")
	assert.False(t, ok)
}
