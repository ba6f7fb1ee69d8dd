package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/turfmanager/service-booking/internal/domain/booking"
	"go.uber.org/zap"
)

// Notifier forwards a committed booking to an external bookkeeping system.
// Delivery is advisory: the returned flag reports success but nothing in the
// booking flow depends on it.
type Notifier interface {
	Notify(ctx context.Context, b *booking.Booking, endpoint string) bool
}

// addBookingAction is the action literal the spreadsheet script dispatches on.
const addBookingAction = "addBooking"

// sheetsPayload is the wire shape expected by the spreadsheet webhook:
// an action discriminator and a flat data object appended as one row.
type sheetsPayload struct {
	Action string           `json:"action"`
	Data   sheetsBookingRow `json:"data"`
}

type sheetsBookingRow struct {
	Date         string  `json:"date"`
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	StartTime    int     `json:"startTime"`
	EndTime      int     `json:"endTime"`
	TotalHours   int     `json:"totalHours"`
	Amount       float64 `json:"amount"`
	RateType     string  `json:"rateType"`
	ID           string  `json:"id"`
}

// SheetsNotifier posts bookings to a Google Apps Script webhook that appends
// rows to a spreadsheet. The endpoint never confirms delivery in a usable
// way, so any 2xx-or-sent outcome counts as success.
type SheetsNotifier struct {
	client *http.Client
	logger *zap.Logger
}

// NewSheetsNotifier creates a SheetsNotifier with a bounded request timeout.
func NewSheetsNotifier(logger *zap.Logger) *SheetsNotifier {
	return &SheetsNotifier{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Notify posts the booking to the webhook. An empty endpoint disables
// forwarding without error. Failures are logged and swallowed: they must
// never affect a committed booking.
func (n *SheetsNotifier) Notify(ctx context.Context, b *booking.Booking, endpoint string) bool {
	if endpoint == "" {
		n.logger.Debug("sheets endpoint not configured, skipping forwarding",
			zap.String("booking_id", b.ID().String()),
		)
		return false
	}

	payload := sheetsPayload{
		Action: addBookingAction,
		Data: sheetsBookingRow{
			Date:         b.Date().String(),
			CustomerName: b.CustomerName(),
			Phone:        b.Phone(),
			StartTime:    b.StartTime(),
			EndTime:      b.EndTime(),
			TotalHours:   b.TotalHours(),
			Amount:       b.Amount(),
			RateType:     b.RateType().String(),
			ID:           b.ID().String(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("failed to marshal sheets payload", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("failed to build sheets request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("sheets forwarding failed",
			zap.String("booking_id", b.ID().String()),
			zap.Error(err),
		)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		n.logger.Warn("sheets webhook rejected booking",
			zap.String("booking_id", b.ID().String()),
			zap.Int("status", resp.StatusCode),
		)
		return false
	}

	n.logger.Info("booking forwarded to sheets",
		zap.String("booking_id", b.ID().String()),
	)
	return true
}
