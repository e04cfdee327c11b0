package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
)

func pendingBooking(reference string) *model.Booking {
	code := "REF123"
	return &model.Booking{
		ID:            uuid.New(),
		FacilityID:    uuid.New(),
		OwnerID:       uuid.New(),
		UserID:        uuid.New(),
		Date:          futureDate(2),
		StartHour:     10,
		DurationHours: 1,
		Amount:        5102,
		Split: model.FeeSplit{
			BaseAmount: 5000, UserPayment: 5102, GatewayFee: 51,
			AmountCredited: 5051, OwnerAmount: 4550, PlatformAmount: 501,
		},
		Status:       model.BookingStatusPending,
		Reference:    reference,
		ReferralCode: &code,
	}
}

func TestProcessWebhookEvent_ChargeSuccess(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-20260901-AAAA1111")
	confirmed := *booking
	confirmed.Status = model.BookingStatusConfirmed
	referrer := &model.User{ID: uuid.New(), ReferralCode: "REF123"}

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", "charge.success:"+booking.Reference).
		Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, nil).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.gateway.On("VerifyTransaction", mock.Anything, booking.Reference).
		Return(&outbound.GatewayTransaction{
			Reference: booking.Reference, Status: "success", Amount: 5102,
		}, nil)
	f.bookingDB.On("ConfirmIfSlotFree", mock.Anything, booking.ID).Return(&confirmed, nil)
	f.ownerDB.On("CreditBalance", mock.Anything, booking.OwnerID, int64(4550)).Return(nil)
	f.userDB.On("FindByReferralCode", mock.Anything, "REF123").Return(referrer, nil)
	f.cashbackDB.On("ExistsForBooking", mock.Anything, booking.ID).Return(false, nil)
	f.userDB.On("CreditWallet", mock.Anything, referrer.ID, int64(100)).Return(nil)
	f.cashbackDB.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	require.NoError(t, err)

	f.ownerDB.AssertCalled(t, "CreditBalance", mock.Anything, booking.OwnerID, int64(4550))
	f.userDB.AssertCalled(t, "CreditWallet", mock.Anything, referrer.ID, int64(100))
	f.webhookDB.AssertCalled(t, "MarkProcessed", mock.Anything, mock.Anything, nil)
}

func TestProcessWebhookEvent_Duplicate(t *testing.T) {
	f := newFixture()
	processedAt := time.Now().Add(-time.Minute)
	seen := &model.WebhookEvent{
		ID:          uuid.New(),
		Provider:    "paystack",
		EventID:     "charge.success:SPH-X",
		Processed:   true,
		ProcessedAt: &processedAt,
	}

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", "charge.success:SPH-X").
		Return(seen, nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, "SPH-X", []byte(`{}`))
	require.NoError(t, err)

	f.bookingDB.AssertNotCalled(t, "FindByReference", mock.Anything, mock.Anything)
	f.gateway.AssertNotCalled(t, "VerifyTransaction", mock.Anything, mock.Anything)
}

func TestProcessWebhookEvent_RetriesAfterFailedAttempt(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-T")
	confirmed := *booking
	confirmed.Status = model.BookingStatusConfirmed
	referrer := &model.User{ID: uuid.New(), ReferralCode: "REF123"}

	// A prior delivery died on a gateway timeout after the event row was
	// stored; the redelivery must reprocess, not short-circuit.
	failure := "verify transaction: context deadline exceeded"
	processedAt := time.Now().Add(-time.Minute)
	seen := &model.WebhookEvent{
		ID:          uuid.New(),
		Provider:    "paystack",
		EventID:     "charge.success:" + booking.Reference,
		EventType:   EventChargeSuccess,
		Reference:   booking.Reference,
		Processed:   true,
		ProcessedAt: &processedAt,
		Error:       &failure,
	}

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", seen.EventID).Return(seen, nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, seen.ID, nil).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.gateway.On("VerifyTransaction", mock.Anything, booking.Reference).
		Return(&outbound.GatewayTransaction{
			Reference: booking.Reference, Status: "success", Amount: 5102,
		}, nil)
	f.bookingDB.On("ConfirmIfSlotFree", mock.Anything, booking.ID).Return(&confirmed, nil)
	f.ownerDB.On("CreditBalance", mock.Anything, booking.OwnerID, int64(4550)).Return(nil)
	f.userDB.On("FindByReferralCode", mock.Anything, "REF123").Return(referrer, nil)
	f.cashbackDB.On("ExistsForBooking", mock.Anything, booking.ID).Return(false, nil)
	f.userDB.On("CreditWallet", mock.Anything, referrer.ID, int64(100)).Return(nil)
	f.cashbackDB.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	require.NoError(t, err)

	f.gateway.AssertNumberOfCalls(t, "VerifyTransaction", 1)
	f.webhookDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.webhookDB.AssertCalled(t, "MarkProcessed", mock.Anything, seen.ID, nil)
}

func TestProcessWebhookEvent_AlreadyConfirmed(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-Y")
	booking.Status = model.BookingStatusConfirmed

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", mock.Anything).Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, nil).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	require.NoError(t, err)

	f.gateway.AssertNotCalled(t, "VerifyTransaction", mock.Anything, mock.Anything)
}

func TestProcessWebhookEvent_VerificationFails(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-Z")

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", mock.Anything).Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.gateway.On("VerifyTransaction", mock.Anything, booking.Reference).
		Return(&outbound.GatewayTransaction{
			Reference: booking.Reference, Status: "abandoned", Amount: 0,
		}, nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	assert.ErrorIs(t, err, ErrVerificationFailed)

	f.bookingDB.AssertNotCalled(t, "ConfirmIfSlotFree", mock.Anything, mock.Anything)
}

func TestProcessWebhookEvent_AmountMismatch(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-M")

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", mock.Anything).Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.gateway.On("VerifyTransaction", mock.Anything, booking.Reference).
		Return(&outbound.GatewayTransaction{
			Reference: booking.Reference, Status: "success", Amount: 2000,
		}, nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestProcessWebhookEvent_SlotLostAfterCharge(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-R")

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", mock.Anything).Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.gateway.On("VerifyTransaction", mock.Anything, booking.Reference).
		Return(&outbound.GatewayTransaction{
			Reference: booking.Reference, Status: "success", Amount: 5102,
		}, nil)
	f.bookingDB.On("ConfirmIfSlotFree", mock.Anything, booking.ID).
		Return(nil, outbound.ErrSlotTaken)
	f.bookingDB.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
		return b.Status == model.BookingStatusFailed
	})).Return(nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	require.NoError(t, err)

	f.bookingDB.AssertExpectations(t)
	f.ownerDB.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessWebhookEvent_ChargeFailed(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-F")

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", "charge.failed:"+booking.Reference).
		Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, nil).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.bookingDB.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
		return b.Status == model.BookingStatusFailed && b.FailedAt != nil
	})).Return(nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeFailed, booking.Reference, []byte(`{}`))
	require.NoError(t, err)
	f.bookingDB.AssertExpectations(t)
}

func TestProcessWebhookEvent_CashbackOnce(t *testing.T) {
	f := newFixture()
	booking := pendingBooking("SPH-C")
	confirmed := *booking
	confirmed.Status = model.BookingStatusConfirmed
	referrer := &model.User{ID: uuid.New(), ReferralCode: "REF123"}

	f.webhookDB.On("FindByEventID", mock.Anything, "paystack", mock.Anything).Return(nil, nil)
	f.webhookDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.webhookDB.On("MarkProcessed", mock.Anything, mock.Anything, nil).Return(nil)
	f.bookingDB.On("FindByReference", mock.Anything, booking.Reference).Return(booking, nil)
	f.gateway.On("VerifyTransaction", mock.Anything, booking.Reference).
		Return(&outbound.GatewayTransaction{
			Reference: booking.Reference, Status: "success", Amount: 5102,
		}, nil)
	f.bookingDB.On("ConfirmIfSlotFree", mock.Anything, booking.ID).Return(&confirmed, nil)
	f.ownerDB.On("CreditBalance", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.userDB.On("FindByReferralCode", mock.Anything, "REF123").Return(referrer, nil)
	f.cashbackDB.On("ExistsForBooking", mock.Anything, booking.ID).Return(true, nil)

	err := f.domain.ProcessWebhookEvent(context.Background(), EventChargeSuccess, booking.Reference, []byte(`{}`))
	require.NoError(t, err)

	f.userDB.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything)
	f.cashbackDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
