// Package pricing reconciles a facility's base price with the payment
// gateway's fee schedule. The charge presented to the payer is grossed
// up so that, after the gateway takes its cut, the credited amount still
// covers the owner's share and the platform margin. All arithmetic is
// integer, in minor currency units.
package pricing

import "github.com/sporthub/server/internal/model"

const (
	// flatFee is the gateway's fixed per-transaction fee.
	flatFee = 50

	// feeCap is the ceiling on the gateway's percentage fee.
	feeCap = 300

	// grossUpThreshold is the largest base amount still grossed up by
	// the percentage formula. Above it the percentage fee is already
	// capped, so a flat markup suffices.
	grossUpThreshold = 29950

	// ownerBonus is the fixed amount added to the owner's 90% share.
	ownerBonus = 50
)

// UserPayment returns the gateway-inclusive amount to charge the payer
// for a given base price.
//
// At or below the threshold the charge is grossed up against the 1%
// fee: ceil((base + 50) / 0.99). Above it the fee is capped, so the
// charge is base + 350 (300 capped percentage + 50 flat).
func UserPayment(base int64) (int64, error) {
	if base <= 0 {
		return 0, ErrInvalidAmount
	}
	if base <= grossUpThreshold {
		// ceil((base+50)/0.99) in integer arithmetic
		return ((base+flatFee)*100 + 98) / 99, nil
	}
	return base + feeCap + flatFee, nil
}

// GatewayFee returns the fee the gateway deducts from a charged amount:
// 1% capped at 300, plus the 50 flat fee.
func GatewayFee(charged int64) int64 {
	return percentFee(charged) + flatFee
}

// Split divides a charged amount three ways: the gateway's percentage
// fee, the owner's settlement (90% of base plus the fixed bonus), and
// the platform margin (whatever of the credited amount remains).
//
// The identity owner + platform + fee == userPayment holds exactly
// because platform is computed as the remainder. A negative platform
// share means the rate schedule is inconsistent and is an error, never
// a silent clamp.
func Split(base, userPayment int64) (model.FeeSplit, error) {
	if base <= 0 || userPayment <= 0 {
		return model.FeeSplit{}, ErrInvalidAmount
	}

	fee := percentFee(userPayment)
	credited := userPayment - fee
	owner := roundPercent(base, 90) + ownerBonus
	platform := credited - owner

	if platform < 0 {
		return model.FeeSplit{}, ErrPricingConfiguration
	}

	return model.FeeSplit{
		BaseAmount:     base,
		UserPayment:    userPayment,
		GatewayFee:     fee,
		AmountCredited: credited,
		OwnerAmount:    owner,
		PlatformAmount: platform,
	}, nil
}

// ApplyReferralDiscount deducts a referral discount from the charge if
// the wallet can fund it. Returns the adjusted charge, the remaining
// wallet balance, and whether the discount was applied.
func ApplyReferralDiscount(userPayment, wallet, discount int64) (int64, int64, bool) {
	if discount <= 0 || wallet < discount || userPayment <= discount {
		return userPayment, wallet, false
	}
	return userPayment - discount, wallet - discount, true
}

// DurationDiscount applies the long-session rebate to a base total:
// 10% off at six hours or more, a further 15% off at eight or more.
// Quotes and booking creation both apply it, so a quoted price is the
// charged price.
func DurationDiscount(baseTotal int64, hours int) int64 {
	if baseTotal <= 0 {
		return baseTotal
	}
	if hours >= 6 {
		baseTotal = roundPercent(baseTotal, 90)
	}
	if hours >= 8 {
		baseTotal = roundPercent(baseTotal, 85)
	}
	return baseTotal
}

// percentFee is the gateway's 1% fee, rounded half up and capped.
func percentFee(amount int64) int64 {
	fee := (amount + 50) / 100
	if fee > feeCap {
		return feeCap
	}
	return fee
}

// roundPercent returns pct% of amount, rounded half up.
func roundPercent(amount, pct int64) int64 {
	return (amount*pct + 50) / 100
}
