package domain

import "math"

// VarianceTolerancePct is the fixed ±% band inside which a non-zero variance
// is informational rather than flagged.
const VarianceTolerancePct = 5.0

// Status labels assigned by Reconcile, in classification precedence order.
const (
	StatusNA         = "N/A"
	StatusNoRateData = "No Rate Data"
	StatusHigh       = "HIGH (+)"
	StatusLow        = "LOW (-)"
	StatusVariance   = "Variance"
	StatusOkay       = "Okay"
)

// Reconcile computes the full derived set for one bill row. It is pure and
// must be re-run whenever any of the four inputs changes; the derived fields
// are all functions of the same inputs and stay mutually consistent only
// when recomputed together.
//
// Net quantity is floored at zero. Negative received/damaged/rate inputs are
// rejected upstream at the entry boundary, not clamped here.
func Reconcile(qtyReceived, qtyDamaged, vendorRate, expectedRate float64) Line {
	netQty := math.Max(0.0, qtyReceived-qtyDamaged)
	expAmount := round2(netQty * expectedRate)
	vendorAmount := round2(netQty * vendorRate)
	variance := round2(vendorAmount - expAmount)

	return Line{
		QtyReceived:    qtyReceived,
		QtyDamaged:     qtyDamaged,
		NetQty:         netQty,
		ExpectedRate:   expectedRate,
		VendorRate:     vendorRate,
		ExpectedAmount: expAmount,
		VendorAmount:   vendorAmount,
		Variance:       variance,
		Status:         classify(netQty, expectedRate, expAmount, variance),
	}
}

func classify(netQty, expectedRate, expAmount, variance float64) string {
	if netQty <= 0 {
		return StatusNA
	}
	if expectedRate == 0 {
		return StatusNoRateData
	}

	var variancePct float64
	if expAmount != 0 {
		variancePct = (variance / expAmount) * 100
	}

	switch {
	case variancePct > VarianceTolerancePct:
		return StatusHigh
	case variancePct < -VarianceTolerancePct:
		return StatusLow
	case variance != 0:
		return StatusVariance
	default:
		return StatusOkay
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
