package gateway

import (
	"math"
	"strings"
)

// Currencies whose minor unit equals the major unit. Razorpay still expects
// the plain amount for these, so the usual x100 conversion must be skipped.
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true,
	"CLP": true,
	"DJF": true,
	"GNF": true,
	"JPY": true,
	"KMF": true,
	"KRW": true,
	"MGA": true,
	"PYG": true,
	"RWF": true,
	"UGX": true,
	"VND": true,
	"VUV": true,
	"XAF": true,
	"XOF": true,
	"XPF": true,
}

// MinorUnits converts a major-unit amount to the gateway's minor units
// (paise for INR, cents for USD), rounding to the nearest unit.
func MinorUnits(amount float64, currency string) int64 {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

// MajorUnits converts a minor-unit amount back to major units for display.
func MajorUnits(amountMinor int64, currency string) float64 {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return float64(amountMinor)
	}
	return float64(amountMinor) / 100
}
