package shipping

import (
	"fmt"
	"time"
)

// packagingPaddingGrams is added to every shipment for wrapping material.
const packagingPaddingGrams = 100

// Norwegian short month names, indexed by time.Month-1.
var norwegianMonths = [12]string{
	"jan.", "feb.", "mars", "apr.", "mai", "juni",
	"juli", "aug.", "sep.", "okt.", "nov.", "des.",
}

// EstimateDeliveryDateFrom returns the date businessDays working days after
// start, skipping Saturdays and Sundays.
func EstimateDeliveryDateFrom(start time.Time, businessDays int) time.Time {
	date := start
	added := 0
	for added < businessDays {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return date
}

// EstimateDeliveryDate returns the date the given number of working days
// from now.
func EstimateDeliveryDate(businessDays int) time.Time {
	return EstimateDeliveryDateFrom(time.Now(), businessDays)
}

// FormatDeliveryRangeFrom renders a human-readable delivery window in
// Norwegian, e.g. "2. jan. - 6. jan.". Zero days means store pickup.
func FormatDeliveryRangeFrom(start time.Time, estimatedDays int) string {
	if estimatedDays == 0 {
		return "Klar for henting i dag"
	}

	lower := estimatedDays - 1
	if lower < 1 {
		lower = 1
	}
	from := EstimateDeliveryDateFrom(start, lower)
	to := EstimateDeliveryDateFrom(start, estimatedDays+1)

	return fmt.Sprintf("%s - %s", formatNorwegianDate(from), formatNorwegianDate(to))
}

// FormatDeliveryRange renders the delivery window counted from now.
func FormatDeliveryRange(estimatedDays int) string {
	return FormatDeliveryRangeFrom(time.Now(), estimatedDays)
}

func formatNorwegianDate(t time.Time) string {
	return fmt.Sprintf("%d. %s", t.Day(), norwegianMonths[t.Month()-1])
}

// PackageWeight sums item weights and adds padding for packaging material.
func PackageWeight(itemWeightsGrams []int) int {
	total := 0
	for _, w := range itemWeightsGrams {
		total += w
	}
	return total + packagingPaddingGrams
}
