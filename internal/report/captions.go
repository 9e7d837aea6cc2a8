package report

// Captions is the fixed prose paired with each chart, keyed by chart id.
// The text is authored, not computed; it refers to specific aggregates of
// the 2020 candidate summary file and must not be regenerated from data.
var Captions = map[string]string{
	"top-parties": "Counting each candidate once, the two major parties dominate the filing " +
		"population, with Democratic and Republican candidates together accounting for the " +
		"large majority of distinct filers. The remaining top-five affiliations are an order " +
		"of magnitude smaller, a reminder that most minor-party labels appear on only a " +
		"handful of filings.",

	"contribution-density": "Itemized individual contributions span eight orders of magnitude, so the " +
		"curve is drawn on an inverse-hyperbolic-sine axis, which behaves like a log axis " +
		"for large values but remains defined at zero. The tall spike at zero is real: a " +
		"large share of filings report no individual contributions at all, while the right " +
		"tail stretches past asinh values of 16, roughly ten million dollars.",

	"loan-by-state": "Restricting to the five largest states and to filings whose coverage period " +
		"closed in 2020, candidate loans show broadly similar spreads on the log scale. " +
		"Texas and Florida contribute the densest columns; most loans cluster between " +
		"ln(loan) of 7 and 12, roughly one thousand to a few hundred thousand dollars.",

	"end-year-counts": "Filing activity concentrates overwhelmingly in the election cycle itself: " +
		"coverage periods ending in 2020 dwarf every other year. Years represented by a " +
		"single stray filing are dropped, leaving a sharply peaked distribution centered " +
		"on the cycle.",

	"office-state-counts": "Mapping filing counts by office state with a six-step sequential scale " +
		"makes the concentration obvious: California and Texas sit alone in the darkest " +
		"buckets above two thousand filings, a second tier of large states occupies the " +
		"middle ranges, and most states fall below four hundred.",

	"log-end-year-counts": "The same year counts as the previous chart, replotted after taking the " +
		"natural log of each count. The transformation compresses the 2020 peak until the " +
		"off-cycle years look comparable, a deliberately misleading encoding: nothing about " +
		"the underlying data changed, only the scale.",

	"dark-office-state-counts": "The same state buckets as the faithful choropleth, recolored with a " +
		"narrow, low-contrast dark ramp. The extremes become nearly indistinguishable from " +
		"the middle of the scale, a second demonstration that an encoding choice alone can " +
		"bury a pattern the data plainly contains.",
}
