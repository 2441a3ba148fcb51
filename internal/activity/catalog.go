// Package activity holds the shared-activity catalogue and the texting
// contexts used to frame each simulated day.
package activity

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/nvandessel/auralie/internal/models"
)

// Tier thresholds on the integer mean of both affinity levels.
const (
	Tier3Threshold = 70
	Tier2Threshold = 50
)

// Time-of-day labels for texting sessions.
const (
	Morning = "morning"
	Evening = "evening"
)

var catalog = map[int][]models.Activity{
	1: {
		{Name: "Coffee date", Description: "Meeting for coffee at a cozy local cafe", IntimacyLevel: 2, Days: []int{1, 2}},
		{Name: "Dog walking at the park", Description: "Walking dogs together at Winston Park", IntimacyLevel: 3, Days: []int{1, 2, 3}},
	},
	2: {
		{Name: "Dinner date", Description: "Having dinner at a nice restaurant", IntimacyLevel: 5, Days: []int{3, 4, 5}},
		{Name: "Movie night", Description: "Watching a movie together at the cinema", IntimacyLevel: 4, Days: []int{3, 4, 5}},
		{Name: "Museum visit", Description: "Exploring an art museum together", IntimacyLevel: 4, Days: []int{3, 4, 5}},
		{Name: "Hiking adventure", Description: "Going on a scenic hike together", IntimacyLevel: 5, Days: []int{4, 5, 6}},
	},
	3: {
		{Name: "Cooking together", Description: "Cooking dinner together at someone's place", IntimacyLevel: 7, Days: []int{5, 6, 7}},
		{Name: "Weekend getaway", Description: "Taking a short trip to a nearby town", IntimacyLevel: 8, Days: []int{6, 7}},
		{Name: "Intimate evening", Description: "Spending quality intimate time together", IntimacyLevel: 9, Days: []int{6, 7}},
	},
}

// TierFor maps an average affinity level to an activity tier.
func TierFor(avg int) int {
	switch {
	case avg >= Tier3Threshold:
		return 3
	case avg >= Tier2Threshold:
		return 2
	default:
		return 1
	}
}

// Options returns the catalogue entries of a tier, with Tier set.
func Options(tier int) []models.Activity {
	src := catalog[tier]
	out := make([]models.Activity, len(src))
	for i, a := range src {
		a.Tier = tier
		a.Days = slices.Clone(a.Days)
		out[i] = a
	}
	return out
}

// Select picks an activity for day given the average affinity level.
// Options are filtered by day; when the selected tier has none, lower
// tiers are tried in turn, and finally any tier-1 option is used.
func Select(day, avg int, rng *rand.Rand) models.Activity {
	for tier := TierFor(avg); tier >= 1; tier-- {
		var fits []models.Activity
		for _, a := range Options(tier) {
			if slices.Contains(a.Days, day) {
				fits = append(fits, a)
			}
		}
		if len(fits) > 0 {
			return fits[rng.IntN(len(fits))]
		}
	}
	lowest := Options(1)
	return lowest[rng.IntN(len(lowest))]
}

// Label renders an activity as the context string given to agents.
func Label(a models.Activity) string {
	return fmt.Sprintf("%s - %s", a.Name, a.Description)
}

var textingContexts = []map[string]string{
	{Morning: "Just matched and starting to text for the first time", Evening: "Continuing the conversation after a day of texting"},
	{Morning: "Good morning text after yesterday's conversation", Evening: "Evening chat, getting more comfortable"},
	{Morning: "Morning check-in, building connection", Evening: "Planning or discussing recent activities"},
	{Morning: "Warm morning greeting", Evening: "Deeper conversation in the evening"},
	{Morning: "Familiar morning text", Evening: "Comfortable evening chat"},
	{Morning: "Affectionate morning message", Evening: "Intimate evening conversation"},
	{Morning: "Close morning connection", Evening: "Reflecting on the week together"},
}

// TextingContext returns the framing for a texting session. Days past the
// end of the table reuse the last day; unknown times fall back to morning.
func TextingContext(day int, timeOfDay string) string {
	i := day - 1
	if i < 0 {
		i = 0
	}
	if i >= len(textingContexts) {
		i = len(textingContexts) - 1
	}
	if c, ok := textingContexts[i][timeOfDay]; ok {
		return c
	}
	return textingContexts[i][Morning]
}
