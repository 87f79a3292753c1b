package usecases

const (
	// learningThreshold is the approved-note count at which the one-shot
	// deep style analysis fires.
	learningThreshold = 25

	// deepAnalysisSampleSize caps how many notes are quoted in the deep
	// analysis prompt. The qualifying window is still learningThreshold
	// notes; only the first sampleSize are sent verbatim.
	deepAnalysisSampleSize = 10

	// Incremental profile caps. Oldest entries are evicted first.
	maxReinforcedPhrases  = 20
	maxDiscouragedPhrases = 10
	maxExemplars          = 3

	// Per-approval caps on how many phrases a single edit can add.
	maxPhrasesPerEvent = 5
	minPhraseLength    = 6

	// Target length moves as an exponential moving average of approved
	// final lengths, seeded at the product's default note length.
	targetLengthSeed      = 290
	targetLengthOldWeight = 0.8
	targetLengthNewWeight = 0.2
)
