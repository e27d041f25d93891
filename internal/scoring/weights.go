package scoring

// Composite score weights. They must sum to 1.0 so the composite stays in
// [0, 1].
const (
	SkillWeight    = 0.40
	TitleWeight    = 0.30
	LevelWeight    = 0.20
	LocationWeight = 0.10
)

// Sub-score constants.
const (
	neutralScore      = 0.5 // caller gave no preference
	titleNeutralScore = 0.3 // no title or no skills to compare
	titleMissScore    = 0.2
	locationMissScore = 0.3
)

type bucket int

const (
	bucketMid bucket = iota
	bucketEntry
	bucketSenior
)

// affinity[desired][job] is the level sub-score.
var affinity = map[bucket]map[bucket]float64{
	bucketSenior: {bucketSenior: 1.0, bucketMid: 0.5, bucketEntry: 0.1},
	bucketEntry:  {bucketEntry: 1.0, bucketMid: 0.5, bucketSenior: 0.2},
	bucketMid:    {bucketMid: 1.0, bucketEntry: 0.5, bucketSenior: 0.5},
}
