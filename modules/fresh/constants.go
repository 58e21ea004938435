package fresh

const (
	Version = "v0.1.0"

	// Decimals is the number of decimal places of one FRESH token.
	Decimals = 9
)

// Protocol constants. Every validator must use these exact values.
const (
	MiningCooldown   int64  = 1800 // 30 minutes
	EnergyBurstBonus uint64 = 150  // 50% bonus
	LuckyPurrChance  uint64 = 100  // every 100th slot
	LuckyPurrBonus   uint64 = 110  // 10% bonus
	MinDifficulty    uint64 = 100

	HalvingInterval   int64  = 31_536_000             // 365 days in seconds
	MaxSupply         uint64 = 50_000_000_000_000_000 // 50 million tokens with 9 decimals
	InitialBaseReward uint64 = 10_000_000

	// BonusDenominator is the divisor applied after a bonus multiplier.
	BonusDenominator uint64 = 100

	// EnergyBurstModulus gates energy bursts to slots divisible by it.
	EnergyBurstModulus uint64 = 41

	// PoopModulus and PoopSlotLimit bound the early-slot failure window.
	PoopModulus   uint64 = 10
	PoopSlotLimit uint64 = 1000
)
