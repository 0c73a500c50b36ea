package solar

// Baseline economic and panel assumptions for potential and payback
// estimation.
const (
	DefaultEfficiency       = 0.18  // panel efficiency
	DefaultEnergyPriceEUR   = 0.25  // €/kWh
	DefaultInstallCostPerM2 = 200.0 // €/m² panel area
)
