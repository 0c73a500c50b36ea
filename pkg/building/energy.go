package building

import (
	"encoding/json"
	"fmt"
	"os"
)

// EnergyPotentials maps building id to its annual energy potential in
// kWh/year. Values are supplied pre-reconciled to each building's
// location by the energy-estimation collaborator.
type EnergyPotentials map[string]float64

// LoadEnergy reads a JSON object of building id -> kWh/year.
func LoadEnergy(path string) (EnergyPotentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading energy potentials: %w", err)
	}

	var potentials EnergyPotentials
	if err := json.Unmarshal(data, &potentials); err != nil {
		return nil, fmt.Errorf("parsing energy potentials: %w", err)
	}
	return potentials, nil
}
