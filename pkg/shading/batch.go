package shading

import (
	"runtime"
	"sync"

	"github.com/StefanVerhoef/solarroof/pkg/building"
)

// Result maps building id to its shading factor in [0,1]. It is a
// per-run snapshot; downstream consumers must not mutate it.
type Result map[string]float64

// AnalyzeAll computes the shading factor of every building at the given
// sun elevation. The per-building work (one radius query plus pairwise
// intensity aggregation) is independent, so it is fanned out over
// workers that share the read-only index. workers <= 0 uses GOMAXPROCS.
func (m *Model) AnalyzeAll(buildings []*building.Building, sunElevationDeg float64, workers int) (Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	factors := make([]float64, len(buildings))
	errs := make([]error, len(buildings))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				b := buildings[i]
				candidates, err := m.Nearby(b)
				if err != nil {
					errs[i] = err
					continue
				}
				factors[i] = m.Factor(b, candidates, sunElevationDeg)
			}
		}()
	}
	for i := range buildings {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := make(Result, len(buildings))
	for i, b := range buildings {
		result[b.ID] = factors[i]
	}
	return result, nil
}
