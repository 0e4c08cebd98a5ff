// internal/optimizer/batch.go
package optimizer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"route-optimizer/internal/common/metrics"
	"route-optimizer/internal/models"
)

// OptimizeMultipleRoutes fans independent member requests out to the engine
// with bounded parallelism. One member's failure never cancels the others;
// each result carries its own outcome. Output order matches input order.
func (e *Engine) OptimizeMultipleRoutes(ctx context.Context, reqs []models.OptimizationRequest) []models.BatchResult {
	out := make([]models.BatchResult, len(reqs))
	if len(reqs) == 0 {
		return out
	}

	metrics.BatchSize.Observe(float64(len(reqs)))

	workers := e.batchConcurrency
	if workers > len(reqs) {
		workers = len(reqs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				req := reqs[i]
				if req.ID == "" {
					req.ID = uuid.NewString()
				}

				res, err := e.OptimizeRoute(ctx, req)
				if err != nil {
					out[i] = models.BatchResult{
						RequestID: req.ID,
						Success:   false,
						Error:     err.Error(),
					}
					continue
				}
				out[i] = models.BatchResult{
					RequestID: req.ID,
					Success:   true,
					Result:    res,
				}
			}
		}()
	}

	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

// GetOptimizationStatistics aggregates a batch run. Savings, time impact,
// and the recommendation tally are computed over the successful subset only.
func GetOptimizationStatistics(results []models.BatchResult) models.BatchStatistics {
	stats := models.BatchStatistics{
		Total:           len(results),
		Recommendations: make(map[string]int),
	}

	for _, r := range results {
		if !r.Success || r.Result == nil {
			stats.Failed++
			continue
		}
		stats.Successful++
		stats.TotalCarbonSavingsKg += r.Result.Comparison.CarbonSavings.Kg
		stats.TotalTimeImpactMinutes += r.Result.Comparison.TimeImpact.AdditionalMinutes
		stats.Recommendations[r.Result.Recommendation.Recommended]++
	}

	if stats.Successful > 0 {
		stats.AverageCarbonSavingsKg = Round2(stats.TotalCarbonSavingsKg / float64(stats.Successful))
		stats.AverageTimeImpactMinutes = Round2(stats.TotalTimeImpactMinutes / float64(stats.Successful))
	}
	stats.TotalCarbonSavingsKg = Round2(stats.TotalCarbonSavingsKg)
	stats.TotalTimeImpactMinutes = Round2(stats.TotalTimeImpactMinutes)

	return stats
}
