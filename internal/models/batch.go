// internal/models/batch.go
package models

// BatchResult is the outcome of one member request in a batch run. A failed
// member carries an error message instead of a result; it never aborts the
// batch.
type BatchResult struct {
	RequestID string              `json:"requestId"`
	Success   bool                `json:"success"`
	Result    *OptimizationResult `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// BatchStatistics aggregates a batch run over its successful members only.
type BatchStatistics struct {
	Total                    int            `json:"total"`
	Successful               int            `json:"successful"`
	Failed                   int            `json:"failed"`
	TotalCarbonSavingsKg     float64        `json:"totalCarbonSavingsKg"`
	AverageCarbonSavingsKg   float64        `json:"averageCarbonSavingsKg"`
	TotalTimeImpactMinutes   float64        `json:"totalTimeImpactMinutes"`
	AverageTimeImpactMinutes float64        `json:"averageTimeImpactMinutes"`
	Recommendations          map[string]int `json:"recommendations"`
}
