package response

import (
	"gin-jobqueue/internal/usecase/queries"
	"gin-jobqueue/internal/worker"
)

type CleanupResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type WorkerStatsResponse struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Processed   int64   `json:"processed"`
	Errors      int64   `json:"errors"`
	SuccessRate float64 `json:"successRate"`
}

func FromWorkerStats(stats []worker.Stats) []WorkerStatsResponse {
	out := make([]WorkerStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, WorkerStatsResponse{
			Name:        s.Name,
			State:       string(s.State),
			Processed:   s.Processed,
			Errors:      s.Errors,
			SuccessRate: s.SuccessRate,
		})
	}
	return out
}

type AdminStatsResponse struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalMovies int64 `json:"totalMovies"`
}

func FromAdminStats(s *queries.AdminStats) AdminStatsResponse {
	return AdminStatsResponse{TotalUsers: s.TotalUsers, TotalMovies: s.TotalMovies}
}
