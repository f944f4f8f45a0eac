package request

const DefaultCleanupDays = 30

type CleanupRequest struct {
	DaysOld *int `json:"daysOld,omitempty" binding:"omitempty,min=0"`
}

func (r CleanupRequest) Days() int {
	if r.DaysOld == nil {
		return DefaultCleanupDays
	}
	return *r.DaysOld
}
