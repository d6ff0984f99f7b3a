package task

// Stats summarises how many tasks are active and completed.
type Stats struct {
	Active           int     `json:"active"`
	Completed        int     `json:"completed"`
	Total            int     `json:"total"`
	ActivePercent    float64 `json:"activePercent"`
	CompletedPercent float64 `json:"completedPercent"`
}

// ComputeStats counts active and completed tasks. An empty list yields zero
// percentages.
func ComputeStats(tasks []Task) Stats {
	var s Stats
	for _, t := range tasks {
		if t.IsCompleted {
			s.Completed++
		} else {
			s.Active++
		}
	}
	s.Total = s.Active + s.Completed
	if s.Total == 0 {
		return s
	}
	s.ActivePercent = 100 * float64(s.Active) / float64(s.Total)
	s.CompletedPercent = 100 * float64(s.Completed) / float64(s.Total)
	return s
}
