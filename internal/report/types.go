// Package report classifies endurance-run results and builds the dashboard summary.
package report

// Detail is one labeled line of a job summary.
type Detail struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Summary is the ordered list of details built from a run's counters.
type Summary []Detail

// JobDetail is a summary line in the form the dashboard's "Job Info" artifact expects.
type JobDetail struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	ContentType string `json:"content_type"`
}

// JobInfo is the blob of the "Job Info" artifact.
type JobInfo struct {
	JobDetails []JobDetail `json:"job_details"`
}

// JobInfo converts the summary into the dashboard artifact blob.
func (s Summary) JobInfo() JobInfo {
	info := JobInfo{JobDetails: make([]JobDetail, 0, len(s))}
	for _, d := range s {
		info.JobDetails = append(info.JobDetails, JobDetail{
			Title:       d.Title,
			Value:       d.Value,
			ContentType: "text",
		})
	}
	return info
}
