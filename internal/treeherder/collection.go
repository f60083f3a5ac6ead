package treeherder

// ResultSetCollection is posted to the resultset endpoint.
type ResultSetCollection []ResultSet

func (ResultSetCollection) Endpoint() string { return "resultset" }

// ResultSet groups the revisions of a push.
type ResultSet struct {
	RevisionHash  string     `json:"revision_hash"`
	Author        string     `json:"author"`
	PushTimestamp int64      `json:"push_timestamp"`
	Type          string     `json:"type"`
	Revisions     []Revision `json:"revisions"`
}

// Revision describes one source revision of a push.
type Revision struct {
	Revision   string   `json:"revision"`
	Author     string   `json:"author"`
	Comment    string   `json:"comment"`
	Files      []string `json:"files"`
	Repository string   `json:"repository"`
}

// JobCollection is posted to the objectstore endpoint.
type JobCollection []JobEntry

func (JobCollection) Endpoint() string { return "objectstore" }

// JobEntry ties a job to its project and result set.
type JobEntry struct {
	Project      string `json:"project"`
	RevisionHash string `json:"revision_hash"`
	Job          Job    `json:"job"`
}

// Job is a single completed test job.
type Job struct {
	JobGUID          string          `json:"job_guid"`
	Name             string          `json:"name"`
	JobSymbol        string          `json:"job_symbol"`
	GroupName        string          `json:"group_name"`
	GroupSymbol      string          `json:"group_symbol"`
	Description      string          `json:"desc"`
	ProductName      string          `json:"product_name,omitempty"`
	State            string          `json:"state"`
	Result           string          `json:"result"`
	Reason           string          `json:"reason"`
	Who              string          `json:"who"`
	SubmitTimestamp  string          `json:"submit_timestamp"`
	StartTimestamp   string          `json:"start_timestamp"`
	EndTimestamp     string          `json:"end_timestamp"`
	Machine          string          `json:"machine"`
	BuildPlatform    Platform        `json:"build_platform"`
	MachinePlatform  Platform        `json:"machine_platform"`
	OptionCollection map[string]bool `json:"option_collection"`
	LogReferences    []LogReference  `json:"log_references"`
	Artifacts        []Artifact      `json:"artifacts"`
}

// Platform identifies an operating system and architecture.
type Platform struct {
	OSName       string `json:"os_name"`
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
}

// LogReference points at a log produced by the job.
type LogReference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Artifact is a named blob attached to a job.
type Artifact struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Blob    any    `json:"blob"`
	JobGUID string `json:"job_guid"`
}

// AddArtifact attaches a blob to the job, tagged with the job's GUID.
func (j *Job) AddArtifact(name, typ string, blob any) {
	j.Artifacts = append(j.Artifacts, Artifact{
		Type:    typ,
		Name:    name,
		Blob:    blob,
		JobGUID: j.JobGUID,
	})
}
