package runware

import "github.com/petal-labs/runware/core"

// Task type identifiers understood by the API.
const (
	TaskTypeImageInference = "imageInference"
	TaskTypeImageUpload    = "imageUpload"
	TaskTypePhotoMaker     = "photoMaker"
)

// taskMeta identifies a task for routing results and telemetry.
type taskMeta struct {
	TaskType string
	TaskUUID string
	Model    string
}

// apiResponse is the envelope returned for every batch of tasks.
type apiResponse struct {
	Data   []core.Record `json:"data"`
	Errors []apiError    `json:"errors"`
}

// apiError is one entry of the "errors" array.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Parameter string `json:"parameter"`
	TaskType  string `json:"taskType"`
	TaskUUID  string `json:"taskUUID"`
}

// recordsFor returns the data entries that belong to taskUUID. Entries without
// a taskUUID are kept since the request only ever carries a single task.
func (r *apiResponse) recordsFor(taskUUID string) core.Records {
	out := make(core.Records, 0, len(r.Data))
	for _, rec := range r.Data {
		id, _ := rec["taskUUID"].(string)
		if id == "" || id == taskUUID {
			out = append(out, rec)
		}
	}
	return out
}

// imageTask is the wire format shared by text-to-image and inpainting.
type imageTask struct {
	TaskType       string            `json:"taskType"`
	TaskUUID       string            `json:"taskUUID"`
	PositivePrompt string            `json:"positivePrompt"`
	NegativePrompt string            `json:"negativePrompt,omitempty"`
	Model          string            `json:"model"`
	Height         int               `json:"height"`
	Width          int               `json:"width"`
	Steps          *int              `json:"steps,omitempty"`
	CFGScale       *float64          `json:"CFGScale,omitempty"`
	NumberResults  int               `json:"numberResults"`
	OutputType     core.OutputType   `json:"outputType"`
	OutputFormat   core.OutputFormat `json:"outputFormat"`
	Seed           *int64            `json:"seed,omitempty"`
	SeedImage      string            `json:"seedImage,omitempty"`
	MaskImage      string            `json:"maskImage,omitempty"`
	Strength       *float64          `json:"strength,omitempty"`
}

// photoMakerTask is the wire format of the photoMaker task.
type photoMakerTask struct {
	TaskType       string            `json:"taskType"`
	TaskUUID       string            `json:"taskUUID"`
	InputImages    []string          `json:"inputImages"`
	Style          PhotoMakerStyle   `json:"style,omitempty"`
	Strength       *int              `json:"strength,omitempty"`
	PositivePrompt string            `json:"positivePrompt"`
	NegativePrompt string            `json:"negativePrompt,omitempty"`
	Model          string            `json:"model"`
	Height         int               `json:"height"`
	Width          int               `json:"width"`
	Steps          *int              `json:"steps,omitempty"`
	CFGScale       *float64          `json:"CFGScale,omitempty"`
	NumberResults  int               `json:"numberResults"`
	OutputType     core.OutputType   `json:"outputType"`
	OutputFormat   core.OutputFormat `json:"outputFormat"`
}

// uploadTask is the wire format of the imageUpload task.
type uploadTask struct {
	TaskType string `json:"taskType"`
	TaskUUID string `json:"taskUUID"`
	Image    string `json:"image"`
}
