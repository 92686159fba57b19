package queue

import (
	"encoding/json"
	"fmt"

	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"github.com/mitchellh/mapstructure"
	"github.com/streadway/amqp"
)

// Job is one analysis request read from the queue.
type Job struct {
	DocumentURI    string `json:"document_uri" validate:"required"`
	Filename       string `json:"filename,omitempty" validate:"max=255"`
	TargetRole     string `json:"target_role,omitempty" validate:"max=200"`
	JobDescription string `json:"job_description,omitempty" validate:"max=50000"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// Request converts the job to a transport-independent analysis request.
func (j *Job) Request() types.AnalyzeRequest {
	return types.AnalyzeRequest{
		Filename:       j.Filename,
		TargetRole:     j.TargetRole,
		JobDescription: j.JobDescription,
		JobURL:         j.JobURL,
	}
}

// Reply statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Reply is published to the job's ReplyTo queue.
type Reply struct {
	Status string                `json:"status"`
	Result *types.AnalysisResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// MalformedJobError reports a delivery that can never be processed.
type MalformedJobError struct {
	Cause error
}

func (e *MalformedJobError) Error() string {
	return fmt.Sprintf("malformed job: %v", e.Cause)
}

func (e *MalformedJobError) Unwrap() error {
	return e.Cause
}

// headerOptions are the job fields a producer may send as AMQP headers.
type headerOptions struct {
	TargetRole string `mapstructure:"target_role"`
	JobURL     string `mapstructure:"job_url"`
}

// DecodeJob parses and validates a delivery. Header values fill fields the
// body leaves empty, and the filename defaults to the base name of the URI.
func DecodeJob(d amqp.Delivery) (*Job, error) {
	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil {
		return nil, &MalformedJobError{Cause: err}
	}

	if len(d.Headers) > 0 {
		var opts headerOptions
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &opts,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(map[string]interface{}(d.Headers)); err != nil {
			return nil, &MalformedJobError{Cause: fmt.Errorf("invalid headers: %w", err)}
		}
		if job.TargetRole == "" {
			job.TargetRole = opts.TargetRole
		}
		if job.JobURL == "" {
			job.JobURL = opts.JobURL
		}
	}

	if job.DocumentURI != "" {
		loc, err := storage.ParseURI(job.DocumentURI)
		if err != nil {
			return nil, &MalformedJobError{Cause: err}
		}
		if job.Filename == "" {
			job.Filename = loc.Filename()
		}
	}

	if err := types.Validate(&job); err != nil {
		return nil, &MalformedJobError{Cause: err}
	}
	return &job, nil
}
