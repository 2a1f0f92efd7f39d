package relay

import "fmt"

type Stage string

const (
	StageDownload Stage = "download"
	StageUpload   Stage = "upload"
	StagePublish  Stage = "publish"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// StageError tells which step of the relay failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
