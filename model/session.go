package model

import "strings"

// Session carries what a single user action supplies. The credential lives only
// as long as the request that holds it.
type Session struct {
	Credential string
}

func (s Session) Empty() bool {
	return strings.TrimSpace(s.Credential) == ""
}

// Stage is a step of the per request flow:
// idle -> validating -> fetching -> summarizing -> displaying, any of them -> error.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageValidating  Stage = "validating"
	StageFetching    Stage = "fetching"
	StageSummarizing Stage = "summarizing"
	StageDisplaying  Stage = "displaying"
	StageError       Stage = "error"
)

// Outcome ends in either StageDisplaying with a Summary or StageError with Err
// set and FailedAt naming the stage that failed.
type Outcome struct {
	Stage    Stage
	FailedAt Stage
	Summary  *Summary
	Err      *FlowError
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}
