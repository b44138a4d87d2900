package constants

// Outcome is the terminal state of one generate request; used as a metric label.
type Outcome string

// Stable values (exported as label values).
const (
	OutcomeOK         Outcome = "ok"
	OutcomeBadRequest Outcome = "bad_request"      // request body rejected before the pipeline ran
	OutcomeGeneration Outcome = "generation_error" // model call failed
	OutcomeMalformed  Outcome = "malformed_output" // model answered with unusable JSON
	OutcomeRender     Outcome = "render_error"     // document could not be written
	OutcomeInternal   Outcome = "internal_error"
)
