package domain

// Status is the tri-state verdict of a single verification.
// "valid" means the remote exchanger accepted the recipient, "invalid" means
// some stage produced a definitive rejection, "unknown" means the check was
// inconclusive (deep verification skipped or the mailbox is concealed).
type Status string

const (
	// StatusValid indicates the mailbox was accepted by its mail exchanger.
	StatusValid Status = "valid"
	// StatusInvalid indicates a definitive failure: bad syntax, unresolvable
	// domain, or an explicit rejection during the probe.
	StatusInvalid Status = "invalid"
	// StatusUnknown indicates the verification was inconclusive.
	StatusUnknown Status = "unknown"
)

// Outcome is the result of verifying one address. It is produced exactly once
// per address and never updated afterwards.
type Outcome struct {
	// Status is the tri-state verdict.
	Status Status `json:"status"`
	// Reason is a human-readable explanation sufficient to tell apart the
	// failure categories without a separate code field.
	Reason string `json:"reason"`
}

// Valid builds a valid outcome with the given reason.
func Valid(reason string) Outcome { return Outcome{Status: StatusValid, Reason: reason} }

// Invalid builds an invalid outcome with the given reason.
func Invalid(reason string) Outcome { return Outcome{Status: StatusInvalid, Reason: reason} }

// Unknown builds an unknown outcome with the given reason.
func Unknown(reason string) Outcome { return Outcome{Status: StatusUnknown, Reason: reason} }

// Result pairs an input address with its outcome. Batch responses carry one
// Result per input entry, in input order.
type Result struct {
	// Email is the address exactly as it appeared in the input.
	Email string `json:"email"`
	// Status is the tri-state verdict for this address.
	Status Status `json:"status"`
	// Reason explains the verdict.
	Reason string `json:"reason"`
}

// BatchSummary aggregates per-status counts over a batch.
// Total always equals Valid+Invalid+Unknown and the input list length.
type BatchSummary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Unknown int `json:"unknown"`
}

// BatchReport is the full output of a batch verification: the summary plus
// the ordered per-address results.
type BatchReport struct {
	Summary BatchSummary `json:"summary"`
	Results []Result     `json:"results"`
}

// Tally derives a BatchSummary from a result list. Statuses outside the
// tri-state vocabulary count as unknown; Total always equals len(results).
func Tally(results []Result) BatchSummary {
	summary := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusValid:
			summary.Valid++
		case StatusInvalid:
			summary.Invalid++
		default:
			summary.Unknown++
		}
	}

	return summary
}
