package model

// Verdict represents the classifier's label for a URL.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed. VerdictUnknown is the zero value so a
// report whose classification step never ran or failed reads as unknown
// rather than silently benign.
type Verdict int

const (
	// VerdictUnknown indicates the URL was not classified, either because
	// classification was skipped or because the classifier call failed.
	VerdictUnknown Verdict = iota

	// VerdictBenign indicates the classifier labeled the URL safe.
	VerdictBenign

	// VerdictMalicious indicates the classifier labeled the URL malicious.
	VerdictMalicious
)

// Prediction values on the classifier wire format.
const (
	predictionBenign    = 0
	predictionMalicious = 1
)

// String returns a human-readable representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictBenign:
		return "BENIGN"
	case VerdictMalicious:
		return "MALICIOUS"
	default:
		return "UNKNOWN"
	}
}

// VerdictFromPrediction maps the classifier's numeric prediction to a
// Verdict. Any value outside {0, 1} is VerdictUnknown; the caller decides
// whether that is an error.
func VerdictFromPrediction(prediction int) Verdict {
	switch prediction {
	case predictionBenign:
		return VerdictBenign
	case predictionMalicious:
		return VerdictMalicious
	default:
		return VerdictUnknown
	}
}
