package domain

// Reason identifies which content-policy detector fired
type Reason string

const (
	ReasonExternalLink Reason = "external_link"
	ReasonInviteLink   Reason = "invite_link"
	ReasonPhoneNumber  Reason = "phone_number"
	ReasonScamKeyword  Reason = "scam_keyword"
)

// Verdict is the classifier's determination for one text. Reasons is a set:
// multiple detectors may fire on the same message.
type Verdict struct {
	Reasons []Reason
}

// Violating reports whether any detector fired
func (v Verdict) Violating() bool {
	return len(v.Reasons) > 0
}

// Has reports whether a specific reason is present
func (v Verdict) Has(r Reason) bool {
	for _, have := range v.Reasons {
		if have == r {
			return true
		}
	}
	return false
}

// Clean is the verdict for non-violating text
var Clean = Verdict{}
