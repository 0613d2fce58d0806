package model

import "time"

// Lookup kinds. These are the admin-managed reference tables; all share one
// {kind, value, label} shape with values unique per kind.
const (
	LookupSkill           = "skill"
	LookupJobTitle        = "job_title"
	LookupDegree          = "degree"
	LookupBoard           = "board"
	LookupIndustry        = "industry"
	LookupLanguage        = "language"
	LookupLocation        = "location"
	LookupJobType         = "job_type"
	LookupJobRole         = "job_role"
	LookupPercentageRange = "percentage_range"
	LookupMedium          = "medium"
)

// LookupKinds lists every valid lookup kind.
var LookupKinds = []string{
	LookupSkill, LookupJobTitle, LookupDegree, LookupBoard, LookupIndustry,
	LookupLanguage, LookupLocation, LookupJobType, LookupJobRole,
	LookupPercentageRange, LookupMedium,
}

// ValidLookupKind reports whether kind names a known lookup table.
func ValidLookupKind(kind string) bool {
	for _, k := range LookupKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Lookup is a single reference-data record.
type Lookup struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
