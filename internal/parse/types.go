package parse

// Resume is the structured output of field extraction. Fields that could not
// be detected are left zero-valued and flagged in Warnings; extraction never
// fails outright.
type Resume struct {
	Name           string            `json:"name,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	LinkedInURL    string            `json:"linkedinUrl,omitempty"`
	WebsiteURL     string            `json:"websiteUrl,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`
	Achievements   []string          `json:"achievements"`
	RawText        string            `json:"rawText"`
	Warnings       []string          `json:"parseWarnings"`
}

// ExperienceEntry is one detected position. Bullets keep document order.
type ExperienceEntry struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Location  string   `json:"location"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry is one detected degree line. Institution and Degree carry the
// same stripped line text; the source line rarely separates the two cleanly,
// so the split is left to downstream consumers.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ProjectEntry is one detected project. Stack is reserved; the line heuristics
// cannot attribute technologies to a specific project reliably.
type ProjectEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stack       []string `json:"stack"`
}
