package score

import "strings"

// skillDomain is one professional skill cluster used to detect wrong-field
// resumes. Order matters: job-domain detection returns the first cluster
// whose keywords hit the title.
type skillDomain struct {
	name     string
	keywords []string
}

var skillDomains = []skillDomain{
	{"ai_ml", []string{"machine learning", "deep learning", "tensorflow", "pytorch", "nlp", "computer vision", "neural network", "ai", "ml", "data science", "pandas", "numpy", "scikit"}},
	{"web_dev", []string{"react", "angular", "vue", "javascript", "typescript", "html", "css", "frontend", "backend", "node.js", "express"}},
	{"mobile", []string{"ios", "android", "swift", "kotlin", "react native", "flutter", "mobile"}},
	{"bpm_workflow", []string{"appian", "bpm", "workflow", "business process", "process modeling", "case management", "low-code", "pega", "bizagi"}},
	{"data_engineering", []string{"spark", "hadoop", "kafka", "airflow", "etl", "data pipeline", "data warehouse", "snowflake", "redshift"}},
	{"devops", []string{"docker", "kubernetes", "terraform", "jenkins", "ci/cd", "aws", "azure", "gcp", "ansible"}},
	{"finance", []string{"accounting", "financial", "audit", "tax", "investment", "banking", "trading", "portfolio"}},
	{"marketing", []string{"seo", "sem", "content", "social media", "campaign", "brand", "marketing", "advertising"}},
	{"sales", []string{"sales", "crm", "salesforce", "pipeline", "prospecting", "closing", "negotiation", "revenue"}},
	{"hr", []string{"recruiting", "hr", "talent", "onboarding", "compensation", "benefits", "employee relations"}},
}

// detectJobDomain maps a lowercased job title to the first skill domain with
// at least one keyword hit, falling back to common title patterns. Returns
// "" when the domain cannot be determined.
func detectJobDomain(jobTitle string) string {
	for _, d := range skillDomains {
		for _, kw := range d.keywords {
			if strings.Contains(jobTitle, kw) {
				return d.name
			}
		}
	}

	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(jobTitle, s) {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(jobTitle, "data") && contains("scientist", "ml", "ai"):
		return "ai_ml"
	case contains("web", "frontend", "backend", "full stack"):
		return "web_dev"
	case contains("mobile", "ios", "android"):
		return "mobile"
	case contains("devops", "sre", "infrastructure"):
		return "devops"
	case contains("finance", "accounting", "audit"):
		return "finance"
	case contains("marketing", "seo", "content"):
		return "marketing"
	case contains("sales", "account executive"):
		return "sales"
	case contains("hr", "recruiter", "talent"):
		return "hr"
	}
	return ""
}

// detectResumeDomains returns every domain with at least three keyword hits
// in the combined lowercased resume text and skill list. A resume can belong
// to zero, one, or several domains.
func detectResumeDomains(lowerText string, lowerSkills []string) []string {
	combined := lowerText + " " + strings.Join(lowerSkills, " ")

	var domains []string
	for _, d := range skillDomains {
		hits := 0
		for _, kw := range d.keywords {
			if strings.Contains(combined, kw) {
				hits++
			}
		}
		if hits >= 3 {
			domains = append(domains, d.name)
		}
	}
	return domains
}
