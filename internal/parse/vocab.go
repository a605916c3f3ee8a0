package parse

// commonSkills is the fallback vocabulary scanned against the full text when
// the skills section yields fewer than three entries. Word-boundary matched,
// case-insensitive.
var commonSkills = []string{
	"javascript", "typescript", "python", "java", "c++", "c#", "ruby", "php", "swift", "kotlin",
	"react", "angular", "vue", "next.js", "node.js", "express", "django", "flask", "spring", "fastapi",
	"html", "css", "sass", "tailwind", "bootstrap",
	"sql", "mongodb", "postgresql", "mysql", "redis", "firebase", "supabase",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"git", "ci/cd", "jenkins", "github actions", "linux",
	"machine learning", "deep learning", "nlp", "computer vision", "data science",
	"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "matplotlib", "seaborn",
	"power bi", "tableau", "jupyter",
	"figma", "sketch", "photoshop",
	"agile", "scrum", "jira",
	"rest api", "graphql", "microservices",
}
