package catalog

import "strings"

// TechnologyKeywords is the maintained taxonomy of technology and process
// terms recognized by the matching engine. Skill scoring and keyword intent
// detection both check catalog text against this dictionary.
var TechnologyKeywords = []string{
	"react", "angular", "vue", "node", "nodejs", "javascript", "typescript",
	"python", "java", "golang", "kotlin", "swift", "ruby", "rails", "php",
	"c#", "c++", ".net", "django", "flask", "spring",
	"html", "css", "sass", "graphql", "rest api",
	"sql", "postgresql", "mysql", "mongodb", "redis", "kafka", "elasticsearch",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"ci/cd", "devops", "linux",
	"android", "ios", "flutter", "react native",
	"selenium", "cypress", "jest", "junit", "automation",
	"machine learning", "data science", "tensorflow", "pandas",
	"figma", "photoshop", "ux design",
	"agile", "scrum", "jira", "salesforce", "tableau", "excel",
}

// RoleWords is the closed set of role nouns the intent rules recognize inside
// a transcript.
var RoleWords = []string{
	"engineer", "developer", "designer", "architect", "analyst",
	"manager", "consultant", "qa", "tester", "devops", "recruiter",
	"scientist", "lead",
}

// relatedRoles maps a role to roles considered interchangeable enough to earn
// partial credit during scoring. Lookups go both directions.
var relatedRoles = map[string][]string{
	"engineer":        {"developer", "programmer", "swe"},
	"developer":       {"engineer", "programmer", "swe"},
	"qa":              {"tester", "quality assurance", "sdet"},
	"tester":          {"qa", "quality assurance", "sdet"},
	"pm":              {"product manager", "project manager"},
	"product manager": {"pm", "project manager"},
	"designer":        {"ux designer", "ui designer"},
	"data scientist":  {"data analyst", "ml engineer"},
}

// commonRoleSynonyms are generic role terms that earn a smaller bonus when
// spotted in opportunity text, since they match too broadly to mean much.
var commonRoleSynonyms = map[string]bool{
	"engineer":  true,
	"developer": true,
	"backend":   true,
	"frontend":  true,
}

// RolesRelated reports whether two role strings appear in each other's
// related-role lists.
func RolesRelated(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	for _, rel := range relatedRoles[a] {
		if rel == b {
			return true
		}
	}
	for _, rel := range relatedRoles[b] {
		if rel == a {
			return true
		}
	}
	return false
}

// IsCommonRoleSynonym reports whether the role term is too generic to be a
// strong signal on its own.
func IsCommonRoleSynonym(role string) bool {
	return commonRoleSynonyms[strings.ToLower(strings.TrimSpace(role))]
}

// KeywordsIn returns the technology keywords present in the given text as
// case-insensitive substrings, in taxonomy order.
func KeywordsIn(text string) []string {
	text = strings.ToLower(text)
	var found []string
	for _, kw := range TechnologyKeywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}
