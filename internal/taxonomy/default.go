package taxonomy

// Default returns the built-in taxonomy.
//
// Short terms such as "r" or "go" are matched as substrings by the extractor and will
// hit inside longer words.
func Default() Taxonomy {
	return New(
		Category{Name: "programming_languages", Terms: []string{
			"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php",
			"swift", "kotlin", "go", "rust", "scala", "perl", "r", "matlab",
		}},
		Category{Name: "web_technologies", Terms: []string{
			"html", "css", "react", "angular", "vue", "node.js", "django", "flask",
			"spring", "asp.net", "express", "jquery", "bootstrap", "tailwind",
			"graphql", "rest", "api", "apis", "rest api", "restful", "websocket",
		}},
		Category{Name: "databases", Terms: []string{
			"sql", "mysql", "postgresql", "mongodb", "oracle", "sqlite", "redis",
			"elasticsearch", "cassandra", "dynamodb", "firebase",
		}},
		Category{Name: "cloud_platforms", Terms: []string{
			"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
			"kubernetes", "docker", "terraform", "jenkins",
		}},
		Category{Name: "soft_skills", Terms: []string{
			"liderança", "comunicação", "trabalho em equipe", "proativo",
			"resolução de problemas", "organização", "gestão de tempo",
			"adaptabilidade", "criatividade", "inovação", "autonomia",
			"proatividade", "colaboração", "aprendizado contínuo",
		}},
		Category{Name: "methodologies", Terms: []string{
			"agile", "scrum", "kanban", "lean", "waterfall", "tdd", "bdd",
			"devops", "ci/cd", "xp", "ágil",
		}},
		Category{Name: "security", Terms: []string{
			"autenticação", "autorização", "oauth", "jwt", "segurança",
			"criptografia", "ssl", "https", "firewall", "pentest",
		}},
		Category{Name: "quality", Terms: []string{
			"qualidade de código", "code review", "testes unitários",
			"testes de integração", "testes automatizados", "qa",
			"garantia de qualidade", "debugging", "performance",
		}},
	)
}
