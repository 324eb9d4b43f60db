package requirements

// Role says what a pattern extracts and how its matches are consumed.
type Role int

const (
	// RoleRequiredSection captures the body of an explicit requirements section.
	// Every match of every section pattern is tokenized.
	RoleRequiredSection Role = iota
	// RoleExperienceYears captures a number of years. The first pattern that matches wins.
	RoleExperienceYears
	// RoleEducation captures a raw education phrase. All matches are kept.
	RoleEducation
)

func (r Role) String() string {
	switch r {
	case RoleRequiredSection:
		return "required_section"
	case RoleExperienceYears:
		return "experience_years"
	case RoleEducation:
		return "education"
	default:
		return "unknown"
	}
}

// Pattern is a single extraction rule. Expr uses .NET/Python regular expression syntax
// (lookahead and Unicode \w are available). When Expr has a capture group, group 1 is the
// extracted value; otherwise the whole match is.
type Pattern struct {
	Name string
	Expr string
	Role Role
}

// DefaultPatterns returns the built-in rules in evaluation order.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "requisitos", Role: RoleRequiredSection, Expr: `(?is)requisitos:(.*?)(?=\n\n|\z)`},
		{Name: "necessario", Role: RoleRequiredSection, Expr: `(?is)necessário:(.*?)(?=\n\n|\z)`},
		{Name: "obrigatorio", Role: RoleRequiredSection, Expr: `(?is)obrigatório:(.*?)(?=\n\n|\z)`},
		{Name: "required", Role: RoleRequiredSection, Expr: `(?is)required:(.*?)(?=\n\n|\z)`},

		{Name: "anos_de_experiencia", Role: RoleExperienceYears, Expr: `([0-9]+)[\s-]*anos de experiência`},
		{Name: "experiencia_de_anos", Role: RoleExperienceYears, Expr: `experiência de ([0-9]+)[\s-]*anos`},
		{Name: "years_of_experience", Role: RoleExperienceYears, Expr: `([0-9]+)[\s-]*years of experience`},

		{Name: "graduacao", Role: RoleEducation, Expr: `(?i)graduação em .*?(?=\n|\z)`},
		{Name: "formacao", Role: RoleEducation, Expr: `(?i)formação em .*?(?=\n|\z)`},
		{Name: "bacharel", Role: RoleEducation, Expr: `(?i)bacharel em .*?(?=\n|\z)`},
		{Name: "degree", Role: RoleEducation, Expr: `(?i)degree in .*?(?=\n|\z)`},
	}
}
