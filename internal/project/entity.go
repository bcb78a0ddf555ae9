package project

// Project is a portfolio entry. TeamMembers holds team member slugs; they are
// not checked against the team collection and can dangle after a rename.
type Project struct {
	Title        string   `bson:"title" yaml:"title" json:"title"`
	Slug         string   `bson:"slug" yaml:"slug" json:"slug"`
	Description  string   `bson:"description" yaml:"description" json:"description"`
	Technologies []string `bson:"technologies" yaml:"technologies" json:"technologies"`
	Images       []string `bson:"images" yaml:"images" json:"images"`
	DemoURL      *string  `bson:"demo_url,omitempty" yaml:"demo_url,omitempty" json:"demo_url"`
	RepoURL      *string  `bson:"repo_url,omitempty" yaml:"repo_url,omitempty" json:"repo_url"`
	TeamMembers  []string `bson:"team_members" yaml:"team_members" json:"team_members"`
	Timeline     *string  `bson:"timeline,omitempty" yaml:"timeline,omitempty" json:"timeline"`
	Category     *string  `bson:"category,omitempty" yaml:"category,omitempty" json:"category"`
}

// Normalize fills absent list fields so they render as empty arrays.
func (p *Project) Normalize() {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
}

// HasMember reports whether slug is listed in TeamMembers.
func (p *Project) HasMember(slug string) bool {
	for _, m := range p.TeamMembers {
		if m == slug {
			return true
		}
	}
	return false
}
