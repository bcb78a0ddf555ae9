package teammember

// TeamMember is a person shown on the site. Projects holds project slugs and
// is derived from the projects' member lists at seed time.
type TeamMember struct {
	Name     string             `bson:"name" yaml:"name" json:"name"`
	Slug     string             `bson:"slug" yaml:"slug" json:"slug"`
	Role     string             `bson:"role" yaml:"role" json:"role"`
	Bio      string             `bson:"bio" yaml:"bio" json:"bio"`
	Skills   []string           `bson:"skills" yaml:"skills" json:"skills"`
	Projects []string           `bson:"projects" yaml:"projects" json:"projects"`
	Socials  map[string]*string `bson:"socials" yaml:"socials" json:"socials"`
	Email    *string            `bson:"email,omitempty" yaml:"email,omitempty" json:"email"`
	Photo    *string            `bson:"photo,omitempty" yaml:"photo,omitempty" json:"photo"`
}

// Normalize fills absent list and map fields so they render as [] and {}.
func (m *TeamMember) Normalize() {
	if m.Skills == nil {
		m.Skills = []string{}
	}
	if m.Projects == nil {
		m.Projects = []string{}
	}
	if m.Socials == nil {
		m.Socials = map[string]*string{}
	}
}
