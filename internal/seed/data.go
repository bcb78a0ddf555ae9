package seed

import (
	"github.com/kazz187/portfolio/internal/project"
	"github.com/kazz187/portfolio/internal/teammember"
)

func ptr(s string) *string {
	return &s
}

// sampleTeam returns fresh copies of the team members inserted by Seed.
func sampleTeam() []*teammember.TeamMember {
	return []*teammember.TeamMember{
		{
			Name:   "Alex Johnson",
			Slug:   "alex-johnson",
			Role:   "Full-Stack Developer",
			Bio:    "Engineer focused on building delightful, scalable web apps.",
			Skills: []string{"React", "FastAPI", "MongoDB", "Tailwind"},
			Socials: map[string]*string{
				"linkedin": ptr("https://www.linkedin.com/in/example"),
				"github":   ptr("https://github.com/example"),
				"website":  ptr("https://example.com"),
			},
			Email: ptr("alex@example.com"),
			Photo: ptr("https://images.unsplash.com/photo-1607746882042-944635dfe10e?w=400&q=80"),
		},
		{
			Name:   "Jamie Lee",
			Slug:   "jamie-lee",
			Role:   "UI/UX Designer",
			Bio:    "Designer blending aesthetics with usability for meaningful products.",
			Skills: []string{"Figma", "Design Systems", "Prototyping"},
			Socials: map[string]*string{
				"linkedin": ptr("https://www.linkedin.com/in/example2"),
				"github":   ptr("https://github.com/example2"),
			},
			Email: ptr("jamie@example.com"),
			Photo: ptr("https://images.unsplash.com/photo-1544723795-3fb6469f5b39?w=400&q=80"),
		},
		{
			Name:   "Sam Patel",
			Slug:   "sam-patel",
			Role:   "Backend Engineer",
			Bio:    "API-first developer who loves clean architecture and performance.",
			Skills: []string{"Python", "FastAPI", "Databases"},
			Socials: map[string]*string{
				"github": ptr("https://github.com/example3"),
			},
			Email: ptr("sam@example.com"),
			Photo: ptr("https://images.unsplash.com/photo-1541534401786-2077eed87a56?w=400&q=80"),
		},
	}
}

// sampleProjects returns fresh copies of the projects inserted by Seed.
func sampleProjects() []*project.Project {
	return []*project.Project{
		{
			Title:        "Nova Portfolio",
			Slug:         "nova-portfolio",
			Description:  "A modern, animated portfolio template with 3D hero and dynamic content.",
			Technologies: []string{"React", "Tailwind", "Framer Motion"},
			Images:       []string{"https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=1200&q=80"},
			DemoURL:      ptr("https://example.com/demo"),
			RepoURL:      ptr("https://github.com/example/nova"),
			TeamMembers:  []string{"alex-johnson", "jamie-lee"},
			Timeline:     ptr("2024"),
			Category:     ptr("Web"),
		},
		{
			Title:        "API Atlas",
			Slug:         "api-atlas",
			Description:  "A developer dashboard for exploring public APIs with analytics.",
			Technologies: []string{"FastAPI", "MongoDB", "Vite"},
			Images:       []string{"https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=1200&q=80"},
			DemoURL:      ptr("https://example.com/atlas"),
			RepoURL:      ptr("https://github.com/example/atlas"),
			TeamMembers:  []string{"alex-johnson", "sam-patel"},
			Timeline:     ptr("2023"),
			Category:     ptr("Tool"),
		},
	}
}
