// Package seed populates an empty store with sample projects and team members.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/kazz187/portfolio/internal/project"
	"github.com/kazz187/portfolio/internal/teammember"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
)

const (
	StatusOK = "ok"

	MessageSeeded         = "Seeded sample data"
	MessageAlreadyPresent = "Data already present"
)

type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Seeder struct {
	store    *docstore.Handle
	projects project.Repository
	members  teammember.Repository
}

func NewSeeder(store *docstore.Handle, projects project.Repository, members teammember.Repository) *Seeder {
	return &Seeder{store: store, projects: projects, members: members}
}

// Seed inserts the sample data unless either collection already holds a
// document. The emptiness check and the inserts are not atomic: two
// concurrent calls can both pass the check, and the loser then fails on the
// unique slug index.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	if !s.store.Available() {
		return nil, cerr.ErrStoreUnavailable()
	}
	if err := s.projects.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := s.members.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	projectCount, memberCount, err := s.counts(ctx)
	if err != nil {
		return nil, err
	}
	if projectCount > 0 || memberCount > 0 {
		slog.InfoContext(ctx, "seed skipped", "projects", projectCount, "team_members", memberCount)
		return &Result{Status: StatusOK, Message: MessageAlreadyPresent}, nil
	}

	team := sampleTeam()
	for _, m := range team {
		if err := s.members.Create(ctx, m); err != nil {
			return nil, err
		}
	}
	projects := sampleProjects()
	for _, p := range projects {
		if err := s.projects.Create(ctx, p); err != nil {
			return nil, err
		}
	}

	memberProjects := Backfill(team, projects)
	for _, m := range team {
		if err := s.members.SetProjects(ctx, m.Slug, memberProjects[m.Slug]); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "seeded sample data", "projects", len(projects), "team_members", len(team))
	return &Result{Status: StatusOK, Message: MessageSeeded}, nil
}

func (s *Seeder) counts(ctx context.Context) (projects, members int64, err error) {
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		n, err := s.projects.Count(ctx)
		projects = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.members.Count(ctx)
		members = n
		return err
	})
	if err := p.Wait(); err != nil {
		return 0, 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return projects, members, nil
}

// Backfill computes, for every member, the slugs of the projects listing that
// member, in project order. Members on no project map to an empty list.
func Backfill(members []*teammember.TeamMember, projects []*project.Project) map[string][]string {
	out := make(map[string][]string, len(members))
	for _, m := range members {
		slugs := []string{}
		for _, p := range projects {
			if p.HasMember(m.Slug) {
				slugs = append(slugs, p.Slug)
			}
		}
		out[m.Slug] = slugs
	}
	return out
}
