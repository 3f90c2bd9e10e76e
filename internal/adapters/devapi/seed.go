package devapi

import (
	"context"
	"fmt"

	repository "github.com/okian/staffboard/internal/adapters/repository"
	"github.com/okian/staffboard/internal/domain/model"
)

// Seed fills store with a small demo data set. The first employee created is
// the default session employee.
func Seed(ctx context.Context, store repository.Store) error {
	alice := store.AddEmployee(ctx, "Alice", "Go", "SQL")
	bob := store.AddEmployee(ctx, "Bob", "Python")

	projects := []model.Project{
		{ProjectID: "P1", Description: "Infrastructure migration"},
		{ProjectID: "P2", Description: "Billing revamp"},
	}
	for _, p := range projects {
		if err := store.AddProject(ctx, p); err != nil {
			return fmt.Errorf("%w: %w", ErrSeed, err)
		}
	}

	steps := []func() error{
		func() error { return store.Assign(ctx, alice, "P1") },
		func() error { return store.Assign(ctx, alice, "P2") },
		func() error { return store.Assign(ctx, bob, "P2") },
		func() error { _, err := store.AddTask(ctx, "P1", alice, "Provision staging cluster"); return err },
		func() error { _, err := store.AddTask(ctx, "P1", alice, "Migrate databases"); return err },
		func() error { _, err := store.AddTask(ctx, "P2", alice, "Draft invoice schema"); return err },
		func() error { _, err := store.AddTask(ctx, "P2", bob, "Review payment provider API"); return err },
		func() error { _, err := store.AddMilestone(ctx, alice, "Staging cluster online"); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("%w: %w", ErrSeed, err)
		}
	}
	return nil
}
