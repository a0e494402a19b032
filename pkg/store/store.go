// Package store persists projects by ID for the HTTP server.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON document per project in a directory
//   - [MongoStore]: a MongoDB collection, for multi-instance deployments
//
// Both normalize and validate a project before writing it, so anything read
// back is ready for the pipeline.
//
// # Usage
//
//	st, err := store.NewFileStore("")  // Uses ~/.local/share/gridsmith/projects/
//	if err != nil {
//	    return err
//	}
//	doc, err := st.Put(ctx, p)
//	...
//	p, err := st.Get(ctx, doc.ID)
//	if store.IsNotFound(err) {
//	    // no such project
//	}
package store

import (
	"context"
	"time"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// Store persists projects.
type Store interface {
	// Get returns the stored project or a PROJECT_NOT_FOUND error.
	Get(ctx context.Context, id string) (Document, error)

	// Put creates or replaces a project. A project without an ID gets a
	// new one. The stored document is returned.
	Put(ctx context.Context, p project.Project) (Document, error)

	// Delete removes a project or returns a PROJECT_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// List returns summaries of every project, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	Close() error
}

// Document is a stored project with its modification time.
type Document struct {
	project.Project `bson:",inline"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

// Summary describes a stored project without its items.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Columns   int       `json:"columns"`
	Rows      int       `json:"rows"`
	Items     int       `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsNotFound reports whether err means the project does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeProjectNotFound)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeProjectNotFound, "project %q not found", id)
}

// prepare assigns an ID when missing, normalizes and validates p.
func prepare(p project.Project, now time.Time) (Document, error) {
	if p.ID == "" {
		p.ID = project.NewID()
	}
	if err := errors.ValidateProjectID(p.ID); err != nil {
		return Document{}, err
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return Document{}, err
	}
	return Document{Project: p, UpdatedAt: now.UTC()}, nil
}

func (d Document) summary() Summary {
	return Summary{
		ID:        d.ID,
		Name:      d.Name,
		Columns:   d.Config.Columns,
		Rows:      d.Config.Rows,
		Items:     len(d.Items),
		UpdatedAt: d.UpdatedAt,
	}
}
