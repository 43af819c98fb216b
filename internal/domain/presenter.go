package domain

import "context"

// Presenter is a speaker on the event schedule. Name is unique; the other fields
// are optional free-form display strings.
type Presenter struct {
	ID        int64  `json:"id" yaml:"-"`
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title,omitempty" yaml:"title"`
	StartTime string `json:"start_time,omitempty" yaml:"start_time"`
	EndTime   string `json:"end_time,omitempty" yaml:"end_time"`
}

// NewPresenter returns a new Presenter. ID is set by the repository on create.
func NewPresenter(name, title, startTime, endTime string) *Presenter {
	return &Presenter{
		Name:      name,
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

// AddOutcome tells a caller whether an insert-or-ignore created a row.
// Both outcomes are a success.
type AddOutcome int

const (
	AddCreated AddOutcome = iota + 1
	AddExisted
)

func (o AddOutcome) String() string {
	switch o {
	case AddCreated:
		return "created"
	case AddExisted:
		return "existed"
	default:
		return "unknown"
	}
}

// PresenterRepository defines the interface for presenter storage
type PresenterRepository interface {
	// Add inserts the presenter unless the name is taken, in which case nothing changes.
	Add(ctx context.Context, p *Presenter) (AddOutcome, error)
	// Upsert inserts the presenters or overwrites title and times of existing names, in one transaction.
	Upsert(ctx context.Context, presenters []*Presenter) error
	// List returns presenters ordered by start time (missing first), then name.
	List(ctx context.Context) ([]*Presenter, error)
}

// ScheduleService defines presenter schedule operations.
type ScheduleService interface {
	List(ctx context.Context) ([]*Presenter, error)
	// Lookup returns the presenter with exactly this name from the current schedule, or ErrPresenterNotFound.
	Lookup(ctx context.Context, name string) (*Presenter, error)
	// AddNames inserts each comma-separated name independently and returns the ones that succeeded.
	AddNames(ctx context.Context, list string) ([]string, error)
	Seed(ctx context.Context, presenters []*Presenter) error
}
