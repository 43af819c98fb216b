// Package conversation runs the per-user chat workflows: registration, asking a
// question, and the organizer flows for filtering questions, adding presenters and
// managing roles.
//
// Each user has at most one active Dialog. Inbound text goes to the current step
// of that dialog; with no dialog it is matched against the fixed menu labels.
package conversation

// State names one step of a flow.
type State string

const (
	StateRegistrationName State = "registration.name"
	StateRegistrationEmail State = "registration.email"
	StateAskPresenter      State = "ask.presenter"
	StateAskText           State = "ask.text"
	StateFilterPresenter   State = "filter.presenter"
	StateFilterUser        State = "filter.user"
	StatePromote           State = "roles.promote"
	StateDemote            State = "roles.demote"
	StateAddPresenters     State = "presenters.add"
)

// Dialog keys.
const (
	keyName      = "name"
	keyPresenter = "presenter"
)

// Dialog is one user's active flow and its step-local data.
type Dialog struct {
	State State
	Data  map[string]string
}

func newDialog(state State) *Dialog {
	return &Dialog{State: state, Data: make(map[string]string)}
}

func (d *Dialog) clone() Dialog {
	data := make(map[string]string, len(d.Data))
	for k, v := range d.Data {
		data[k] = v
	}
	return Dialog{State: d.State, Data: data}
}

// Transition is a step's verdict: stay in the current state, advance to another, or end the flow.
type Transition struct {
	next State
	end  bool
}

// Stay keeps the dialog in its current state.
func Stay() Transition { return Transition{} }

// Advance moves the dialog to next.
func Advance(next State) Transition { return Transition{next: next} }

// End finishes the flow and discards its data.
func End() Transition { return Transition{end: true} }
