package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"eventqa/internal/domain"
	"eventqa/internal/format"
)

type stepFunc func(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error)

type entryFunc func(ctx context.Context, in domain.Inbound) error

// Engine owns every user's dialog and routes inbound text to flow steps or menu entries.
type Engine struct {
	users     domain.UserService
	schedule  domain.ScheduleService
	questions domain.QuestionService
	gate      domain.Authorizer
	messenger domain.Messenger
	logger    *slog.Logger

	mu      sync.Mutex
	dialogs map[int64]*Dialog

	steps   map[State]stepFunc
	entries map[string]entryFunc
}

// NewEngine returns an Engine with no active dialogs.
func NewEngine(
	users domain.UserService,
	schedule domain.ScheduleService,
	questions domain.QuestionService,
	gate domain.Authorizer,
	messenger domain.Messenger,
	logger *slog.Logger,
) *Engine {
	e := &Engine{
		users:     users,
		schedule:  schedule,
		questions: questions,
		gate:      gate,
		messenger: messenger,
		logger:    logger,
		dialogs:   make(map[int64]*Dialog),
	}
	e.steps = map[State]stepFunc{
		StateRegistrationName:  e.registrationName,
		StateRegistrationEmail: e.registrationEmail,
		StateAskPresenter:      e.askPresenter,
		StateAskText:           e.askText,
		StateFilterPresenter:   e.filterPresenter,
		StateFilterUser:        e.filterUser,
		StatePromote:           e.promote,
		StateDemote:            e.demote,
		StateAddPresenters:     e.addPresenters,
	}
	e.entries = map[string]entryFunc{
		cmdStart:            e.start,
		labelBackToMainMenu: e.start,
		labelAsk:            e.startAsk,
		labelAdminPanel:     e.openAdminPanel,
		labelBackToAdmin:    e.openAdminPanel,
		labelViewAll:        e.viewAll,
		labelFilterByPres:   e.startFilterPresenter,
		labelFilterByUser:   e.startFilterUser,
		labelAddPresenter:   e.startAddPresenters,
		labelManageUsers:    e.manageUsers,
		labelPromote:        e.startPromote,
		labelDemote:         e.startDemote,
	}
	return e
}

// Handle processes one inbound message. Calls for the same user must not overlap;
// the Dispatcher guarantees that.
func (e *Engine) Handle(ctx context.Context, in domain.Inbound) {
	log := e.log(ctx).With("user_id", in.UserID)
	text := strings.TrimSpace(in.Text)

	switch text {
	case cmdStart:
		e.endDialog(in.UserID)
		e.runEntry(ctx, in, e.start)
		return
	case cmdCancel:
		e.endDialog(in.UserID)
		e.runEntry(ctx, in, e.cancel)
		return
	}

	if d := e.dialog(in.UserID); d != nil {
		if strings.HasPrefix(text, "/") {
			log.Debug("command ignored inside flow", "state", d.State, "text", text)
			return
		}
		step, ok := e.steps[d.State]
		if !ok {
			log.Error("no step for state", "state", d.State)
			e.endDialog(in.UserID)
			return
		}
		tr, err := step(ctx, in, d)
		if err != nil {
			log.Error("flow step failed", "state", d.State, "error", err)
			e.endDialog(in.UserID)
			e.send(ctx, in.ChatID, domain.Reply{Text: msgFailure})
			return
		}
		e.apply(in.UserID, d, tr)
		return
	}

	entry, ok := e.entries[text]
	if !ok {
		log.Debug("unmatched text ignored")
		return
	}
	e.runEntry(ctx, in, entry)
}

// snapshot returns a copy of the user's active dialog. Steps write Dialog.Data
// without the lock, so it must not run concurrently with Handle for that user.
func (e *Engine) snapshot(userID int64) (Dialog, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.dialogs[userID]
	if !ok {
		return Dialog{}, false
	}
	return d.clone(), true
}

// ActiveDialogs returns the number of users inside a flow.
func (e *Engine) ActiveDialogs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dialogs)
}

func (e *Engine) runEntry(ctx context.Context, in domain.Inbound, entry entryFunc) {
	if err := entry(ctx, in); err != nil {
		e.log(ctx).Error("menu entry failed", "user_id", in.UserID, "text", in.Text, "error", err)
		e.endDialog(in.UserID)
		e.send(ctx, in.ChatID, domain.Reply{Text: msgFailure})
	}
}

func (e *Engine) dialog(userID int64) *Dialog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dialogs[userID]
}

// begin replaces any active dialog with a fresh one in state.
func (e *Engine) begin(userID int64, state State) *Dialog {
	d := newDialog(state)
	e.mu.Lock()
	e.dialogs[userID] = d
	e.mu.Unlock()
	return d
}

func (e *Engine) endDialog(userID int64) {
	e.mu.Lock()
	delete(e.dialogs, userID)
	e.mu.Unlock()
}

func (e *Engine) apply(userID int64, d *Dialog, tr Transition) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// A step may have ended the dialog itself or started another one.
	if e.dialogs[userID] != d {
		return
	}
	switch {
	case tr.end:
		delete(e.dialogs, userID)
	case tr.next != "":
		d.State = tr.next
	}
}

func (e *Engine) send(ctx context.Context, chatID int64, reply domain.Reply) {
	if err := e.messenger.Send(ctx, chatID, reply); err != nil {
		e.log(ctx).Warn("send reply failed", "chat_id", chatID, "error", err)
	}
}

// sendLong sends text split into message-sized pieces.
func (e *Engine) sendLong(ctx context.Context, chatID int64, text string) {
	for _, chunk := range format.Chunk(text, format.MaxMessageRunes) {
		e.send(ctx, chatID, domain.Reply{Text: chunk})
	}
}

func (e *Engine) log(ctx context.Context) *slog.Logger {
	if id := TraceID(ctx); id != "" {
		return e.logger.With("trace_id", id)
	}
	return e.logger
}

type traceKey struct{}

// WithTraceID returns ctx carrying id for log correlation.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// TraceID returns the trace ID stored in ctx, if any.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
