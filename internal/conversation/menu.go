package conversation

import (
	"context"
	"errors"
	"fmt"

	"eventqa/internal/domain"
	"eventqa/internal/format"
)

// start greets a registered user with the main menu or begins registration.
func (e *Engine) start(ctx context.Context, in domain.Inbound) error {
	user, err := e.users.GetByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		e.begin(in.UserID, StateRegistrationName)
		e.send(ctx, in.ChatID, domain.Reply{Text: msgWelcomeNew, ClearChoices: true})
		return nil
	}
	if err != nil {
		return err
	}
	e.send(ctx, in.ChatID, domain.Reply{
		Text:    fmt.Sprintf(msgWelcomeBack, user.Name),
		Choices: mainMenu(user.IsOrganizer),
	})
	return nil
}

func (e *Engine) cancel(ctx context.Context, in domain.Inbound) error {
	user, err := e.users.GetByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgCancelledUnregister, ClearChoices: true})
		return nil
	}
	if err != nil {
		return err
	}
	e.send(ctx, in.ChatID, domain.Reply{Text: msgCancelled, Choices: mainMenu(user.IsOrganizer)})
	return nil
}

func (e *Engine) startAsk(ctx context.Context, in domain.Inbound) error {
	if _, err := e.users.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			e.send(ctx, in.ChatID, domain.Reply{Text: msgRegisterFirst})
			return nil
		}
		return err
	}
	presenters, err := e.schedule.List(ctx)
	if err != nil {
		return err
	}
	if len(presenters) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgNoPresenters})
		return nil
	}

	names := make([]string, len(presenters))
	for i, p := range presenters {
		names[i] = p.Name
	}
	e.begin(in.UserID, StateAskPresenter)
	e.sendChoices(ctx, in.ChatID, format.Schedule(presenters, msgChoosePresenter), names, true)
	return nil
}

func (e *Engine) openAdminPanel(ctx context.Context, in domain.Inbound) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgDenied})
		return nil
	}
	e.showAdminPanel(ctx, in.ChatID)
	return nil
}

func (e *Engine) showAdminPanel(ctx context.Context, chatID int64) {
	e.send(ctx, chatID, domain.Reply{Text: msgAdminPanel, Choices: adminMenu()})
}

func (e *Engine) viewAll(ctx context.Context, in domain.Inbound) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return nil
	}
	questions, err := e.questions.List(ctx, domain.QuestionFilter{})
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgNoQuestions})
		return nil
	}
	e.sendLong(ctx, in.ChatID, format.Questions(msgAllQuestions, questions, true))
	return nil
}

func (e *Engine) startFilterPresenter(ctx context.Context, in domain.Inbound) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return nil
	}
	presenters, err := e.schedule.List(ctx)
	if err != nil {
		return err
	}
	if len(presenters) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgNoFilterOptions})
		return nil
	}
	choices := make([]string, 0, len(presenters)+1)
	for _, p := range presenters {
		choices = append(choices, p.Name)
	}
	choices = append(choices, labelCancel)

	e.begin(in.UserID, StateFilterPresenter)
	e.sendChoices(ctx, in.ChatID, msgChooseFilter, choices, true)
	return nil
}

func (e *Engine) startFilterUser(ctx context.Context, in domain.Inbound) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return nil
	}
	e.begin(in.UserID, StateFilterUser)
	e.send(ctx, in.ChatID, domain.Reply{Text: msgAskUserFilter, ClearChoices: true})
	return nil
}

func (e *Engine) startAddPresenters(ctx context.Context, in domain.Inbound) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgDenied})
		return nil
	}
	e.begin(in.UserID, StateAddPresenters)
	e.send(ctx, in.ChatID, domain.Reply{Text: msgAskPresenterNames, ClearChoices: true})
	return nil
}

func (e *Engine) manageUsers(ctx context.Context, in domain.Inbound) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgDenied})
		return nil
	}
	users, err := e.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgNoUsers})
		e.showAdminPanel(ctx, in.ChatID)
		return nil
	}
	e.sendLong(ctx, in.ChatID, format.Roster(users))
	e.send(ctx, in.ChatID, domain.Reply{Text: msgChooseAction, Choices: roleMenu()})
	return nil
}

func (e *Engine) startPromote(ctx context.Context, in domain.Inbound) error {
	return e.startRoleChange(ctx, in, false, StatePromote, msgNoPromotable, msgPromoteList)
}

func (e *Engine) startDemote(ctx context.Context, in domain.Inbound) error {
	return e.startRoleChange(ctx, in, true, StateDemote, msgNoDemotable, msgDemoteList)
}

// startRoleChange lists users whose organizer flag equals current and waits for an ID.
func (e *Engine) startRoleChange(ctx context.Context, in domain.Inbound, current bool, state State, emptyMsg, heading string) error {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return nil
	}
	users, err := e.users.List(ctx)
	if err != nil {
		return err
	}
	var candidates []*domain.User
	for _, u := range users {
		if u.IsOrganizer == current {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: emptyMsg})
		e.showAdminPanel(ctx, in.ChatID)
		return nil
	}
	e.begin(in.UserID, state)
	text := format.Candidates(heading, candidates)
	chunks := format.Chunk(text, format.MaxMessageRunes)
	for i, chunk := range chunks {
		e.send(ctx, in.ChatID, domain.Reply{Text: chunk, ClearChoices: i == 0})
	}
	return nil
}

func (e *Engine) sendChoices(ctx context.Context, chatID int64, text string, choices []string, oneTime bool) {
	chunks := format.Chunk(text, format.MaxMessageRunes)
	for i, chunk := range chunks {
		reply := domain.Reply{Text: chunk}
		if i == len(chunks)-1 {
			reply.Choices = choices
			reply.OneTime = oneTime
		}
		e.send(ctx, chatID, reply)
	}
}
