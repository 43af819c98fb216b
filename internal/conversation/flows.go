package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"eventqa/internal/domain"
	"eventqa/internal/format"
)

func (e *Engine) registrationName(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	name := strings.TrimSpace(in.Text)
	if name == "" {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgAskName})
		return Stay(), nil
	}
	d.Data[keyName] = name
	e.send(ctx, in.ChatID, domain.Reply{Text: msgAskEmail})
	return Advance(StateRegistrationEmail), nil
}

func (e *Engine) registrationEmail(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	email := strings.TrimSpace(in.Text)
	if !strings.Contains(email, "@") {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgInvalidEmail})
		return Stay(), nil
	}
	user, err := e.users.Register(ctx, in.UserID, d.Data[keyName], email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			e.send(ctx, in.ChatID, domain.Reply{Text: msgInvalidEmail})
			return Stay(), nil
		}
		return End(), fmt.Errorf("register: %w", err)
	}
	e.send(ctx, in.ChatID, domain.Reply{
		Text:    fmt.Sprintf(msgRegistered, user.Name),
		Choices: mainMenu(user.IsOrganizer),
	})
	return End(), nil
}

func (e *Engine) askPresenter(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	p, err := e.schedule.Lookup(ctx, in.Text)
	if errors.Is(err, domain.ErrPresenterNotFound) {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgInvalidPresenter})
		return Stay(), nil
	}
	if err != nil {
		return End(), err
	}
	d.Data[keyPresenter] = p.Name
	e.send(ctx, in.ChatID, domain.Reply{Text: fmt.Sprintf(msgAskText, p.Name), ClearChoices: true})
	return Advance(StateAskText), nil
}

func (e *Engine) askText(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	if strings.TrimSpace(in.Text) == "" {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgEmptyQuestion})
		return Stay(), nil
	}
	if _, err := e.questions.Submit(ctx, in.UserID, d.Data[keyPresenter], in.Text); err != nil {
		return End(), fmt.Errorf("submit question: %w", err)
	}
	e.send(ctx, in.ChatID, domain.Reply{
		Text:    msgQuestionSent,
		Choices: mainMenu(e.gate.IsOrganizer(ctx, in.UserID)),
	})
	return End(), nil
}

func (e *Engine) filterPresenter(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return End(), nil
	}
	if in.Text == labelCancel {
		e.showAdminPanel(ctx, in.ChatID)
		return End(), nil
	}
	presenter := in.Text
	questions, err := e.questions.List(ctx, domain.QuestionFilter{PresenterName: presenter})
	if err != nil {
		return End(), err
	}
	if len(questions) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: fmt.Sprintf(msgNoPresenterQs, presenter)})
	} else {
		e.sendLong(ctx, in.ChatID, format.Questions(fmt.Sprintf(msgPresenterQs, presenter), questions, false))
	}
	e.showAdminPanel(ctx, in.ChatID)
	return End(), nil
}

func (e *Engine) filterUser(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return End(), nil
	}
	substr := in.Text
	if strings.TrimSpace(substr) == "" {
		substr = ""
	}
	questions, err := e.questions.List(ctx, domain.QuestionFilter{UserName: substr})
	if err != nil {
		return End(), err
	}
	if len(questions) == 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: fmt.Sprintf(msgNoUserQs, substr)})
	} else {
		e.sendLong(ctx, in.ChatID, format.Questions(fmt.Sprintf(msgUserQs, substr), questions, true))
	}
	e.showAdminPanel(ctx, in.ChatID)
	return End(), nil
}

func (e *Engine) addPresenters(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return End(), nil
	}
	added, err := e.schedule.AddNames(ctx, in.Text)
	if err != nil {
		return End(), err
	}
	if len(added) > 0 {
		e.send(ctx, in.ChatID, domain.Reply{Text: fmt.Sprintf(msgPresentersAdded, strings.Join(added, ", "))})
	} else {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgNoPresentersAdded})
	}
	e.showAdminPanel(ctx, in.ChatID)
	return End(), nil
}

func (e *Engine) promote(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	return e.changeRole(ctx, in, true, msgPromoted, msgPromoteNotFound)
}

func (e *Engine) demote(ctx context.Context, in domain.Inbound, d *Dialog) (Transition, error) {
	return e.changeRole(ctx, in, false, msgDemoted, msgDemoteNotFound)
}

func (e *Engine) changeRole(ctx context.Context, in domain.Inbound, organizer bool, doneMsg, notFoundMsg string) (Transition, error) {
	if !e.gate.IsOrganizer(ctx, in.UserID) {
		return End(), nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(in.Text), 10, 64)
	if err != nil {
		e.send(ctx, in.ChatID, domain.Reply{Text: msgInvalidID})
		return Stay(), nil
	}
	user, err := e.users.SetOrganizer(ctx, id, organizer)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		e.send(ctx, in.ChatID, domain.Reply{Text: notFoundMsg})
	case err != nil:
		return End(), err
	default:
		e.log(ctx).Info("organizer role changed", "by", in.UserID, "target", id, "organizer", organizer)
		e.send(ctx, in.ChatID, domain.Reply{Text: fmt.Sprintf(doneMsg, user.Name)})
		if id == in.UserID && !e.gate.IsOrganizer(ctx, in.UserID) {
			e.send(ctx, in.ChatID, domain.Reply{Text: msgMainMenu, Choices: mainMenu(false)})
			return End(), nil
		}
	}
	e.showAdminPanel(ctx, in.ChatID)
	return End(), nil
}
