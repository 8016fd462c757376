package registration

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/20mouhcine/jobgate-client/internal/api/apierror"
	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

// Phase of the registration workflow for one event.
type Phase int

const (
	NotRegistered Phase = iota
	FillingForm
	ChoosingResume
	Confirming
	Submitted
)

func (p Phase) String() string {
	switch p {
	case FillingForm:
		return "filling form"
	case ChoosingResume:
		return "choosing resume"
	case Confirming:
		return "confirming"
	case Submitted:
		return "submitted"
	default:
		return "not registered"
	}
}

// ConfirmationWarning is shown before a Keep/Import submission: the
// resume attached to this event cannot be changed afterward.
const ConfirmationWarning = "This action cannot be undone. The resume attached to this registration cannot be changed afterward."

var (
	ErrAlreadySubmitted = errors.New("a registration was already submitted for this event from this client")
	ErrWrongPhase       = errors.New("operation is not allowed in the current phase")
	ErrNotConfirmed     = errors.New("the irreversibility warning must be acknowledged first")
)

type RegistrationClient interface {
	RegisterTalent(ctx context.Context, payload request.RegistrationRequest, resume io.Reader) error
}

type FlagStore interface {
	MarkRegistered(ctx context.Context, eventID uint) error
	IsRegistered(ctx context.Context, eventID uint) (bool, error)
}

// Workflow captures one talent registration for one event. Anonymous
// visitors fill the whole form; an authenticated talent instead chooses
// between keeping the resume on file and importing a new one, passing
// through an irreversible-warning step.
type Workflow struct {
	client RegistrationClient
	flags  FlagStore

	eventID   uint
	phase     Phase
	form      request.RegistrationRequest
	confirmed bool
}

func NewWorkflow(client RegistrationClient, flags FlagStore, eventID uint) *Workflow {
	return &Workflow{
		client:  client,
		flags:   flags,
		eventID: eventID,
		phase:   NotRegistered,
		form:    request.RegistrationRequest{EventID: eventID},
	}
}

// Start branches on who is registering. A durable "already registered"
// flag short-circuits to Submitted without any network call; it is a UX
// hint only, the server stays authoritative.
func (w *Workflow) Start(ctx context.Context, talent *domain.Identity) (Phase, error) {
	registered, err := w.flags.IsRegistered(ctx, w.eventID)
	if err != nil {
		return w.phase, fmt.Errorf("w.flags.IsRegistered -> %w", err)
	}
	if registered {
		w.phase = Submitted

		return w.phase, nil
	}

	if talent != nil && talent.IsTalent() {
		w.form.FirstName = talent.FirstName
		w.form.LastName = talent.LastName
		w.form.Email = talent.Email
		w.form.Phone = talent.Phone
		w.phase = ChoosingResume
	} else {
		w.form.ResumeMode = request.ResumeImport
		w.phase = FillingForm
	}

	return w.phase, nil
}

// Fill updates the form fields while keeping the event binding and the
// resume choice. Entered values survive a failed submission.
func (w *Workflow) Fill(firstName, lastName, email, phone string) error {
	if w.phase != FillingForm {
		return ErrWrongPhase
	}

	w.form.FirstName = firstName
	w.form.LastName = lastName
	w.form.Email = email
	w.form.Phone = phone

	return nil
}

func (w *Workflow) SetResumeFilename(filename string) {
	w.form.ResumeFilename = filename
}

// SetPhone fills the phone number on the talent path, where the form is
// prefilled from an account that may have no phone on file.
func (w *Workflow) SetPhone(phone string) {
	w.form.Phone = phone
}

// ChooseResume picks Keep or Import and moves to the one-way warning
// step. Talent path only.
func (w *Workflow) ChooseResume(mode request.ResumeMode) error {
	if w.phase != ChoosingResume {
		return ErrWrongPhase
	}
	if mode != request.ResumeKeep && mode != request.ResumeImport {
		return fmt.Errorf("registration: unknown resume mode %q", mode)
	}

	w.form.ResumeMode = mode
	w.phase = Confirming

	return nil
}

// Confirm acknowledges ConfirmationWarning.
func (w *Workflow) Confirm() error {
	if w.phase != Confirming {
		return ErrWrongPhase
	}

	w.confirmed = true

	return nil
}

// Submit validates client-side first: an invalid form never issues an
// HTTP request. A rejected submission returns to the form phase with
// entered values intact; a success is terminal for this event on this
// client and sets the durable flag.
func (w *Workflow) Submit(ctx context.Context, resume io.Reader) error {
	switch w.phase {
	case FillingForm:
		// Anonymous path, no warning step.
	case Confirming:
		if !w.confirmed {
			return ErrNotConfirmed
		}
	case Submitted:
		return ErrAlreadySubmitted
	default:
		return ErrWrongPhase
	}

	if err := w.form.Validate(); err != nil {
		return apierror.New(apierror.KindValidation, err.Error(), err)
	}

	if err := w.client.RegisterTalent(ctx, w.form, resume); err != nil {
		// Phase and entered values are untouched, so the user can retry.
		return fmt.Errorf("w.client.RegisterTalent -> %w", err)
	}

	w.phase = Submitted

	if err := w.flags.MarkRegistered(ctx, w.eventID); err != nil {
		// The registration itself succeeded; a lost flag only re-enables
		// the form later.
		zap.L().Warn("registration: persisting registered flag failed",
			zap.Uint("event_id", w.eventID),
			zap.Error(err),
		)
	}

	return nil
}

func (w *Workflow) Phase() Phase {
	return w.phase
}

func (w *Workflow) Form() request.RegistrationRequest {
	return w.form
}
