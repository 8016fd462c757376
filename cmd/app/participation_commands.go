package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
	"github.com/20mouhcine/jobgate-client/internal/workflow/evaluation"
	"github.com/20mouhcine/jobgate-client/internal/workflow/registration"
)

func runParticipations(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("participations")
	if err := parse(fs, args); err != nil {
		return err
	}

	participations, err := e.client.Participations(ctx)
	if err != nil {
		return fmt.Errorf("participations fetch failed -> %w", err)
	}

	for _, p := range participations {
		note := fmt.Sprintf("%d/5", p.Note)
		if p.Note == domain.NoteUnrated {
			note = "unrated"
		}
		fmt.Printf("%4d  %s <%s>  %s  %s\n",
			p.ID,
			p.Talent.FullName(),
			p.Talent.Email,
			p.DateInscription.Format("2006-01-02"),
			note,
		)
	}

	return nil
}

func runRegister(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("register")
	eventID := fs.Uint("event", 0, "event id")
	firstName := fs.String("first-name", "", "first name (anonymous form)")
	lastName := fs.String("last-name", "", "last name (anonymous form)")
	email := fs.String("email", "", "email (anonymous form)")
	phone := fs.String("phone", "", "phone (anonymous form)")
	resumePath := fs.String("resume", "", "path of the resume file to import")
	keep := fs.Bool("keep-resume", false, "attach the resume already on file (talent)")
	yes := fs.Bool("yes", false, "acknowledge that the resume choice cannot be undone")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *eventID == 0 {
		fs.Usage()

		return errUsage
	}

	w := registration.NewWorkflow(e.client, e.store, uint(*eventID))

	phase, err := w.Start(ctx, e.session.Identity())
	if err != nil {
		return fmt.Errorf("starting registration failed -> %w", err)
	}
	if phase == registration.Submitted {
		fmt.Println("already registered for this event from this client")

		return nil
	}

	var resume io.Reader
	if *resumePath != "" {
		f, err := os.Open(*resumePath)
		if err != nil {
			return fmt.Errorf("opening resume failed -> %w", err)
		}
		defer f.Close()
		resume = f
		w.SetResumeFilename(filepath.Base(*resumePath))
	}

	switch phase {
	case registration.ChoosingResume:
		// The account may have no phone on file; the form still needs one.
		if *phone != "" {
			w.SetPhone(*phone)
		}

		mode := request.ResumeImport
		if *keep {
			mode = request.ResumeKeep
		}
		if err := w.ChooseResume(mode); err != nil {
			return err
		}

		fmt.Println(registration.ConfirmationWarning)
		if !*yes {
			return fmt.Errorf("re-run with -yes to confirm")
		}
		if err := w.Confirm(); err != nil {
			return err
		}
	case registration.FillingForm:
		if err := w.Fill(*firstName, *lastName, *email, *phone); err != nil {
			return err
		}
	}

	if err := w.Submit(ctx, resume); err != nil {
		return fmt.Errorf("registration failed -> %w", err)
	}

	fmt.Printf("registered for event %d\n", *eventID)

	return nil
}

func runEvaluate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("evaluate")
	eventID := fs.Uint("event", 0, "event id")
	talentID := fs.Uint("talent", 0, "talent id")
	note := fs.Int("note", 0, "rating, 1 to 5")
	comment := fs.String("comment", "", "evaluation comment")
	attended := fs.Bool("attended", false, "mark the talent as having attended")
	selected := fs.Bool("selected", false, "mark the talent as selected")
	discard := fs.Bool("discard", false, "show the saved evaluation and exit")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *eventID == 0 || *talentID == 0 {
		fs.Usage()

		return errUsage
	}

	sess := evaluation.NewSession(e.client, uint(*eventID), uint(*talentID))
	if err := sess.Load(ctx); err != nil {
		return fmt.Errorf("loading participation failed -> %w", err)
	}

	// Only flags that were actually given mutate the draft, so an
	// untouched field keeps its saved value.
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if setErr != nil {
			return
		}
		switch f.Name {
		case "note":
			setErr = sess.SetNote(*note)
		case "comment":
			setErr = sess.SetComment(*comment)
		case "attended":
			setErr = sess.SetAttended(*attended)
		case "selected":
			setErr = sess.SetSelected(*selected)
		}
	})
	if setErr != nil {
		return setErr
	}

	if *discard {
		if err := sess.Discard(); err != nil && err != evaluation.ErrNoChanges {
			return err
		}
		printEvaluation(sess)

		return nil
	}

	if !sess.Dirty() {
		fmt.Println("no changes")
		printEvaluation(sess)

		return nil
	}

	if err := sess.Commit(ctx); err != nil {
		return fmt.Errorf("saving evaluation failed (draft kept, retry with the same flags) -> %w", err)
	}

	fmt.Println("evaluation saved")
	printEvaluation(sess)

	return nil
}

func printEvaluation(sess *evaluation.Session) {
	p := sess.Participation()
	eval := sess.Snapshot()

	fmt.Printf("talent: %s <%s>\nregistered: %s\n",
		p.Talent.FullName(),
		p.Talent.Email,
		p.DateInscription.Format("2006-01-02 15:04"),
	)
	if p.Rdv != nil {
		fmt.Printf("interview: %s\n", p.Rdv.Format("2006-01-02 15:04"))
	}

	noteLabel := fmt.Sprintf("%d/5", eval.Note)
	if eval.Note == 0 {
		noteLabel = "unrated"
	}
	fmt.Printf("note: %s\nattended: %v\nselected: %v\ncomment: %s\n",
		noteLabel,
		eval.HasAttended,
		eval.IsSelected,
		eval.Comment,
	)
}
