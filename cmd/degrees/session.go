package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/service"
)

var errPersonNotFound = errors.New("person not found")

// session runs one interactive lookup: two names in, one chain out.
type session struct {
	svc *service.DegreesService
	in  *bufio.Scanner
	out io.Writer
}

func newSession(svc *service.DegreesService, in io.Reader, out io.Writer) *session {
	return &session{svc: svc, in: bufio.NewScanner(in), out: out}
}

func (s *session) run(ctx context.Context) error {
	source, err := s.askPerson()
	if err != nil {
		return err
	}
	target, err := s.askPerson()
	if err != nil {
		return err
	}

	conn, err := s.svc.Connect(ctx, source, target)
	if err != nil {
		return err
	}
	if !conn.Connected {
		fmt.Fprintln(s.out, "Not connected.")
		return nil
	}

	fmt.Fprintf(s.out, "%d degrees of separation.\n", conn.Degrees)
	for _, step := range conn.Steps {
		fmt.Fprintln(s.out, step.String())
	}
	return nil
}

// askPerson prompts for a name and resolves it to an id, asking the user to
// pick when several people share the name.
func (s *session) askPerson() (string, error) {
	name, err := s.prompt("Name: ")
	if err != nil {
		return "", err
	}

	id, err := s.svc.ResolvePerson(name)
	var ambiguous *service.AmbiguousNameError
	switch {
	case err == nil:
		return id, nil
	case errors.As(err, &ambiguous):
		return s.choose(ambiguous)
	case errors.Is(err, service.ErrPersonNotFound):
		return "", s.notFound()
	default:
		return "", err
	}
}

func (s *session) choose(ambiguous *service.AmbiguousNameError) (string, error) {
	fmt.Fprintf(s.out, "Which '%s'?\n", ambiguous.Name)
	for _, p := range ambiguous.Candidates {
		fmt.Fprintln(s.out, describeCandidate(p))
	}

	choice, err := s.prompt("Intended Person ID: ")
	if err != nil {
		return "", err
	}
	for _, p := range ambiguous.Candidates {
		if p.ID == choice {
			return p.ID, nil
		}
	}
	return "", s.notFound()
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) notFound() error {
	fmt.Fprintln(s.out, "Person not found.")
	return errPersonNotFound
}

func describeCandidate(p domain.Person) string {
	return fmt.Sprintf("ID: %s, Name: %s, Birth: %s", p.ID, p.Name, p.BirthYear())
}
