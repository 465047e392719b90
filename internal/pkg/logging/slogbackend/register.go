package slogbackend

import (
	"github.com/zaicro/pquyquy-logging/internal/bootstrap"
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// CandidateName — имя backend-а в каталоге bootstrap.
const CandidateName = "logging.slog"

func init() {
	bootstrap.Register(bootstrap.Candidate{Name: CandidateName, New: newCandidate})
}

// newCandidate адаптирует New к сигнатуре конструктора кандидата.
func newCandidate() (logging.Logger, error) {
	b, err := New()
	if err != nil {
		return nil, err
	}
	return b, nil
}
