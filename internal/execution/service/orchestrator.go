package service

import (
	"context"
	"strings"

	"github.com/codehive-ide/codehive-backend/internal/apperr"
	"github.com/codehive-ide/codehive-backend/internal/execution/domain"
	"github.com/codehive-ide/codehive-backend/internal/logging"
)

// ContentFetcher supplies the current content of a project file.
type ContentFetcher interface {
	GetFile(ctx context.Context, projectID, fileName string) (string, error)
}

// Runner dispatches source text to the remote execution service.
type Runner interface {
	Execute(ctx context.Context, script, language, stdin string) (domain.Result, error)
}

// Orchestrator drives one execution request through its lifecycle:
// resolve language, fetch content, dispatch, classify. No retries; every
// failure is terminal for the request.
type Orchestrator struct {
	files  ContentFetcher
	runner Runner
}

func NewOrchestrator(files ContentFetcher, runner Runner) *Orchestrator {
	return &Orchestrator{files: files, runner: runner}
}

// Run executes the named file with the given stdin. An unrecognized
// extension fails before any store or network call is made.
func (o *Orchestrator) Run(ctx context.Context, projectID, fileName, stdin string) (domain.Result, error) {
	projectID = strings.TrimSpace(projectID)
	fileName = strings.TrimSpace(fileName)
	if projectID == "" || fileName == "" {
		return domain.Result{}, apperr.Validationf("project ID and file name are required")
	}

	language, ok := domain.LanguageForFile(fileName)
	if !ok {
		return domain.Result{}, apperr.UnsupportedLanguagef("unsupported file type")
	}

	content, err := o.files.GetFile(ctx, projectID, fileName)
	if err != nil {
		return domain.Result{}, err
	}

	result, err := o.runner.Execute(ctx, content, language, stdin)
	if err != nil {
		if code, _ := apperr.CodeOf(err); code != apperr.CodeExecRuntime {
			logging.NewLogger(ctx).Error("run_code", err)
		}
		return result, err
	}
	return result, nil
}
