package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyflow/internal/extract"
	"studyflow/internal/logger"
	"studyflow/internal/models"
	"studyflow/internal/prompts"
	"studyflow/internal/providers"
	"studyflow/internal/source"
)

// State is a step of one request's processing.
type State string

const (
	StateResolvingInput State = "ResolvingInput"
	StateBuildingPrompt State = "BuildingPrompt"
	StateAwaitingModel  State = "AwaitingModel"
	StateExtracting     State = "Extracting"
	StateValidating     State = "Validating"
	StateRecording      State = "Recording"
	StateDone           State = "Done"
	StateFailed         State = "Failed"
)

type InputResolver interface {
	Resolve(ctx context.Context, src source.Source) (models.ResolvedInput, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, op models.Operation, provenance, output string) (models.HistoryRecord, error)
}

// Service runs one operation end to end: resolve input, prompt the model, extract and
// validate the answer, then record it. Nothing is retried.
type Service struct {
	resolver InputResolver
	model    providers.LLMProvider
	recorder HistoryRecorder
	log      *logger.Logger
}

func NewService(resolver InputResolver, model providers.LLMProvider, recorder HistoryRecorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{resolver: resolver, model: model, recorder: recorder, log: log}
}

// Run returns either the typed result or a *Error. The caller's cancellation is not
// propagated: once accepted, a request runs to completion and is recorded.
func (s *Service) Run(ctx context.Context, op models.Operation, src source.Source) (models.Result, error) {
	ctx = context.WithoutCancel(ctx)
	log := s.log.With("request_id", logger.RequestID(ctx), "operation", string(op))
	started := time.Now()

	res, err := s.run(ctx, log, op, src)
	if err != nil {
		var pe *Error
		if !errors.As(err, &pe) {
			pe = fail(KindModelFailure, "", err)
		}
		log.Warn("pipeline failed", "state", StateFailed, "kind", pe.Kind, "error", pe.Error(), "duration_ms", time.Since(started).Milliseconds())
		return models.Result{}, pe
	}
	log.Info("pipeline done", "state", StateDone, "duration_ms", time.Since(started).Milliseconds())
	return res, nil
}

func (s *Service) run(ctx context.Context, log *logger.Logger, op models.Operation, src source.Source) (models.Result, error) {
	if !op.Valid() {
		return models.Result{}, fail(KindBadRequest, "", fmt.Errorf("unknown operation %q", op))
	}

	log.Debug("state", "state", StateResolvingInput)
	input, err := s.resolver.Resolve(ctx, src)
	if err != nil {
		return models.Result{}, classifyResolveError(err)
	}

	log.Debug("state", "state", StateBuildingPrompt, "input_chars", len(input.Text))
	prompt, err := prompts.Build(op, input.Text)
	if err != nil {
		return models.Result{}, fail(KindBadRequest, "", err)
	}

	log.Debug("state", "state", StateAwaitingModel)
	resp, info, err := s.model.Generate(ctx, providers.GenerateRequest{Operation: string(op), Prompt: prompt})
	if err != nil {
		log.Error("model call failed", "provider", info.Name, "model", info.Model, "error_type", providers.ClassifyError(err), "error", err.Error())
		return models.Result{}, fail(KindModelFailure, "model call failed", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return models.Result{}, fail(KindModelFailure, "model call failed", extract.ErrEmptyResponse)
	}

	log.Debug("state", "state", StateExtracting, "provider", info.Name, "response_chars", len(resp.Text))
	extracted, err := extract.Extract(op, resp.Text)
	if err != nil {
		return models.Result{}, fail(KindExtractionFailure, "extraction failed", err)
	}

	log.Debug("state", "state", StateValidating, "records", len(extracted.Records))
	result, err := extract.Validate(extracted)
	if err != nil {
		return models.Result{}, fail(KindExtractionFailure, "extraction failed", err)
	}

	log.Debug("state", "state", StateRecording)
	output, err := OutputContent(result)
	if err != nil {
		return models.Result{}, fail(KindPersistenceFailure, "history append failed", err)
	}
	rec, err := s.recorder.Record(ctx, op, input.Provenance, output)
	if err != nil {
		return models.Result{}, fail(KindPersistenceFailure, "history append failed", err)
	}
	log.Debug("recorded", "history_id", rec.ID)
	return result, nil
}

func classifyResolveError(err error) *Error {
	var convErr *source.ConversionError
	switch {
	case errors.As(err, &convErr):
		return fail(KindConversionFailure, "", err)
	case errors.Is(err, source.ErrNoSource), errors.Is(err, source.ErrAmbiguousInput), errors.Is(err, source.ErrEmptyText):
		return fail(KindBadRequest, "", err)
	default:
		return fail(KindConversionFailure, "document conversion failed", err)
	}
}

// OutputContent is the history form of a result: the summary text, or the JSON encoding
// of the validated records.
func OutputContent(r models.Result) (string, error) {
	if !r.Operation.Structured() {
		return r.Summary, nil
	}
	b, err := json.Marshal(r.Payload())
	if err != nil {
		return "", fmt.Errorf("encode %s output: %w", r.Operation, err)
	}
	return string(b), nil
}
