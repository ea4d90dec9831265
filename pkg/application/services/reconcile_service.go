package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/bomforge/pkg/application/dto"
	"github.com/vsinha/bomforge/pkg/domain/entities"
	domain "github.com/vsinha/bomforge/pkg/domain/services"
	"github.com/vsinha/bomforge/pkg/infrastructure/events"
	"github.com/vsinha/bomforge/pkg/infrastructure/logging"
	"github.com/vsinha/bomforge/pkg/infrastructure/metrics"
	"github.com/vsinha/bomforge/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bomforge/pkg/infrastructure/repositories/memory"
)

// ReconcileConfig holds the policy switches of a reconciliation run
type ReconcileConfig struct {
	// NormalizeValues joins names and placed values by decoded magnitude
	NormalizeValues bool
	// PropagateParentFields copies description and part number onto split entries
	PropagateParentFields bool
	// CanonicalizeValues decodes resistor entry names after resolution
	CanonicalizeValues bool
}

// ReconcileService coordinates loading, indexing, resolution and canonicalization
type ReconcileService struct {
	config     ReconcileConfig
	loader     *csv.Loader
	eventStore events.EventStore
	recorder   *metrics.Recorder
	logger     *zap.Logger
	decode     domain.ValueDecoder
	resolver   *domain.AmbiguityResolver
	validator  *domain.BOMValidator
}

// NewReconcileService creates a new reconcile service. A nil event store,
// recorder or logger disables that concern.
func NewReconcileService(
	config ReconcileConfig,
	loader *csv.Loader,
	eventStore events.EventStore,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *ReconcileService {
	if loader == nil {
		loader = csv.NewLoader()
	}
	var validatorOpts []domain.ValidatorOption
	if config.NormalizeValues {
		validatorOpts = append(validatorOpts, domain.WithValueComparison(domain.DecodeResistance))
	}
	return &ReconcileService{
		config:     config,
		loader:     loader,
		eventStore: eventStore,
		recorder:   recorder,
		logger:     logging.OrNop(logger),
		decode:     domain.DecodeResistance,
		resolver:   domain.NewAmbiguityResolver(domain.WithParentFields(config.PropagateParentFields)),
		validator:  domain.NewBOMValidator(validatorOpts...),
	}
}

// LoadInputs reads the BOM and placement files. Structural loader failures are
// returned unchanged so callers can match ErrMissingHeader and ErrMissingField.
func (s *ReconcileService) LoadInputs(bomPath, placementPath string) ([]entities.BOMEntry, []*entities.PlacementEntry, error) {
	entries, err := s.loader.LoadBOM(bomPath)
	if err != nil {
		return nil, nil, err
	}
	placements, err := s.loader.LoadPlacements(placementPath)
	if err != nil {
		return nil, nil, err
	}

	if s.recorder != nil {
		s.recorder.RowsRead.WithLabelValues("bom").Add(float64(len(entries)))
		s.recorder.RowsRead.WithLabelValues("placement").Add(float64(len(placements)))
	}
	s.logger.Debug("Loaded inputs",
		zap.String("bom", bomPath),
		zap.Int("entries", len(entries)),
		zap.String("placement", placementPath),
		zap.Int("placements", len(placements)))

	return entries, placements, nil
}

// ReconcileFiles loads both files and reconciles them
func (s *ReconcileService) ReconcileFiles(ctx context.Context, bomPath, placementPath string) (*dto.ReconcileResult, error) {
	entries, placements, err := s.LoadInputs(bomPath, placementPath)
	if err != nil {
		return nil, err
	}

	result, err := s.Reconcile(ctx, entries, placements)
	if err != nil {
		return nil, err
	}
	result.Sources = map[string]string{
		"BOM":       bomPath,
		"Placement": placementPath,
	}
	return result, nil
}

// Reconcile splits ambiguous BOM rows using the placement data and, when
// enabled, canonicalizes resistor values. Decode failures are collected in
// the result and never abort the run.
func (s *ReconcileService) Reconcile(
	ctx context.Context,
	entries []entities.BOMEntry,
	placements []*entities.PlacementEntry,
) (*dto.ReconcileResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	index, err := s.buildIndex(placements)
	if err != nil {
		return nil, fmt.Errorf("failed to index placements: %w", err)
	}
	s.appendEvent(logger, runID, events.NewBOMLoadedEvent(runID, len(entries)))
	s.appendEvent(logger, runID, events.NewPlacementsIndexedEvent(runID, index.Len(), index.Values(), s.config.NormalizeValues))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	resolution := s.resolver.ResolveDetailed(entries, index)
	resolveTime := time.Since(startTime)

	result := &dto.ReconcileResult{
		RunID:          runID,
		InputEntries:   len(entries),
		Placements:     index.Len(),
		Entries:        resolution.Entries,
		Expansions:     make([]dto.RowExpansion, 0, len(resolution.Expansions)),
		Unmatched:      resolution.Unmatched,
		DecodeFailures: make([]dto.DecodeFailure, 0),
		ResolveTime:    resolveTime,
	}
	if result.Unmatched == nil {
		result.Unmatched = make([]string, 0)
	}

	for _, expansion := range resolution.Expansions {
		result.Expansions = append(result.Expansions, dto.RowExpansion{
			Parent:   expansion.Parent,
			Children: expansion.Children,
		})
		s.appendEvent(logger, runID, events.NewRowExpandedEvent(runID, expansion.Parent, expansion.Children))
		logger.Info("Expanded ambiguous BOM row",
			zap.String("name", expansion.Parent.Name),
			zap.Int("children", len(expansion.Children)))
	}
	for _, subName := range resolution.Unmatched {
		s.appendEvent(logger, runID, events.NewSubNameUnmatchedEvent(runID, subName))
		logger.Warn("No placement carries value", zap.String("value", subName))
	}

	if s.recorder != nil {
		s.recorder.AmbiguousRows.Add(float64(len(result.Expansions)))
		s.recorder.ExpandedEntries.Add(float64(result.ExpandedEntries()))
		s.recorder.UnmatchedSubNames.Add(float64(len(result.Unmatched)))
		s.recorder.ResolveDuration.Observe(resolveTime.Seconds())
	}

	if s.config.CanonicalizeValues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.canonicalize(logger, runID, result)
	}

	logger.Info("Reconciled BOM",
		zap.Int("input_entries", result.InputEntries),
		zap.Int("output_entries", len(result.Entries)),
		zap.Int("expanded_rows", len(result.Expansions)),
		zap.Int("unmatched", len(result.Unmatched)),
		zap.Int("decode_failures", len(result.DecodeFailures)),
		zap.Duration("resolve_time", resolveTime))

	return result, nil
}

// Validate cross-checks BOM entries against the placement data
func (s *ReconcileService) Validate(
	ctx context.Context,
	entries []entities.BOMEntry,
	placements []*entities.PlacementEntry,
) (*domain.ValidationResult, error) {
	index, err := s.buildIndex(placements)
	if err != nil {
		return nil, fmt.Errorf("failed to index placements: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.validator.Validate(entries, index), nil
}

func (s *ReconcileService) buildIndex(placements []*entities.PlacementEntry) (*memory.PlacementIndex, error) {
	var opts []memory.IndexOption
	if s.config.NormalizeValues {
		opts = append(opts, memory.WithValueNormalization(s.decode))
	}
	return memory.BuildPlacementIndex(placements, opts...)
}

// canonicalize decodes the names of resistor entries in one batch
func (s *ReconcileService) canonicalize(logger *zap.Logger, runID string, result *dto.ReconcileResult) {
	var positions []int
	var names []string
	for i, entry := range result.Entries {
		if entry.Kind() != entities.Resistor {
			continue
		}
		positions = append(positions, i)
		names = append(names, entry.Name)
	}

	outcomes, err := domain.DecodeAll(s.decode, names)
	for i, outcome := range outcomes {
		entry := &result.Entries[positions[i]]
		if !outcome.OK() {
			result.DecodeFailures = append(result.DecodeFailures, dto.DecodeFailure{
				Name:        entry.Name,
				Designators: entry.Designators,
				Reason:      outcome.Err.Error(),
			})
			s.appendEvent(logger, runID, events.NewValueDecodeFailedEvent(runID, entry.Name, outcome.Err))
			if s.recorder != nil {
				s.recorder.DecodeFailures.WithLabelValues(decodeFailureReason(outcome.Err)).Inc()
			}
			continue
		}

		value := outcome.Value
		entry.Value = &value
		s.appendEvent(logger, runID, events.NewValueDecodedEvent(runID, entry.Name, value))
		if s.recorder != nil {
			s.recorder.ValuesDecoded.WithLabelValues(entities.Resistor.String()).Inc()
		}
	}

	if err != nil {
		logger.Warn("Some values could not be decoded",
			zap.Int("failures", len(result.DecodeFailures)),
			zap.Error(err))
	}
}

func (s *ReconcileService) appendEvent(logger *zap.Logger, runID string, event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(runID, event); err != nil {
		logger.Warn("Event handler failed", zap.String("event", event.Type()), zap.Error(err))
	}
}

func decodeFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, domain.ErrUnrecognizedFormat):
		return "unrecognized"
	default:
		return "other"
	}
}
