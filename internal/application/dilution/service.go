package dilution

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labbench/backend/internal/domain/apparatus"
	"github.com/labbench/backend/internal/domain/chemistry"
	"github.com/labbench/backend/internal/domain/notebook"
	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/service"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// SubstanceCatalog remembers molar masses of substances used before
type SubstanceCatalog interface {
	Get(ctx context.Context, name string) (valueobject.Quantity, bool, error)
	Set(ctx context.Context, name string, molarMass valueobject.Quantity) error
}

// Service runs standard solution preparations and keeps them in the notebook
type Service struct {
	entries    notebook.EntryRepository
	catalog    SubstanceCatalog
	publisher  shared.EventPublisher
	tolerances apparatus.Tolerances
	units      *service.UnitConversionService
	validate   *validator.Validate
	logger     *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithPublisher publishes apparatus and notebook events after each run
func WithPublisher(p shared.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithTolerances overrides the glassware precision
func WithTolerances(t apparatus.Tolerances) Option {
	return func(s *Service) {
		s.tolerances = t
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a new dilution Service
func NewService(entries notebook.EntryRepository, catalog SubstanceCatalog, opts ...Option) *Service {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonFieldName)

	s := &Service{
		entries:    entries,
		catalog:    catalog,
		tolerances: apparatus.DefaultTolerances(),
		units:      service.NewUnitConversionService(),
		validate:   v,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run carries out a preparation and records it as a notebook entry
func (s *Service) Run(ctx context.Context, req ProcedureRequest) (*EntryResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	log := s.logger.With(zap.String("title", req.Title), zap.String("solute", req.Solute.Name))

	molarMass, err := s.resolveMolarMass(ctx, req.Solute)
	if err != nil {
		return nil, err
	}
	mass, err := req.Mass.quantity(valueobject.Grams)
	if err != nil {
		return nil, err
	}
	substance, err := chemistry.NewSubstance(req.Solute.Name, molarMass)
	if err != nil {
		return nil, err
	}
	solid, err := chemistry.NewSolid(substance, mass)
	if err != nil {
		return nil, err
	}
	entry, err := notebook.NewEntry(req.Title, substance.Name, molarMass, mass)
	if err != nil {
		return nil, err
	}

	run := &procedure{tolerances: s.tolerances, entry: entry, solute: substance.Name, log: log}
	if err := run.execute(req, solid); err != nil {
		log.Warn("procedure failed", zap.Error(err))
		return nil, err
	}
	if err := entry.Complete(); err != nil {
		return nil, err
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save notebook entry: %w", err)
	}
	if err := s.catalog.Set(ctx, substance.Name, molarMass); err != nil {
		log.Warn("failed to register substance", zap.Error(err))
	}

	s.publish(ctx, run.events(entry))

	log.Info("procedure recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.String("final_concentration", entry.FinalConcentration.GoString()),
	)

	resp := ToEntryResponse(entry)
	return &resp, nil
}

// Get returns a notebook entry by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(entry)
	return &resp, nil
}

// List returns notebook entries, newest first
func (s *Service) List(ctx context.Context, req ListEntriesRequest) (*shared.Paginated[EntryListResponse], error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	filter := shared.DefaultFilter()
	filter.Search = req.Search
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	entries, err := s.entries.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.entries.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToEntryListResponses(entries), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Molarity computes mass / molar mass / volume in mol/L
func (s *Service) Molarity(req MolarityRequest) (*QuantityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	mass, err := req.Mass.quantity(valueobject.Grams)
	if err != nil {
		return nil, err
	}
	molarMass, err := req.MolarMass.quantity(valueobject.MolarMass)
	if err != nil {
		return nil, err
	}
	volume, err := req.Volume.quantity(valueobject.Milliliters)
	if err != nil {
		return nil, err
	}

	n, err := mass.Div(molarMass)
	if err != nil {
		return nil, err
	}
	c, err := n.Div(volume)
	if err != nil {
		return nil, err
	}
	molar, err := c.ToMolar()
	if err != nil {
		return nil, err
	}
	resp := ToQuantityResponse(molar)
	return &resp, nil
}

// Convert re-expresses a reading in another bench unit
func (s *Service) Convert(req ConvertRequest) (*ConversionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	result, err := s.units.ConvertBetweenUnits(req.Value.Value, req.Value.Digits, req.From, req.To)
	if err != nil {
		return nil, err
	}
	return &ConversionResponse{
		From:      result.SourceUnitCode,
		To:        result.TargetUnitCode,
		Source:    result.Source.String(),
		Target:    result.Target.String(),
		Value:     result.Target.Magnitude().Round().Value(),
		SigDigits: result.Target.SigDigits(),
		Factor:    result.Factor.String(),
	}, nil
}

// Units lists the units Convert accepts
func (s *Service) Units() []UnitResponse {
	units := s.units.Units()
	result := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		result = append(result, UnitResponse{
			Code:      u.Code,
			Name:      u.Name,
			Dimension: u.Unit.Dimension().String(),
			Unit:      u.Unit.String(),
		})
	}
	return result
}

func (s *Service) resolveMolarMass(ctx context.Context, solute SoluteRequest) (valueobject.Quantity, error) {
	if solute.MolarMass != nil {
		return solute.MolarMass.quantity(valueobject.MolarMass)
	}
	q, ok, err := s.catalog.Get(ctx, solute.Name)
	if err != nil {
		return valueobject.Quantity{}, fmt.Errorf("failed to look up %s: %w", solute.Name, err)
	}
	if !ok {
		return valueobject.Quantity{}, fmt.Errorf("%w: no molar mass known for %s", shared.ErrNotFound, solute.Name)
	}
	return q, nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish events", zap.Error(err))
	}
}

// procedure holds the glassware of one run
type procedure struct {
	tolerances apparatus.Tolerances
	entry      *notebook.Entry
	solute     string
	log        *zap.Logger
	used       []apparatus.Apparatus
}

func (p *procedure) execute(req ProcedureRequest, solid chemistry.Solid) error {
	beaker, err := p.tolerances.NewBeaker(req.Beaker.Capacity)
	if err != nil {
		return err
	}
	p.used = append(p.used, beaker)

	if err := beaker.AddSolid(solid); err != nil {
		return err
	}
	p.step("dissolved %s of %s in a %g mL beaker", solid.Mass, p.solute, req.Beaker.Capacity)

	mark, err := req.Beaker.FillTo.quantity(valueobject.Milliliters)
	if err != nil {
		return err
	}
	if err := beaker.FillTo(mark); err != nil {
		return err
	}
	p.step("filled beaker to %s", mark)

	flask, err := p.tolerances.NewVolumetricFlask(req.Flask)
	if err != nil {
		return err
	}
	p.used = append(p.used, flask)
	if err := beaker.PourInto(flask); err != nil {
		return err
	}
	if err := flask.FillUp(); err != nil {
		return err
	}
	p.step("transferred to a %s volumetric flask and filled to the mark", flask.Capacity())
	if err := p.record(fmt.Sprintf("flask 1 (%g mL)", req.Flask), flask); err != nil {
		return err
	}

	for i, stage := range req.Stages {
		pipette, err := p.tolerances.NewPipette(stage.Pipette)
		if err != nil {
			return err
		}
		next, err := p.tolerances.NewVolumetricFlask(stage.Flask)
		if err != nil {
			return err
		}
		p.used = append(p.used, pipette, next)

		if err := flask.Draw(pipette); err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}
		if err := pipette.Deliver(next); err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}
		if err := next.FillUp(); err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}
		p.step("pipetted %s into a %s volumetric flask and filled to the mark", pipette.Capacity(), next.Capacity())
		if err := p.record(fmt.Sprintf("flask %d (%g mL)", i+2, stage.Flask), next); err != nil {
			return err
		}
		flask = next
	}
	return nil
}

func (p *procedure) record(label string, flask *apparatus.VolumetricFlask) error {
	c, err := flask.Concentration(p.solute)
	if err != nil {
		return err
	}
	molar, err := c.ToMolar()
	if err != nil {
		return err
	}
	if err := p.entry.RecordStage(label, flask.Volume(), molar); err != nil {
		return err
	}
	p.log.Debug("stage recorded", zap.String("stage", label), zap.String("concentration", molar.GoString()))
	return nil
}

func (p *procedure) step(format string, args ...any) {
	p.entry.LogStep(format, args...)
	p.log.Debug("step", zap.String("step", p.entry.Steps[len(p.entry.Steps)-1]))
}

func (p *procedure) events(entry *notebook.Entry) []shared.DomainEvent {
	var events []shared.DomainEvent
	for _, a := range p.used {
		events = append(events, a.GetDomainEvents()...)
		a.ClearDomainEvents()
	}
	events = append(events, entry.GetDomainEvents()...)
	entry.ClearDomainEvents()
	return events
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// IsValidationError reports whether err came from request validation
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}
