package composer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	"github.com/spectrumpath/aba-scheduler/internal/catalog"
	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/recurrence"
)

// ======================================================
// COMPOSER
// ======================================================

// Composer owns the in-flight appointment drafts and the step machine over
// them. Drafts are ephemeral: they live until committed or discarded and
// never touch the session store.
type Composer struct {
	repo  domain.Repository
	clk   clock.Clock
	cfg   *config.Config
	audit *audit.Dispatcher

	mu     sync.Mutex
	drafts map[string]Draft
}

func New(repo domain.Repository, clk clock.Clock, cfg *config.Config, dispatcher *audit.Dispatcher) *Composer {
	return &Composer{
		repo:   repo,
		clk:    clk,
		cfg:    cfg,
		audit:  dispatcher,
		drafts: make(map[string]Draft),
	}
}

// View is a draft plus everything the client renders around it: per-step
// status, and the recurrence projection once the schedule step is filled.
type View struct {
	Draft      Draft                  `json:"draft"`
	Steps      []StepStatus           `json:"steps"`
	Projection *recurrence.Projection `json:"projection,omitempty"`

	RemainingMinutes    *int `json:"remaining_minutes,omitempty"`
	RemainingAfterBlock *int `json:"remaining_after_block,omitempty"`
}

// ======================================================
// Lifecycle
// ======================================================

func (cm *Composer) CreateDraft(ctx context.Context) (View, error) {
	now := cm.clk.Now()
	d := Draft{
		ID:        uuid.NewString(),
		Step:      StepClient,
		CreatedAt: now,
		UpdatedAt: now,
	}

	cm.mu.Lock()
	cm.drafts[d.ID] = d
	cm.mu.Unlock()

	return cm.view(ctx, d)
}

func (cm *Composer) Get(ctx context.Context, id string) (View, error) {
	d, err := cm.draft(id)
	if err != nil {
		return View{}, err
	}
	return cm.view(ctx, d)
}

func (cm *Composer) Discard(ctx context.Context, id string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, ok := cm.drafts[id]; !ok {
		return httperr.ErrBusiness("draft_not_found")
	}
	delete(cm.drafts, id)
	return nil
}

// ======================================================
// Patch
// ======================================================

// Apply merges a partial update into the draft. Selections cascade forward
// only: changing the client re-seeds the location default, changing the
// intent clears a mismatched service, and picking a service seeds a
// duration. Nothing a later step already holds is cleared by moving back.
func (cm *Composer) Apply(ctx context.Context, id string, p Patch) (View, error) {
	d, err := cm.draft(id)
	if err != nil {
		return View{}, err
	}

	if err := cm.applyPatch(ctx, &d, p); err != nil {
		return View{}, err
	}

	d.UpdatedAt = cm.clk.Now()
	cm.put(d)
	return cm.view(ctx, d)
}

func (cm *Composer) applyPatch(ctx context.Context, d *Draft, p Patch) error {
	// 1. Client: must exist; a change seeds the location step default from
	// the client's recorded location text.
	if p.ClientID != nil && *p.ClientID != d.ClientID {
		client, err := cm.repo.GetClient(ctx, *p.ClientID)
		if err != nil {
			return err
		}
		d.ClientID = client.ID
		d.Modality = catalog.InferModality(client.Location)
	}

	// 2. Intent: clearing or switching it drops a service that no longer
	// belongs to the chosen category.
	if p.Intent != nil && *p.Intent != d.Intent {
		if *p.Intent != "" && !catalog.ValidIntent(*p.Intent) {
			return httperr.ErrBusiness("invalid_intent")
		}
		d.Intent = *p.Intent
		if d.ServiceCode != "" {
			if svc, ok := catalog.ServiceByCode(d.ServiceCode); !ok || svc.Intent != d.Intent {
				d.ServiceCode = ""
			}
		}
	}

	// 3. Service: seeds the duration from the template default, capped at
	// the client's remaining authorized minutes when that is lower.
	if p.ServiceCode != nil && *p.ServiceCode != d.ServiceCode {
		svc, ok := catalog.ServiceByCode(*p.ServiceCode)
		if !ok {
			return httperr.ErrBusiness("invalid_service_code")
		}
		d.ServiceCode = svc.Code
		d.Intent = svc.Intent
		d.DurationMin = cm.seedDuration(ctx, d.ClientID, svc)
	}

	// 4. Schedule fields.
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.StartTime != nil {
		d.StartTime = *p.StartTime
	}
	if p.DurationMin != nil {
		if !catalog.ValidDuration(*p.DurationMin) {
			return httperr.ErrBusiness("invalid_duration")
		}
		d.DurationMin = *p.DurationMin
	}

	// 5. Staff: must exist on the roster.
	if p.StaffID != nil && *p.StaffID != d.StaffID {
		if *p.StaffID != "" {
			if _, err := cm.repo.GetStaff(ctx, *p.StaffID); err != nil {
				return err
			}
		}
		d.StaffID = *p.StaffID
	}

	// 6. Location: leaving Center drops the room selection.
	if p.Modality != nil && *p.Modality != d.Modality {
		if _, ok := catalog.LocationByModality(*p.Modality); !ok {
			return httperr.ErrBusiness("invalid_modality")
		}
		d.Modality = *p.Modality
		if d.Modality != models.ModalityCenter {
			d.RoomID = ""
		}
	}
	if p.RoomID != nil && *p.RoomID != d.RoomID {
		if *p.RoomID != "" {
			if _, err := cm.repo.GetRoom(ctx, *p.RoomID); err != nil {
				return err
			}
		}
		d.RoomID = *p.RoomID
	}

	// 7. Recurrence.
	if p.RecurrenceEnabled != nil {
		d.RecurrenceEnabled = *p.RecurrenceEnabled
	}
	if p.RecurrenceWeekdays != nil {
		days := make([]time.Weekday, 0, len(*p.RecurrenceWeekdays))
		for _, name := range *p.RecurrenceWeekdays {
			day, ok := ParseWeekday(name)
			if !ok {
				return httperr.ErrBusinessf("invalid_weekday", name)
			}
			days = append(days, day)
		}
		d.RecurrenceWeekdays = days
	}
	if p.RecurrenceOccurrences != nil {
		if *p.RecurrenceOccurrences < 0 {
			return httperr.ErrBusiness("invalid_occurrences")
		}
		d.RecurrenceOccurrences = *p.RecurrenceOccurrences
	}

	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return nil
}

// seedDuration picks the template default, lowered to the largest offered
// duration that still fits the remaining balance when the default does not.
func (cm *Composer) seedDuration(ctx context.Context, clientID string, svc models.ServiceTemplate) int {
	seed := svc.DefaultDurationMin

	if clientID == "" || !svc.Billable {
		return seed
	}
	auth, err := cm.repo.GetAuthorization(ctx, clientID)
	if err != nil || auth == nil || auth.RemainingMinutes >= seed {
		return seed
	}

	best := 0
	for _, option := range catalog.DurationOptions {
		if option <= auth.RemainingMinutes && option > best {
			best = option
		}
	}
	if best == 0 {
		// nothing fits; keep the default and let the schedule step block
		return seed
	}
	return best
}

// ======================================================
// Navigation
// ======================================================

// Advance moves to the next step once the current one is complete. The gate
// re-evaluates live: fixing the blocking condition re-enables Next with no
// further action.
func (cm *Composer) Advance(ctx context.Context, id string) (View, error) {
	d, err := cm.draft(id)
	if err != nil {
		return View{}, err
	}
	if d.Step >= lastStep {
		return View{}, httperr.ErrBusiness("already_at_review")
	}

	e, err := cm.buildEnv(ctx, d)
	if err != nil {
		return View{}, err
	}

	statuses := evaluate(d, e)
	current := statuses[d.Step]
	if !current.Complete {
		msg := current.Label + " step is incomplete."
		if len(current.Blocking) > 0 {
			msg = current.Blocking[0].Message
		}
		return View{}, httperr.ErrBusinessf("step_incomplete", msg)
	}

	d.Step++
	d.UpdatedAt = cm.clk.Now()
	cm.put(d)
	return cm.viewWith(d, e, statuses)
}

// Back always succeeds and never clears downstream selections.
func (cm *Composer) Back(ctx context.Context, id string) (View, error) {
	d, err := cm.draft(id)
	if err != nil {
		return View{}, err
	}
	if d.Step > StepClient {
		d.Step--
		d.UpdatedAt = cm.clk.Now()
		cm.put(d)
	}
	return cm.view(ctx, d)
}

// ======================================================
// Internals
// ======================================================

func (cm *Composer) draft(id string) (Draft, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	d, ok := cm.drafts[id]
	if !ok {
		return Draft{}, httperr.ErrBusiness("draft_not_found")
	}
	return d, nil
}

func (cm *Composer) put(d Draft) {
	cm.mu.Lock()
	cm.drafts[d.ID] = d
	cm.mu.Unlock()
}

// buildEnv resolves everything the step predicates need. Missing references
// resolve to nil rather than erroring: an unset selection is an incomplete
// step, not a failed request.
func (cm *Composer) buildEnv(ctx context.Context, d Draft) (env, error) {
	e := env{
		hours:      domain.ClinicHours{Open: cm.cfg.ClinicOpen, Close: cm.cfg.ClinicClose},
		closedDays: cm.cfg.ClosedWeekdays,
		loc:        cm.cfg.Location(),
	}

	if d.ClientID != "" {
		client, err := cm.repo.GetClient(ctx, d.ClientID)
		if err != nil {
			return env{}, err
		}
		e.client = client

		auth, err := cm.repo.GetAuthorization(ctx, d.ClientID)
		if err != nil {
			return env{}, err
		}
		e.auth = auth
	}

	if d.ServiceCode != "" {
		if svc, ok := catalog.ServiceByCode(d.ServiceCode); ok {
			e.service = &svc
		}
	}

	if d.StaffID != "" {
		staff, err := cm.repo.GetStaff(ctx, d.StaffID)
		if err != nil {
			return env{}, err
		}
		e.staff = staff
	}

	rooms, err := cm.repo.ListRooms(ctx)
	if err != nil {
		return env{}, err
	}
	for _, room := range rooms {
		if room.Type != models.RoomTelehealth && room.Type != models.RoomAdmin {
			e.centerRooms++
		}
	}

	return e, nil
}

func (cm *Composer) view(ctx context.Context, d Draft) (View, error) {
	e, err := cm.buildEnv(ctx, d)
	if err != nil {
		return View{}, err
	}
	return cm.viewWith(d, e, evaluate(d, e))
}

func (cm *Composer) viewWith(d Draft, e env, statuses []StepStatus) (View, error) {
	v := View{Draft: d, Steps: statuses}

	if e.auth != nil {
		remaining := e.auth.RemainingMinutes
		v.RemainingMinutes = &remaining
	}

	if d.DurationMin > 0 {
		p := projectionFor(d, e)
		v.Projection = &p
		if e.auth != nil && e.service != nil && e.service.Billable {
			after := e.auth.RemainingMinutes - p.ProjectedMinutes
			if after < 0 {
				after = 0
			}
			v.RemainingAfterBlock = &after
		}
	}
	return v, nil
}
