package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	"github.com/spectrumpath/aba-scheduler/internal/catalog"
	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// Usecase covers the direct session operations outside the composer flow:
// quick-create from a lane slot, drag/drop repositioning, and reads.
type Usecase struct {
	repo  domain.Repository
	clk   clock.Clock
	cfg   *config.Config
	audit *audit.Dispatcher
}

func New(repo domain.Repository, clk clock.Clock, cfg *config.Config, dispatcher *audit.Dispatcher) *Usecase {
	return &Usecase{repo: repo, clk: clk, cfg: cfg, audit: dispatcher}
}

// QuickCreateInput books one session directly from a lane click. Duration
// defaults to the service template's when omitted.
type QuickCreateInput struct {
	ClientID    string `json:"client_id"`
	StaffID     string `json:"staff_id"`
	ServiceCode string `json:"service_code"`

	Date        string `json:"date"`       // "2006-01-02"
	StartTime   string `json:"start_time"` // "15:04"
	DurationMin int    `json:"duration_min,omitempty"`

	Modality models.Modality `json:"modality"`
	RoomID   string          `json:"room_id,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// QuickCreate runs the same validation gauntlet as the composer's schedule
// step, then books a single session.
func (u *Usecase) QuickCreate(ctx context.Context, in QuickCreateInput) (*models.Session, error) {
	// 1. References must resolve.
	client, err := u.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	staff, err := u.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}
	svc, ok := catalog.ServiceByCode(in.ServiceCode)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_service_code")
	}
	if !svc.AllowsCredential(staff.Credential) {
		return nil, httperr.ErrBusinessf("credential_mismatch",
			staff.Credential+" cannot deliver "+svc.Code+".")
	}
	if in.RoomID != "" {
		if _, err := u.repo.GetRoom(ctx, in.RoomID); err != nil {
			return nil, err
		}
	}

	// 2. Window.
	duration := in.DurationMin
	if duration == 0 {
		duration = svc.DefaultDurationMin
	}
	if !catalog.ValidDuration(duration) {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	loc := u.cfg.Location()
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.StartTime, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	// 3. Clinic calendar.
	if u.cfg.IsClosedDay(start.Weekday()) {
		return nil, httperr.ErrBusinessf("closed_day",
			"The clinic does not book sessions on "+start.Weekday().String()+".")
	}
	hours := domain.ClinicHours{Open: u.cfg.ClinicOpen, Close: u.cfg.ClinicClose}
	if !domain.WithinClinicHours(hours, start, end) {
		return nil, httperr.ErrBusiness("outside_clinic_hours")
	}

	// 4. Authorization: a billable single session longer than the balance
	// is a hard stop, matching the composer.
	auth, err := u.repo.GetAuthorization(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if svc.Billable && auth != nil && duration > auth.RemainingMinutes {
		return nil, httperr.ErrBusiness("exceeds_remaining_minutes")
	}

	modality := in.Modality
	if modality == "" {
		modality = catalog.InferModality(client.Location)
	}
	evv := false
	if card, found := catalog.LocationByModality(modality); found {
		evv = card.EVVRequired
	}

	sess := &models.Session{
		ID:          uuid.NewString(),
		ClientID:    in.ClientID,
		StaffID:     in.StaffID,
		RoomID:      in.RoomID,
		ServiceCode: svc.Code,
		Start:       start,
		End:         end,
		Modality:    modality,
		Status:      string(domain.InitialStatus()),
		EVVRequired: evv,
		Notes:       in.Notes,
	}

	// 5. Conflict-checked append under the store lock.
	if err := u.repo.AppendSessions(ctx, []*models.Session{sess}); err != nil {
		return nil, err
	}

	if svc.Billable && auth != nil {
		if err := u.repo.DebitAuthorization(ctx, in.ClientID, duration); err != nil {
			return nil, err
		}
	}

	if u.audit != nil {
		u.audit.Dispatch(audit.Event{
			Action:   "session.quick_create",
			Entity:   "session",
			EntityID: sess.ID,
			Metadata: map[string]any{
				"client_id": sess.ClientID,
				"staff_id":  sess.StaffID,
				"service":   sess.ServiceCode,
			},
		})
	}

	return sess, nil
}
