package timeline

import (
	"context"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
	grid "github.com/spectrumpath/aba-scheduler/internal/scheduling/timeline"
)

// Usecase assembles the dashboard's lane view: staff lanes, per-session
// geometry, and the current-time marker.
type Usecase struct {
	repo domain.Repository
	clk  clock.Clock
	cfg  *config.Config
}

func New(repo domain.Repository, clk clock.Clock, cfg *config.Config) *Usecase {
	return &Usecase{repo: repo, clk: clk, cfg: cfg}
}

// Lane is one staff row with its capacity snapshot.
type Lane struct {
	StaffID    string                 `json:"staff_id"`
	Name       string                 `json:"name"`
	Credential string                 `json:"credential"`
	LoadRatio  float64                `json:"load_ratio"`
	Band       models.UtilizationBand `json:"band"`
}

// View is everything the grid renders for one window.
type View struct {
	WindowStart time.Time `json:"window_start"`
	HorizonDays int       `json:"horizon_days"`

	Lanes      []Lane           `json:"lanes"`
	Geometries []grid.Geometry  `json:"geometries"`
	Sessions   []models.Session `json:"sessions"`

	NowFraction *float64 `json:"now_fraction,omitempty"`
}

// Build computes the view for the window starting on startDate
// ("2006-01-02"; empty means the Monday of the current week) spanning days
// columns. staffIDs filters the lanes; empty keeps the whole roster.
func (u *Usecase) Build(ctx context.Context, startDate string, days int, staffIDs []string) (View, error) {
	loc := u.cfg.Location()

	var start time.Time
	if startDate == "" {
		start = mondayOf(u.clk.Now().In(loc))
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", startDate, loc)
		if err != nil {
			return View{}, httperr.ErrBusiness("invalid_date")
		}
		start = parsed
	}
	if days <= 0 {
		days = 7
	}

	roster, err := u.repo.ListStaff(ctx)
	if err != nil {
		return View{}, err
	}

	keep := func(string) bool { return true }
	if len(staffIDs) > 0 {
		wanted := make(map[string]bool, len(staffIDs))
		for _, id := range staffIDs {
			wanted[id] = true
		}
		keep = func(id string) bool { return wanted[id] }
	}

	lanes := make([]Lane, 0, len(roster))
	laneIDs := make([]string, 0, len(roster))
	for _, staff := range roster {
		if !keep(staff.StaffID) {
			continue
		}
		lanes = append(lanes, Lane{
			StaffID:    staff.StaffID,
			Name:       staff.Name,
			Credential: staff.Credential,
			LoadRatio:  staff.UtilizationRatio(),
			Band:       staff.Band(),
		})
		laneIDs = append(laneIDs, staff.StaffID)
	}

	window := grid.Window{
		Start:        start,
		HorizonDays:  days,
		DayStartHour: u.cfg.TimelineDayStartHour,
		DayMinutes:   u.cfg.TimelineDayMinutes,
	}

	sessions, err := u.repo.ListSessionsForRange(ctx, start, start.AddDate(0, 0, days))
	if err != nil {
		return View{}, err
	}

	view := View{
		WindowStart: start,
		HorizonDays: days,
		Lanes:       lanes,
		Geometries:  grid.Layout(sessions, window, laneIDs),
		Sessions:    sessions,
	}

	if fraction, visible := grid.NowFraction(u.clk.Now().In(loc), window); visible {
		view.NowFraction = &fraction
	}
	return view, nil
}

func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}
