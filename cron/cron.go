package cron

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/repository"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

type autoCompleter interface {
	AutoComplete(ctx context.Context) (int64, error)
	Today() string
}

type professionalLister interface {
	ListProfessionals(ctx context.Context, activeOnly bool) ([]models.Professional, error)
}

type agendaLister interface {
	List(ctx context.Context, f repository.AppointmentFilter) ([]models.Appointment, error)
}

type agendaMailer interface {
	Enabled() bool
	DailyAgenda(p models.Professional, date string, appointments []models.Appointment) error
}

// Jobs are the background tasks run by the scheduler.
type Jobs struct {
	Bookings      autoCompleter
	Professionals professionalLister
	Appointments  agendaLister
	Mailer        agendaMailer

	// Location is the salon time zone the schedules are read in.
	Location *time.Location
}

// StartCronJobs registers the auto-complete sweep and the daily agenda mail
// and starts the scheduler. An empty spec disables that job.
func StartCronJobs(j *Jobs, autoCompleteSpec, agendaSpec string) (*cron.Cron, error) {
	loc := j.Location
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	if autoCompleteSpec != "" {
		if _, err := c.AddFunc(autoCompleteSpec, j.runAutoComplete); err != nil {
			return nil, err
		}
	}
	if agendaSpec != "" && j.Mailer != nil && j.Mailer.Enabled() {
		if _, err := c.AddFunc(agendaSpec, j.runAgenda); err != nil {
			return nil, err
		}
	}

	c.Start()
	log.Infow("cron scheduler started", "auto_complete", autoCompleteSpec, "agenda", agendaSpec, "location", loc.String())
	return c, nil
}

func (j *Jobs) runAutoComplete() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.Bookings.AutoComplete(ctx)
	if err != nil {
		log.Errorw("auto-complete sweep failed", "error", err)
		return
	}
	if n > 0 {
		log.Infow("auto-completed past appointments", "count", n)
	}
}

func (j *Jobs) runAgenda() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := j.SendDailyAgendas(ctx)
	if err != nil {
		log.Errorw("daily agenda failed", "error", err)
		return
	}
	log.Infow("daily agenda sent", "professionals", sent)
}

// SendDailyAgendas mails each active professional with an email address the
// scheduled appointments for today. It returns how many mails were sent.
func (j *Jobs) SendDailyAgendas(ctx context.Context) (int, error) {
	today := j.Bookings.Today()
	profs, err := j.Professionals.ListProfessionals(ctx, true)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, p := range profs {
		if p.Email == nil || *p.Email == "" {
			continue
		}
		list, err := j.Appointments.List(ctx, repository.AppointmentFilter{
			ProfessionalID: p.ID,
			Status:         models.StatusScheduled,
			From:           today,
			To:             today,
		})
		if err != nil {
			log.Errorw("failed to load agenda", "professional_id", p.ID, "error", err)
			continue
		}
		if len(list) == 0 {
			continue
		}
		if err := j.Mailer.DailyAgenda(p, today, list); err != nil {
			log.Errorw("failed to send agenda", "professional_id", p.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
