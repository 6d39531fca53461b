package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/meinhoongagan/salon-booking/models"
	"gopkg.in/gomail.v2"
)

// Mailer sends HTML mail over SMTP. A Mailer without a host is disabled and
// every send is a no-op.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewMailer(host string, port int, user, pass string) *Mailer {
	if host == "" {
		return &Mailer{}
	}
	return &Mailer{
		from:   user,
		dialer: gomail.NewDialer(host, port, user, pass),
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

func (m *Mailer) SendEmail(to, subject, body string) error {
	if !m.Enabled() || to == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

var bookingCreatedTmpl = template.Must(template.New("booking_created").Parse(`
	<p>Hello {{.Professional}},</p>
	<p>A new appointment was booked with you.</p>
	<ul>
		<li><strong>Service:</strong> {{.Service}} ({{.Duration}} min)</li>
		<li><strong>Client:</strong> {{.Client}}</li>
		<li><strong>Phone:</strong> {{.Phone}}</li>
		<li><strong>Date:</strong> {{.Date}}</li>
		<li><strong>Time:</strong> {{.Time}}</li>
	</ul>
`))

var dailyAgendaTmpl = template.Must(template.New("daily_agenda").Parse(`
	<p>Hello {{.Professional}},</p>
	<p>Your agenda for {{.Date}}:</p>
	<ul>{{range .Rows}}
		<li><strong>{{.Time}}</strong> {{.Service}} - {{.Client}} ({{.Phone}})</li>{{end}}
	</ul>
`))

type agendaRow struct {
	Time, Service, Client, Phone string
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s mail: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func bookingCreatedBody(a models.Appointment, s models.Service, p models.Professional) (string, error) {
	return render(bookingCreatedTmpl, map[string]interface{}{
		"Professional": p.Name,
		"Service":      s.Name,
		"Duration":     s.DurationMinutes,
		"Client":       a.ClientName,
		"Phone":        FormatPhone(a.ClientPhone),
		"Date":         a.AppointmentDate,
		"Time":         a.AppointmentTime,
	})
}

func dailyAgendaBody(p models.Professional, date string, appointments []models.Appointment) (string, error) {
	rows := make([]agendaRow, 0, len(appointments))
	for _, a := range appointments {
		row := agendaRow{Time: a.AppointmentTime, Client: a.ClientName, Phone: FormatPhone(a.ClientPhone)}
		if a.Service != nil {
			row.Service = a.Service.Name
		}
		rows = append(rows, row)
	}
	return render(dailyAgendaTmpl, map[string]interface{}{
		"Professional": p.Name,
		"Date":         date,
		"Rows":         rows,
	})
}

// BookingCreated tells the professional about a new appointment.
func (m *Mailer) BookingCreated(_ context.Context, a models.Appointment, s models.Service, p models.Professional) error {
	if p.Email == nil {
		return nil
	}
	body, err := bookingCreatedBody(a, s, p)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New appointment: %s on %s at %s", s.Name, a.AppointmentDate, a.AppointmentTime)
	return m.SendEmail(*p.Email, subject, body)
}

// DailyAgenda mails a professional the list of the day's appointments.
func (m *Mailer) DailyAgenda(p models.Professional, date string, appointments []models.Appointment) error {
	if p.Email == nil || len(appointments) == 0 {
		return nil
	}
	body, err := dailyAgendaBody(p, date, appointments)
	if err != nil {
		return err
	}
	return m.SendEmail(*p.Email, "Your agenda for "+date, body)
}
