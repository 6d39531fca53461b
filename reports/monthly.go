package reports

import (
	"errors"
	"sort"
	"time"

	"github.com/meinhoongagan/salon-booking/models"
)

const (
	MonthLayout         = "2006-01"
	UnknownProfessional = "Unknown professional"
	rankSize            = 5
)

var ErrInvalidMonth = errors.New("month must be YYYY-MM")

// ServiceUsage is how often a service was booked in the month and the value
// of its completed appointments.
type ServiceUsage struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type Monthly struct {
	Month       string         `json:"month"`
	Cancelled   int            `json:"cancelled"`
	Completed   int            `json:"completed"`
	TotalValue  float64        `json:"total_value"`
	MostBooked  []ServiceUsage `json:"most_booked"`
	LeastBooked []ServiceUsage `json:"least_booked"`
}

type ProfessionalUsage struct {
	ProfessionalName string  `json:"professional_name"`
	Count            int     `json:"count"`
	Value            float64 `json:"value"`
}

type ServiceDetail struct {
	Month         string              `json:"month"`
	ServiceName   string              `json:"service_name"`
	Professionals []ProfessionalUsage `json:"professionals"`
}

// MonthRange returns the first and last calendar dates of month ("YYYY-MM").
func MonthRange(month string) (string, string, error) {
	start, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", "", ErrInvalidMonth
	}
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

// MonthlyReport summarizes one month of appointments. Appointments must have
// their Service preloaded to count toward usage and value.
func MonthlyReport(month string, appointments []models.Appointment) Monthly {
	r := Monthly{Month: month, MostBooked: []ServiceUsage{}, LeastBooked: []ServiceUsage{}}

	usage := map[string]*ServiceUsage{}
	for _, a := range appointments {
		switch a.Status {
		case models.StatusCancelled:
			r.Cancelled++
		case models.StatusCompleted:
			r.Completed++
			if a.Service != nil {
				r.TotalValue += a.Service.Price
			}
		}

		if a.Service == nil || a.Service.Name == "" {
			continue
		}
		u, ok := usage[a.Service.Name]
		if !ok {
			u = &ServiceUsage{Name: a.Service.Name}
			usage[a.Service.Name] = u
		}
		u.Count++
		if a.Status == models.StatusCompleted {
			u.Value += a.Service.Price
		}
	}

	ranked := make([]ServiceUsage, 0, len(usage))
	for _, u := range usage {
		ranked = append(ranked, *u)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	r.MostBooked = append(r.MostBooked, ranked[:min(rankSize, len(ranked))]...)
	for i := len(ranked) - 1; i >= 0 && len(r.LeastBooked) < rankSize; i-- {
		r.LeastBooked = append(r.LeastBooked, ranked[i])
	}
	return r
}

// ServiceBreakdown groups the month's appointments for serviceName by
// professional, most booked first.
func ServiceBreakdown(month, serviceName string, appointments []models.Appointment) ServiceDetail {
	byName := map[string]*ProfessionalUsage{}
	for _, a := range appointments {
		if a.Service == nil || a.Service.Name != serviceName {
			continue
		}
		name := UnknownProfessional
		if a.Professional != nil && a.Professional.Name != "" {
			name = a.Professional.Name
		}
		u, ok := byName[name]
		if !ok {
			u = &ProfessionalUsage{ProfessionalName: name}
			byName[name] = u
		}
		u.Count++
		if a.Status == models.StatusCompleted {
			u.Value += a.Service.Price
		}
	}

	out := make([]ProfessionalUsage, 0, len(byName))
	for _, u := range byName {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProfessionalName < out[j].ProfessionalName
	})
	return ServiceDetail{Month: month, ServiceName: serviceName, Professionals: out}
}

// AvailableMonths returns the distinct months of dates ("YYYY-MM-DD"), newest
// first.
func AvailableMonths(dates []string) []string {
	seen := map[string]bool{}
	months := []string{}
	for _, d := range dates {
		if len(d) < len(MonthLayout) {
			continue
		}
		m := d[:len(MonthLayout)]
		if _, err := time.Parse(MonthLayout, m); err != nil || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
