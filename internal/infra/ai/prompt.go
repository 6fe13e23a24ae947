package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// BuildPrompt renders the business, its constraints and the active staff as plain text.
func BuildPrompt(req schedule.GenerationRequest) string {
	var b strings.Builder
	biz := req.Business

	fmt.Fprintf(&b, "Business: %s\n", biz.Name)
	fmt.Fprintf(&b, "Timezone: %s\n", biz.Timezone)
	fmt.Fprintf(&b, "Week: %s to %s\n\n", req.WeekStart.Format("2006-01-02"), req.WeekEnd.Format("2006-01-02"))

	b.WriteString("Business hours:\n")
	biz.BusinessHours.Data().Each(func(name string, _ time.Weekday, h models.DayHours) {
		if h.IsOpen {
			fmt.Fprintf(&b, "%s: %s-%s\n", name, h.Start, h.End)
		} else {
			fmt.Fprintf(&b, "%s: Closed\n", name)
		}
	})

	b.WriteString("\nRoles:\n")
	for _, r := range biz.Roles {
		rate := r.HourlyRate
		if rate <= 0 {
			rate = staff.DefaultHourlyRate
		}
		fmt.Fprintf(&b, "%s, min: %d, max: %d, rate: $%.2f/hr\n", r.Name, r.MinStaffRequired, r.MaxStaffRequired, rate)
	}

	c := biz.Constraints
	b.WriteString("\nConstraints:\n")
	fmt.Fprintf(&b, "Max hours/day: %d\n", c.MaxHoursPerDay)
	fmt.Fprintf(&b, "Max hours/week: %d\n", c.MaxHoursPerWeek)
	fmt.Fprintf(&b, "Min break (minutes): %d\n", c.MinBreakTime)
	fmt.Fprintf(&b, "Overtime after (hours/day): %d\n", c.OvertimeThreshold)

	b.WriteString("\nStaff:\n")
	for _, s := range req.Staff {
		fmt.Fprintf(&b, "- %s [id: %s] (Roles: %s, rate: $%.2f/hr) availability:\n",
			s.Name, s.ID, strings.Join(s.Roles, ", "), s.HourlyRate)
		s.Availability.Data().Each(func(name string, _ time.Weekday, av models.DayAvailability) {
			if !av.Available {
				fmt.Fprintf(&b, "  %s: None\n", name)
				return
			}
			if len(av.TimeSlots) == 0 {
				fmt.Fprintf(&b, "  %s: all day\n", name)
				return
			}
			slots := make([]string, 0, len(av.TimeSlots))
			for _, t := range av.TimeSlots {
				slots = append(slots, t.Start+"-"+t.End)
			}
			fmt.Fprintf(&b, "  %s: %s\n", name, strings.Join(slots, ", "))
		})
		for _, off := range s.TimeOffRequests {
			if off.Status == models.TimeOffApproved {
				fmt.Fprintf(&b, "  time off: %s to %s\n", off.StartDate.Format("2006-01-02"), off.EndDate.Format("2006-01-02"))
			}
		}
	}

	if req.Requirements != "" {
		fmt.Fprintf(&b, "\nAdditional requirements:\n%s\n", req.Requirements)
	}

	b.WriteString("\nPlease generate a JSON array of shifts respecting constraints, and provide reasoning and recommendations.")
	return b.String()
}
