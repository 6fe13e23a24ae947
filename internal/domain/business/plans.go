package business

import "github.com/BruksfildServices01/workforce-scheduler/internal/models"

type Plan struct {
	Name                 string  `json:"name"`
	MaxStaff             int     `json:"maxStaff"`
	MaxSchedulesPerMonth int     `json:"maxSchedulesPerMonth"`
	MonthlyPrice         float64 `json:"monthlyPrice"`
}

var plans = map[string]Plan{
	models.PlanFree:    {Name: models.PlanFree, MaxStaff: 5, MaxSchedulesPerMonth: 10},
	models.PlanBasic:   {Name: models.PlanBasic, MaxStaff: 20, MaxSchedulesPerMonth: 40, MonthlyPrice: 19.90},
	models.PlanPremium: {Name: models.PlanPremium, MaxStaff: 100, MaxSchedulesPerMonth: 200, MonthlyPrice: 49.90},
}

func LookupPlan(name string) (Plan, bool) {
	p, ok := plans[name]
	return p, ok
}

func (p Plan) Subscription() models.Subscription {
	return models.Subscription{
		Plan:                 p.Name,
		MaxStaff:             p.MaxStaff,
		MaxSchedulesPerMonth: p.MaxSchedulesPerMonth,
	}
}

// ApplyPlan switches the business to the named plan and its caps.
func ApplyPlan(b *models.Business, name string) error {
	p, ok := LookupPlan(name)
	if !ok {
		return ErrUnknownPlan
	}
	b.Subscription = p.Subscription()
	return nil
}
