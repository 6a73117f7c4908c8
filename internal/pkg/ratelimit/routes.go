package ratelimit

// Route quotas keyed by client IP.
var (
	GlobalQuotas = []Quota{PerDay(200), PerHour(50)}
	LoginQuotas  = []Quota{PerMinute(5)}
	ManageQuotas = []Quota{PerMinute(10)}
)

// RouteLimits holds the request limiters of the HTTP surface.
type RouteLimits struct {
	Global *Limiter
	Login  *Limiter
	Manage *Limiter
}

// NewRouteLimits builds limiters with the service quotas.
func NewRouteLimits() *RouteLimits {
	return &RouteLimits{
		Global: NewLimiter(GlobalQuotas...),
		Login:  NewLimiter(LoginQuotas...),
		Manage: NewLimiter(ManageQuotas...),
	}
}

// Prune drops idle keys from every limiter.
func (r *RouteLimits) Prune() {
	for _, l := range []*Limiter{r.Global, r.Login, r.Manage} {
		if l != nil {
			l.Prune()
		}
	}
}
