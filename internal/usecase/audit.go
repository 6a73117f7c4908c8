package usecase

import "context"

// SecurityAuditor records security relevant outcomes together with the client IP.
type SecurityAuditor interface {
	Warn(ctx context.Context, ip, msg string)
	Critical(ctx context.Context, ip, msg string)
}
