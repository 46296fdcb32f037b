package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simpleapi", Name: "signups_total", Help: "Number of sign-up attempts by result."},
		[]string{"result"},
	)
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simpleapi", Name: "logins_total", Help: "Number of login attempts by result."},
		[]string{"result"},
	)
	TokensIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simpleapi", Name: "tokens_issued_total", Help: "Number of issued tokens by kind."},
		[]string{"kind"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simpleapi", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simpleapi", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SignupsTotal)
	reg.MustRegister(LoginsTotal)
	reg.MustRegister(TokensIssued)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
