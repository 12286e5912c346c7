package sources

// Config carries the adapter settings needed to build the default registry.
type Config struct {
	SerpAPIKey        string
	GreenhouseBoards  []string
	LeverBoards       []string
	RequestsPerSecond float64
	RequestBurst      int
}

// NewDefaultRegistry wires every supported source adapter behind a shared
// per-host rate limiter.
func NewDefaultRegistry(cfg Config) Registry {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.RequestBurst
	if burst <= 0 {
		burst = 1
	}
	limiter := NewHostLimiter(rps, burst)

	r := Registry{}
	r.Register(NewSerpAPIAdapter(cfg.SerpAPIKey, limiter))
	r.Register(NewGreenhouseAdapter(cfg.GreenhouseBoards, limiter))
	r.Register(NewLeverAdapter(cfg.LeverBoards, limiter))
	r.Register(NewYCombinatorAdapter(limiter))
	r.Register(NewLinkedInAdapter(limiter))
	r.Register(NewWellfoundAdapter())
	return r
}
