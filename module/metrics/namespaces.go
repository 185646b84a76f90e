package metrics

// Prometheus metric namespaces
const (
	namespaceStarkhash = "starkhash"
)

// Starkhash subsystems
const (
	subsystemBuilder    = "builder"
	subsystemValidation = "validation"
)
