package geo

// CallObserver counts calls to the external services in this package.
type CallObserver interface {
	ObserveCollaborator(collaborator string, outcome string)
}

const (
	outcomeOK      = "ok"
	outcomeEmpty   = "empty"
	outcomeFailure = "error"
)

func observe(observer CallObserver, collaborator string, outcome string) {
	if observer == nil {
		return
	}
	observer.ObserveCollaborator(collaborator, outcome)
}
