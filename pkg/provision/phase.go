package provision

//go:generate go run github.com/dmarkham/enumer -type Phase -trimprefix Phase -transform kebab -output phase.gen.go

// Phase is one provisioning phase of a database. Exactly two phases exist;
// this is deliberately not a general multi-step migration mechanism.
type Phase int

const (
	PhaseCreate Phase = iota
	PhasePostCreate
)
