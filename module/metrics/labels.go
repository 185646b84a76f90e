package metrics

const (
	LabelScheme  = "scheme"
	LabelFormula = "formula"
	LabelCheck   = "check"
)
