package domain

// ObjectivePreset describes a named objective: the quantities an operator
// would otherwise read off the barrel and the datasheet.
type ObjectivePreset struct {
	Name                string
	NA                  float64
	RefImmNom           float64 // Design immersion index.
	FreeWorkingDistance float64 // Nominal free working distance in nm.
}
