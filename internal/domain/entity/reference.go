package entity

// Source origen de devoluciones y autocompras (ПВЗ, punto de recogida).
type Source struct {
	ID          string
	Name        string
	Description string
}

// DistributionCenter centro de distribución del marketplace (РЦ).
type DistributionCenter struct {
	ID          string
	Code        string
	Name        string
	Marketplace string
}

// Label texto visible del centro: "Nombre (marketplace)" si hay marketplace.
func (d DistributionCenter) Label() string {
	if d.Marketplace == "" {
		return d.Name
	}
	return d.Name + " (" + d.Marketplace + ")"
}
